package models

import (
	"encoding/json"
	"testing"

	"auction-services/internal/auctionerrors"

	"github.com/stretchr/testify/require"
)

func TestParseIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	status, err := ParseAuctionStatus(" closed ")
	require.NoError(t, err)
	require.Equal(t, AuctionClosed, status)

	tx, err := ParseTransactionStatus("REFUNDED")
	require.NoError(t, err)
	require.Equal(t, TransactionRefunded, tx)

	nt, err := ParseNotificationType("PAYMENT_CONFIRMED")
	require.NoError(t, err)
	require.Equal(t, NotificationPaymentConfirmed, nt)

	_, err = ParseAuctionStatus("Paused")
	require.ErrorIs(t, err, auctionerrors.ErrValidation)
}

func TestAuctionStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to AuctionStatus
		want     bool
	}{
		{from: AuctionActive, to: AuctionClosed, want: true},
		{from: AuctionActive, to: AuctionCancelled, want: true},
		{from: AuctionActive, to: AuctionActive, want: false},
		{from: AuctionClosed, to: AuctionActive, want: false},
		{from: AuctionClosed, to: AuctionCancelled, want: false},
		{from: AuctionCancelled, to: AuctionClosed, want: false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
	require.True(t, AuctionClosed.Terminal())
	require.True(t, AuctionCancelled.Terminal())
	require.False(t, AuctionActive.Terminal())
}

func TestEnumJSON(t *testing.T) {
	t.Parallel()

	n := Notification{ID: "n1", UserID: "u1", Type: NotificationNewBid, Metadata: Metadata{"amount": 150.0}}
	raw, err := json.Marshal(n)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"type":"new_bid"`)

	var a Auction
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a1","status":"cancelled"}`), &a))
	require.Equal(t, AuctionCancelled, a.Status)

	err = json.Unmarshal([]byte(`{"status":3}`), &a)
	require.ErrorIs(t, err, auctionerrors.ErrValidation)

	_, err = json.Marshal(Transaction{})
	require.Error(t, err, "unset status must not reach the wire")
}

func TestEnumScan(t *testing.T) {
	t.Parallel()

	var s TransactionStatus
	require.NoError(t, s.Scan([]byte("Completed")))
	require.Equal(t, TransactionCompleted, s)

	v, err := s.Value()
	require.NoError(t, err)
	require.Equal(t, "Completed", v)

	require.Error(t, s.Scan(42))
	require.NoError(t, s.Scan(nil))
	require.Equal(t, TransactionStatusUnknown, s)
}
