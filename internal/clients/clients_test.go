package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body["status"] = status
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuctionClientGetAuction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		expectedErr error
		expectedID  string
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auctions/a1", r.URL.Path)
				writeEnvelope(w, http.StatusOK, map[string]any{
					"message": "auction retrieved successfully",
					"data":    map[string]any{"id": "a1", "item_id": "i1", "current_price": 100, "status": "Active"},
				})
			},
			expectedID: "a1",
		},
		{
			name: "not found code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusNotFound, map[string]any{
					"message": "auction not found", "code": auctionerrors.CodeNotFound, "error": "auction not found",
				})
			},
			expectedErr: auctionerrors.ErrNotFound,
		},
		{
			name: "plain 404 without envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			expectedErr: auctionerrors.ErrNotFound,
		},
		{
			name: "server error is downstream unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusInternalServerError, map[string]any{"message": "internal server error"})
			},
			expectedErr: auctionerrors.ErrDownstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewAuctionClient("clients-test", srv.URL, time.Second)
			auction, err := client.GetAuction(context.Background(), "a1")
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expectedID, auction.ID)
			require.Equal(t, models.AuctionActive, auction.Status)
			require.Equal(t, 100.0, auction.CurrentPrice)
		})
	}
}

func TestAuctionClientRaisePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		code        string
		expectedErr error
	}{
		{name: "applied", status: http.StatusOK},
		{name: "stale", status: http.StatusConflict, code: auctionerrors.CodeStalePrice, expectedErr: auctionerrors.ErrStalePrice},
		{name: "closed auction", status: http.StatusBadRequest, code: auctionerrors.CodeInvalidState, expectedErr: auctionerrors.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/auctions/a1/current_price", r.URL.Path)
				raw, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"current_price":150}`, string(raw))

				if tt.code != "" {
					writeEnvelope(w, tt.status, map[string]any{"message": "rejected", "code": tt.code, "error": "rejected"})
					return
				}
				writeEnvelope(w, tt.status, map[string]any{
					"message": "price updated",
					"data":    map[string]any{"id": "a1", "current_price": 150, "status": "Active"},
				})
			}))
			defer srv.Close()

			client := NewAuctionClient("clients-test", srv.URL, time.Second)
			auction, err := client.RaisePrice(context.Background(), "a1", 150)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				require.NotErrorIs(t, err, auctionerrors.ErrDownstreamUnavailable)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 150.0, auction.CurrentPrice)
		})
	}
}

func TestClientTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewItemClient("clients-test", srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := client.GetItem(context.Background(), "i1")
	require.ErrorIs(t, err, auctionerrors.ErrDownstreamUnavailable)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestClientBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewBiddingClient("clients-test", srv.URL, time.Second)
	for i := 0; i < 5; i++ {
		_, err := client.HighestBid(context.Background(), "a1")
		require.ErrorIs(t, err, auctionerrors.ErrDownstreamUnavailable)
	}
	require.Equal(t, int32(3), hits.Load())
}

func TestClientRejectionsDoNotOpenBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, http.StatusNotFound, map[string]any{"message": "no bids", "code": auctionerrors.CodeNotFound, "error": "no bids"})
	}))
	defer srv.Close()

	client := NewBiddingClient("clients-test", srv.URL, time.Second)
	for i := 0; i < 5; i++ {
		_, err := client.HighestBid(context.Background(), "a1")
		require.ErrorIs(t, err, auctionerrors.ErrNotFound)
	}
	require.Equal(t, int32(5), hits.Load())
}

func TestListClients(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bids/auction/a1":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"message": "bids retrieved successfully",
				"data": []map[string]any{
					{"id": "b1", "auction_id": "a1", "bidder_id": "u1", "amount": 110, "bid_time": "2024-01-01T10:00:00Z"},
					{"id": "b2", "auction_id": "a1", "bidder_id": "u2", "amount": 120, "bid_time": "2024-01-01T10:01:00.5Z"},
				},
			})
		case "/items/user/u1":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"message": "items retrieved successfully",
				"data":    []map[string]any{{"id": "i1", "name": "lamp", "owner_id": "u1"}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	bids, err := NewBiddingClient("clients-test", srv.URL, time.Second).ListBidsByAuction(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, "b2", bids[1].ID)
	require.Equal(t, 500*time.Millisecond, time.Duration(bids[1].BidTime.Nanosecond()))

	items, err := NewItemClient("clients-test", srv.URL, time.Second).ListItemsByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "lamp", items[0].Name)
}

func TestNotificationClientNotifyUsers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications/auction/a1/new", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new_bid", body["type"])
		assert.Len(t, body["user_ids"], 2)
		writeEnvelope(w, http.StatusCreated, map[string]any{
			"message": "notifications created",
			"data":    map[string]any{"recipient_count": 2},
		})
	}))
	defer srv.Close()

	client := NewNotificationClient("clients-test", srv.URL, time.Second)
	n, err := client.NotifyUsers(context.Background(), NotifyRequest{
		AuctionID: "a1",
		Type:      models.NotificationNewBid,
		UserIDs:   []string{"u1", "u2"},
		Message:   "new bid",
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
