package transaction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/clients"
	"auction-services/internal/events"
	"auction-services/internal/models"
	"auction-services/internal/reporting"
	"auction-services/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service   *TransactionService
	repo      *repository.MemoryRepo
	auctions  *clients.MockAuctionAPI
	notifier  *clients.MockNotificationAPI
	publisher *events.MockPublisher
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		repo:      repository.NewMemoryRepo(),
		auctions:  clients.NewMockAuctionAPI(ctrl),
		notifier:  clients.NewMockNotificationAPI(ctrl),
		publisher: events.NewMockPublisher(ctrl),
	}
	f.service = NewTransactionService(f.repo, f.auctions, f.notifier, f.publisher, time.Second)
	return f
}

// seed stores a transaction for auction a1 in the given status
func (f fixture) seed(t *testing.T, status models.TransactionStatus) models.Transaction {
	t.Helper()
	tx := models.Transaction{
		ID:              "t1",
		AuctionID:       "a1",
		BuyerID:         "buyer-1",
		Amount:          150,
		Status:          status,
		TransactionDate: time.Now().UTC(),
	}
	require.NoError(t, f.repo.CreateTransaction(context.Background(), tx))
	return tx
}

func TestCreateTransaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		auctionID     string
		buyerID       string
		amount        float64
		expectedError error
	}{
		{name: "valid", auctionID: "a1", buyerID: "buyer-1", amount: 150},
		{name: "missing auction", buyerID: "buyer-1", amount: 150, expectedError: auctionerrors.ErrInvalidTransaction},
		{name: "missing buyer", auctionID: "a1", amount: 150, expectedError: auctionerrors.ErrInvalidTransaction},
		{name: "zero amount", auctionID: "a1", buyerID: "buyer-1", expectedError: auctionerrors.ErrInvalidTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			if tt.expectedError == nil {
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev events.Event) error {
					require.Equal(t, events.TransactionCreated, ev.Type)
					return nil
				})
			}

			tx, err := f.service.CreateTransaction(context.Background(), tt.auctionID, tt.buyerID, tt.amount)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, models.TransactionPending, tx.Status)

			stored, err := f.repo.GetTransaction(context.Background(), tx.ID)
			require.NoError(t, err)
			require.Equal(t, tx, stored)
		})
	}
}

func TestConfirmTransaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        models.TransactionStatus
		id            string
		mockSetup     func(f fixture)
		expectedError error
	}{
		{
			name:   "pending is confirmed and auction closed",
			status: models.TransactionPending,
			id:     "t1",
			mockSetup: func(f fixture) {
				f.auctions.EXPECT().EndAuction(gomock.Any(), "a1").Return(nil)
				f.notifier.EXPECT().NotifyUsers(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req clients.NotifyRequest) (int, error) {
					require.Equal(t, models.NotificationPaymentConfirmed, req.Type)
					require.Equal(t, []string{"buyer-1"}, req.UserIDs)
					return 1, nil
				})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "side effect failures are swallowed",
			status: models.TransactionPending,
			id:     "t1",
			mockSetup: func(f fixture) {
				f.auctions.EXPECT().EndAuction(gomock.Any(), "a1").Return(auctionerrors.ErrDownstreamUnavailable)
				f.notifier.EXPECT().NotifyUsers(gomock.Any(), gomock.Any()).Return(0, errors.New("down"))
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("down"))
			},
		},
		{
			name:          "completed cannot be confirmed again",
			status:        models.TransactionCompleted,
			id:            "t1",
			mockSetup:     func(fixture) {},
			expectedError: auctionerrors.ErrInvalidState,
		},
		{
			name:          "refunded cannot be confirmed",
			status:        models.TransactionRefunded,
			id:            "t1",
			mockSetup:     func(fixture) {},
			expectedError: auctionerrors.ErrInvalidState,
		},
		{
			name:          "unknown transaction",
			status:        models.TransactionPending,
			id:            "missing",
			mockSetup:     func(fixture) {},
			expectedError: auctionerrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.seed(t, tt.status)
			tt.mockSetup(f)

			tx, err := f.service.ConfirmTransaction(context.Background(), tt.id)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, models.TransactionCompleted, tx.Status)
		})
	}
}

func TestConfirmTransactionTwice(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.seed(t, models.TransactionPending)

	f.auctions.EXPECT().EndAuction(gomock.Any(), "a1").Return(nil).Times(1)
	f.notifier.EXPECT().NotifyUsers(gomock.Any(), gomock.Any()).Return(1, nil).Times(1)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := f.service.ConfirmTransaction(context.Background(), "t1")
	require.NoError(t, err)
	_, err = f.service.ConfirmTransaction(context.Background(), "t1")
	require.ErrorIs(t, err, auctionerrors.ErrIllegalTransition)
}

func TestConfirmTransactionConcurrent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.seed(t, models.TransactionPending)

	f.auctions.EXPECT().EndAuction(gomock.Any(), "a1").Return(nil).Times(1)
	f.notifier.EXPECT().NotifyUsers(gomock.Any(), gomock.Any()).Return(1, nil).Times(1)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	const goroutines = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
		rejected  int
	)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.ConfirmTransaction(context.Background(), "t1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				confirmed++
			case errors.Is(err, auctionerrors.ErrInvalidState):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, confirmed)
	require.Equal(t, goroutines-1, rejected)

	tx, err := f.service.GetTransaction(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, models.TransactionCompleted, tx.Status)
}

func TestRefundTransaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        models.TransactionStatus
		reason        string
		mockSetup     func(f fixture)
		expectedError error
	}{
		{
			name:   "completed is refunded",
			status: models.TransactionCompleted,
			reason: "item damaged",
			mockSetup: func(f fixture) {
				f.notifier.EXPECT().NotifyUsers(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req clients.NotifyRequest) (int, error) {
					require.Equal(t, models.NotificationRefundProcessed, req.Type)
					require.Contains(t, req.Message, "item damaged")
					require.Equal(t, "item damaged", req.Metadata["reason"])
					return 1, nil
				})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev events.Event) error {
					require.Equal(t, events.TransactionRefunded, ev.Type)
					return nil
				})
			},
		},
		{
			name:          "pending cannot be refunded",
			status:        models.TransactionPending,
			reason:        "changed mind",
			mockSetup:     func(fixture) {},
			expectedError: auctionerrors.ErrInvalidState,
		},
		{
			name:          "refunded cannot be refunded again",
			status:        models.TransactionRefunded,
			reason:        "again",
			mockSetup:     func(fixture) {},
			expectedError: auctionerrors.ErrInvalidState,
		},
		{
			name:          "reason required",
			status:        models.TransactionCompleted,
			reason:        "   ",
			mockSetup:     func(fixture) {},
			expectedError: auctionerrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.seed(t, tt.status)
			tt.mockSetup(f)

			tx, err := f.service.RefundTransaction(context.Background(), "t1", tt.reason)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				stored, getErr := f.repo.GetTransaction(context.Background(), "t1")
				require.NoError(t, getErr)
				require.Equal(t, tt.status, stored.Status)
				return
			}
			require.NoError(t, err)
			require.Equal(t, models.TransactionRefunded, tx.Status)
		})
	}
}

func TestTransactionQueries(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, tx := range []models.Transaction{
		{ID: "t1", AuctionID: "a1", BuyerID: "u1", Amount: 100, Status: models.TransactionPending, TransactionDate: now.Add(-time.Hour)},
		{ID: "t2", AuctionID: "a1", BuyerID: "u2", Amount: 200, Status: models.TransactionCompleted, TransactionDate: now.Add(-48 * time.Hour)},
		{ID: "t3", AuctionID: "a2", BuyerID: "u1", Amount: 300, Status: models.TransactionRefunded, TransactionDate: now.Add(-time.Minute)},
	} {
		require.NoError(t, f.repo.CreateTransaction(ctx, tx))
	}

	all, err := f.service.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	byAuction, err := f.service.ListTransactionsByAuction(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, byAuction, 2)

	byUser, err := f.service.ListTransactionsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	_, err = f.service.GetTransaction(ctx, "nope")
	require.ErrorIs(t, err, auctionerrors.ErrTransactionNotFound)

	report, err := f.service.Report(ctx, []reporting.Window{reporting.Day, reporting.Week})
	require.NoError(t, err)
	require.Equal(t, int64(3), report.Total.Total)
	require.Equal(t, 600.0, report.Total.TotalAmount)
	require.Equal(t, int64(2), report.Windows["day"].Total)
	require.Equal(t, int64(3), report.Windows["week"].Total)
}
