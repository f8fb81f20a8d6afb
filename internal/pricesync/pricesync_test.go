package pricesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/clients"
	"auction-services/internal/config"
	"auction-services/internal/models"

	"github.com/go-redis/redismock/v9"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testKey = "auction:price-sync"

func TestNewRedisQueue(t *testing.T) {
	t.Parallel()

	db, _ := redismock.NewClientMock()
	defer db.Close()

	_, err := NewRedisQueue(nil, testKey)
	require.Error(t, err)
	_, err = NewRedisQueue(db, "")
	require.Error(t, err)
	q, err := NewRedisQueue(db, testKey)
	require.NoError(t, err)
	require.NotNil(t, q)
}

func TestRedisQueue(t *testing.T) {
	t.Parallel()

	u := Update{AuctionID: "a1", Price: 150, Attempts: 2, EnqueuedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	payload, err := json.Marshal(u)
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(mock redismock.ClientMock)
		run   func(t *testing.T, q *RedisQueue)
	}{
		{
			name: "push",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectLPush(testKey, string(payload)).SetVal(1)
			},
			run: func(t *testing.T, q *RedisQueue) {
				require.NoError(t, q.Push(context.Background(), u))
			},
		},
		{
			name: "push error",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectLPush(testKey, string(payload)).SetErr(errors.New("connection refused"))
			},
			run: func(t *testing.T, q *RedisQueue) {
				require.ErrorContains(t, q.Push(context.Background(), u), "connection refused")
			},
		},
		{
			name: "pop",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectBRPop(time.Second, testKey).SetVal([]string{testKey, string(payload)})
			},
			run: func(t *testing.T, q *RedisQueue) {
				got, ok, err := q.Pop(context.Background(), time.Second)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, u, got)
			},
		},
		{
			name: "pop timeout",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectBRPop(time.Second, testKey).RedisNil()
			},
			run: func(t *testing.T, q *RedisQueue) {
				_, ok, err := q.Pop(context.Background(), time.Second)
				require.NoError(t, err)
				require.False(t, ok)
			},
		},
		{
			name: "pop undecodable payload",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectBRPop(time.Second, testKey).SetVal([]string{testKey, "{not json"})
			},
			run: func(t *testing.T, q *RedisQueue) {
				_, ok, err := q.Pop(context.Background(), time.Second)
				require.Error(t, err)
				require.False(t, ok)
			},
		},
		{
			name: "len",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectLLen(testKey).SetVal(3)
			},
			run: func(t *testing.T, q *RedisQueue) {
				n, err := q.Len(context.Background())
				require.NoError(t, err)
				require.Equal(t, int64(3), n)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db, mock := redismock.NewClientMock()
			defer db.Close()
			tt.setup(mock)

			q, err := NewRedisQueue(db, testKey)
			require.NoError(t, err)
			tt.run(t, q)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMemoryQueue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewMemoryQueue(2)

	require.NoError(t, q.Push(ctx, Update{AuctionID: "a1", Price: 1}))
	require.NoError(t, q.Push(ctx, Update{AuctionID: "a2", Price: 2}))
	require.ErrorIs(t, q.Push(ctx, Update{AuctionID: "a3", Price: 3}), ErrQueueFull)

	n, err := q.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	u, ok, err := q.Pop(ctx, time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a1", u.AuctionID)

	_, _, _ = q.Pop(ctx, time.Millisecond)
	_, ok, err = q.Pop(ctx, 5*time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = q.Pop(cancelled, time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func newTestReconciler(t *testing.T, maxAttempts int) (*Reconciler, *MemoryQueue, *clients.MockAuctionAPI) {
	ctrl := gomock.NewController(t)
	raiser := clients.NewMockAuctionAPI(ctrl)
	q := NewMemoryQueue(16)
	r := NewReconciler(q, raiser, config.PriceSyncConfig{MaxAttempts: maxAttempts, BaseBackoff: time.Millisecond})
	r.pollWait = 10 * time.Millisecond
	return r, q, raiser
}

func TestReconcilerProcess(t *testing.T) {
	t.Parallel()

	downstream := fmt.Errorf("auction PUT: %w", auctionerrors.ErrDownstreamUnavailable)

	tests := []struct {
		name         string
		attempts     int
		raiseErr     error
		expected     string
		expectedLeft int64
	}{
		{name: "applied", raiseErr: nil, expected: OutcomeApplied},
		{name: "stale price is resolved", raiseErr: auctionerrors.ErrPriceNotHigher, expected: OutcomeResolved},
		{name: "closed auction is resolved", raiseErr: auctionerrors.ErrIllegalTransition, expected: OutcomeResolved},
		{name: "missing auction is resolved", raiseErr: auctionerrors.ErrAuctionNotFound, expected: OutcomeResolved},
		{name: "downstream failure is requeued", raiseErr: downstream, expected: OutcomeRetried, expectedLeft: 1},
		{name: "last attempt is dropped", attempts: 2, raiseErr: downstream, expected: OutcomeDropped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, q, raiser := newTestReconciler(t, 3)
			raiser.EXPECT().RaisePrice(gomock.Any(), "a1", 150.0).Return(models.Auction{}, tt.raiseErr)

			got := r.process(context.Background(), Update{AuctionID: "a1", Price: 150, Attempts: tt.attempts})
			require.Equal(t, tt.expected, got)

			n, err := q.Len(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.expectedLeft, n)
			if tt.expectedLeft > 0 {
				u, _, _ := q.Pop(context.Background(), time.Millisecond)
				require.Equal(t, tt.attempts+1, u.Attempts)
			}
		})
	}
}

func TestReconcilerProcessShutdown(t *testing.T) {
	t.Parallel()

	downstream := fmt.Errorf("auction PUT: %w", auctionerrors.ErrDownstreamUnavailable)

	tests := []struct {
		name         string
		queueSize    int
		preloaded    int
		expected     string
		expectedLeft int64
	}{
		{name: "update is kept for the next run", queueSize: 4, expected: OutcomeRetried, expectedLeft: 1},
		{name: "full queue drops the update", queueSize: 1, preloaded: 1, expected: OutcomeDropped, expectedLeft: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			raiser := clients.NewMockAuctionAPI(ctrl)
			raiser.EXPECT().RaisePrice(gomock.Any(), "a1", 150.0).Return(models.Auction{}, downstream)

			q := NewMemoryQueue(tt.queueSize)
			for i := range tt.preloaded {
				require.NoError(t, q.Push(context.Background(), Update{AuctionID: fmt.Sprintf("other-%d", i), Price: 1}))
			}
			r := NewReconciler(q, raiser, config.PriceSyncConfig{MaxAttempts: 5, BaseBackoff: time.Hour})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			require.Equal(t, tt.expected, r.process(ctx, Update{AuctionID: "a1", Price: 150}))

			n, err := q.Len(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.expectedLeft, n)
		})
	}
}

func TestReconcilerDelay(t *testing.T) {
	t.Parallel()

	r := NewReconciler(NewMemoryQueue(1), nil, config.PriceSyncConfig{MaxAttempts: 10, BaseBackoff: time.Second})
	require.Equal(t, time.Second, r.delay(1))
	require.Equal(t, 2*time.Second, r.delay(2))
	require.Equal(t, 8*time.Second, r.delay(4))
	require.Equal(t, maxBackoff, r.delay(9))
}

func TestReconcilerRun(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r, _, raiser := newTestReconciler(t, 5)
	applied := make(chan struct{})
	gomock.InOrder(
		raiser.EXPECT().RaisePrice(gomock.Any(), "a1", 200.0).
			Return(models.Auction{}, auctionerrors.ErrDownstreamUnavailable),
		raiser.EXPECT().RaisePrice(gomock.Any(), "a1", 200.0).
			DoAndReturn(func(context.Context, string, float64) (models.Auction, error) {
				close(applied)
				return models.Auction{ID: "a1", CurrentPrice: 200}, nil
			}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- r.Run(ctx) }()

	require.NoError(t, r.Enqueue(ctx, "a1", 200))

	select {
	case <-applied:
	case <-time.After(2 * time.Second):
		t.Fatal("price update was not applied")
	}

	cancel()
	require.NoError(t, <-done)
}
