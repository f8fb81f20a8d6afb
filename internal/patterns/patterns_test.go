package patterns

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-services/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerTrips(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker("trip-target", "patterns-test")
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (any, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
	}

	require.Equal(t, "open", cb.GetState())
	require.Equal(t, 1, cb.GetStateValue())

	_, err := cb.Execute(func() (any, error) { return "never", nil })
	require.True(t, IsOpen(err))
	require.ErrorIs(t, FormatError(cb.Name(), err), gobreaker.ErrOpenState)
	require.Equal(t, float64(4), testutil.ToFloat64(metrics.CircuitBreakerFailures.WithLabelValues("patterns-test", "trip-target")))
}

func TestCircuitBreakerStaysClosedOnSuccess(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker("ok-target", "patterns-test")
	for i := 0; i < 5; i++ {
		out, err := cb.Execute(func() (any, error) { return i, nil })
		require.NoError(t, err)
		require.Equal(t, i, out)
	}
	require.Equal(t, 0, cb.GetStateValue())
	require.False(t, IsOpen(errors.New("plain")))
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := WithTimeout(context.Background(), 0)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, time.Second)

	short, cancelShort := WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelShort()
	<-short.Done()
	require.ErrorIs(t, short.Err(), context.DeadlineExceeded)
}

func TestBestEffort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call string
		fn   func(ctx context.Context) error
		ok   bool
	}{
		{
			name: "success is not counted",
			call: "ok-call",
			fn:   func(context.Context) error { return nil },
			ok:   true,
		},
		{
			name: "failure is swallowed and counted",
			call: "failing-call",
			fn:   func(context.Context) error { return errors.New("down") },
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BestEffort(context.Background(), "besteffort-test", tt.call, time.Second, tt.fn)
			require.Equal(t, tt.ok, got)

			want := float64(0)
			if !tt.ok {
				want = 1
			}
			require.Equal(t, want, testutil.ToFloat64(metrics.BestEffortFailures.WithLabelValues("besteffort-test", tt.call)))
		})
	}
}

func TestBestEffortIgnoresCallerCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok := BestEffort(ctx, "besteffort-test", "detached", time.Second, func(ctx context.Context) error {
		return ctx.Err()
	})
	require.True(t, ok)
}
