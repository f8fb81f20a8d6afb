package pricesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/config"
	"auction-services/internal/metrics"
	"auction-services/internal/models"
	"auction-services/utils"
)

const (
	pollWait   = time.Second
	maxBackoff = 30 * time.Second
)

// Reconciler outcomes, also used as metric labels
const (
	OutcomeApplied  = "applied"
	OutcomeResolved = "resolved"
	OutcomeRetried  = "retried"
	OutcomeDropped  = "dropped"
)

// PriceRaiser applies a conditional price raise at the Auction Registry
type PriceRaiser interface {
	RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error)
}

// Reconciler drains the queue and retries each update with exponential backoff.
type Reconciler struct {
	queue       Queue
	raiser      PriceRaiser
	maxAttempts int
	backoff     time.Duration
	pollWait    time.Duration
}

func NewReconciler(queue Queue, raiser PriceRaiser, cfg config.PriceSyncConfig) *Reconciler {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := cfg.BaseBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &Reconciler{
		queue:       queue,
		raiser:      raiser,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		pollWait:    pollWait,
	}
}

// Enqueue schedules a price that could not be pushed synchronously.
func (r *Reconciler) Enqueue(ctx context.Context, auctionID string, price float64) error {
	u := Update{AuctionID: auctionID, Price: price, EnqueuedAt: time.Now().UTC()}
	if err := r.queue.Push(ctx, u); err != nil {
		return fmt.Errorf("enqueue price %.2f for auction %s: %w", price, auctionID, err)
	}
	return nil
}

// Run processes updates until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	utils.Info("price reconciler started", map[string]any{"max_attempts": r.maxAttempts})
	for {
		if ctx.Err() != nil {
			return nil
		}

		u, ok, err := r.queue.Pop(ctx, r.pollWait)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			utils.Error("price reconciler: pop failed", map[string]any{"error": err.Error()})
			if !r.sleep(ctx, r.backoff) {
				return nil
			}
			continue
		}
		if !ok {
			continue
		}
		r.process(ctx, u)
	}
}

// process returns the outcome recorded for u.
func (r *Reconciler) process(ctx context.Context, u Update) string {
	fields := map[string]any{"auction_id": u.AuctionID, "price": u.Price, "attempt": u.Attempts + 1}

	_, err := r.raiser.RaisePrice(ctx, u.AuctionID, u.Price)
	switch {
	case err == nil:
		return r.record(OutcomeApplied, "price reconciler: price applied", fields)
	case errors.Is(err, auctionerrors.ErrStalePrice),
		errors.Is(err, auctionerrors.ErrInvalidState),
		errors.Is(err, auctionerrors.ErrNotFound):
		// a newer price or a terminal state already won
		fields["reason"] = err.Error()
		return r.record(OutcomeResolved, "price reconciler: update superseded", fields)
	}

	u.Attempts++
	fields["error"] = err.Error()
	if u.Attempts >= r.maxAttempts {
		metrics.PriceSyncOutcomes.WithLabelValues(OutcomeDropped).Inc()
		utils.Error("price reconciler: giving up on price update", fields)
		return OutcomeDropped
	}

	if !r.sleep(ctx, r.delay(u.Attempts)) {
		// shutting down: keep the update for the next run
		if err := r.queue.Push(context.WithoutCancel(ctx), u); err != nil {
			metrics.PriceSyncOutcomes.WithLabelValues(OutcomeDropped).Inc()
			fields["error"] = err.Error()
			utils.Error("price reconciler: requeue on shutdown failed", fields)
			return OutcomeDropped
		}
		return OutcomeRetried
	}
	if err := r.queue.Push(ctx, u); err != nil {
		metrics.PriceSyncOutcomes.WithLabelValues(OutcomeDropped).Inc()
		fields["error"] = err.Error()
		utils.Error("price reconciler: requeue failed", fields)
		return OutcomeDropped
	}
	return r.record(OutcomeRetried, "price reconciler: update requeued", fields)
}

func (r *Reconciler) record(outcome, msg string, fields map[string]any) string {
	metrics.PriceSyncOutcomes.WithLabelValues(outcome).Inc()
	if outcome == OutcomeRetried {
		utils.Warn(msg, fields)
	} else {
		utils.Info(msg, fields)
	}
	return outcome
}

// delay is backoff * 2^(attempts-1), capped at maxBackoff
func (r *Reconciler) delay(attempts int) time.Duration {
	d := r.backoff
	for i := 1; i < attempts && d < maxBackoff; i++ {
		d *= 2
	}
	return min(d, maxBackoff)
}

func (r *Reconciler) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
