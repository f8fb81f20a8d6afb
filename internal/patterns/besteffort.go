package patterns

import (
	"context"
	"time"

	"auction-services/internal/metrics"
	"auction-services/utils"
)

// BestEffort runs a side effect once and swallows its error.
// A failure is logged at warn level and counted in best_effort_failures_total.
// fn runs detached from the caller's cancellation, bounded by timeout.
func BestEffort(ctx context.Context, service, call string, timeout time.Duration, fn func(ctx context.Context) error) bool {
	callCtx, cancel := WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := fn(callCtx); err != nil {
		metrics.BestEffortFailures.WithLabelValues(service, call).Inc()
		utils.Warn("best-effort call failed", map[string]any{
			"service": service,
			"call":    call,
			"error":   err.Error(),
		})
		return false
	}
	return true
}
