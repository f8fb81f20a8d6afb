package patterns

import (
	"context"
	"time"
)

// DefaultTimeout bounds a call to a peer service when none is configured
const DefaultTimeout = 3 * time.Second

// WithTimeout derives a context that fails fast after d (DefaultTimeout when d <= 0).
func WithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(parent, d)
}
