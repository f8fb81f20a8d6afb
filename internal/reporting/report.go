package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-services/internal/auctionerrors"
)

// Window is a named trailing period ending now
type Window struct {
	Name   string
	Length time.Duration
}

var (
	Day   = Window{Name: "day", Length: 24 * time.Hour}
	Week  = Window{Name: "week", Length: 7 * 24 * time.Hour}
	Month = Window{Name: "month", Length: 30 * 24 * time.Hour}
	Year  = Window{Name: "year", Length: 365 * 24 * time.Hour}
)

// DefaultWindows is used when a request names none
var DefaultWindows = []Window{Day, Week, Month, Year}

var byName = map[string]Window{
	Day.Name:   Day,
	Week.Name:  Week,
	Month.Name: Month,
	Year.Name:  Year,
}

// ParseWindows parses a comma separated list such as "day,month".
// Empty input yields DefaultWindows; duplicates are dropped.
func ParseWindows(raw string) ([]Window, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultWindows, nil
	}

	var windows []Window
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || seen[name] {
			continue
		}
		w, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", auctionerrors.ErrInvalidWindow, part)
		}
		seen[name] = true
		windows = append(windows, w)
	}
	if len(windows) == 0 {
		return DefaultWindows, nil
	}
	return windows, nil
}

// Report holds all-time stats plus one entry per requested window
type Report[T any] struct {
	Total   T            `json:"total"`
	Windows map[string]T `json:"windows"`
}

// Build evaluates fn for all time and for each window ending at now.
// fn computes stats over entities created at or after since; the zero time means all time.
func Build[T any](ctx context.Context, now time.Time, windows []Window, fn func(ctx context.Context, since time.Time) (T, error)) (Report[T], error) {
	total, err := fn(ctx, time.Time{})
	if err != nil {
		return Report[T]{}, fmt.Errorf("report total: %w", err)
	}

	report := Report[T]{Total: total, Windows: make(map[string]T, len(windows))}
	for _, w := range windows {
		stats, err := fn(ctx, now.Add(-w.Length))
		if err != nil {
			return Report[T]{}, fmt.Errorf("report window %s: %w", w.Name, err)
		}
		report.Windows[w.Name] = stats
	}
	return report, nil
}
