// Package capacity enforces per-airport ceilings on departures accepted for
// a calendar day.
package capacity

import (
	"context"
	"time"
)

// LimitStore resolves the configured daily ceiling for an airport.
// A nil result means no ceiling is configured.
type LimitStore interface {
	FindLimit(ctx context.Context, iataCode string) (*int, error)
}

type Limiter struct {
	limits LimitStore
}

func NewLimiter(limits LimitStore) *Limiter {
	return &Limiter{limits: limits}
}

// CanAcceptFlight reports whether the airport accepts another departure on
// the given day. The comparison is strict: reaching the ceiling rejects the
// next flight without invalidating already-scheduled ones. The caller
// supplies the current scheduled count; the limiter mutates nothing.
func (l *Limiter) CanAcceptFlight(ctx context.Context, iataCode string, date time.Time, scheduledCount int) (bool, error) {
	limit, err := l.limits.FindLimit(ctx, iataCode)
	if err != nil {
		return false, err
	}
	if limit == nil {
		return true, nil
	}
	return scheduledCount < *limit, nil
}
