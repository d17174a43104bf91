// Package bounded wraps an operation in a deadline so worst-case latency
// stays under the hosting platform's execution ceiling. It is the single
// place the timeout race lives; call sites pick a budget instead of
// re-deriving the race.
package bounded

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the wrapped operation exceeds its budget.
// Callers map it to a 504-equivalent, never a generic 500, and never
// retry at this layer.
var ErrTimeout = errors.New("operation timed out")

const (
	// SessionBudget bounds session verification.
	SessionBudget = 5 * time.Second
	// QueryBudget bounds data-store queries.
	QueryBudget = 8 * time.Second
)

// Run executes fn under a deadline derived from ctx. A deadline overrun is
// reported as ErrTimeout whether fn returned context.DeadlineExceeded or
// the race fired while fn was still in flight.
func Run[T any](ctx context.Context, budget time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	case r := <-done:
		if errors.Is(r.err, context.DeadlineExceeded) {
			var zero T
			return zero, ErrTimeout
		}
		return r.val, r.err
	}
}
