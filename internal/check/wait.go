package check

import (
	"context"
	"fmt"
	"time"
)

// DefaultPollInterval is used when a caller passes a non-positive interval.
const DefaultPollInterval = 100 * time.Millisecond

// TimeoutError names the condition that never became true and the budget
// that elapsed waiting for it.
type TimeoutError struct {
	Condition string
	Elapsed   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s", e.Elapsed.Round(time.Millisecond), e.Condition)
}

// WaitUntil polls the predicate at the given interval until it returns true,
// the timeout elapses, or the context is done. Predicate errors abort the
// wait immediately.
func WaitUntil(ctx context.Context, timeout, interval time.Duration, condition string, predicate func(context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	start := time.Now()
	deadline := start.Add(timeout)

	for {
		ok, err := predicate(ctx)
		if err != nil {
			return fmt.Errorf("waiting for %s: %w", condition, err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return &TimeoutError{Condition: condition, Elapsed: time.Since(start)}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", condition, ctx.Err())
		case <-time.After(interval):
		}
	}
}
