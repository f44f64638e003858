package services

import (
	"context"
	"time"
)

// RetryPolicy is an explicit bounded retry: a maximum attempt count plus a
// backoff function, instead of retry-by-recursion with a fixed delay.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// DefaultRetryPolicy retries three times with exponential backoff starting
// at 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * 500 * time.Millisecond
		},
	}
}

// Do runs op until it succeeds, attempts are exhausted, or the context is
// done. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			var wait time.Duration
			if p.Backoff != nil {
				wait = p.Backoff(attempt - 1)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err = op(); err == nil {
			return nil
		}
	}
	return err
}
