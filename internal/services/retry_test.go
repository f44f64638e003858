package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_Do(t *testing.T) {
	opErr := errors.New("transient")

	tests := []struct {
		name         string
		policy       RetryPolicy
		failures     int
		wantErr      bool
		wantAttempts int
	}{
		{
			name:         "first attempt succeeds",
			policy:       immediateRetry(3),
			wantAttempts: 1,
		},
		{
			name:         "succeeds on last attempt",
			policy:       immediateRetry(3),
			failures:     2,
			wantAttempts: 3,
		},
		{
			name:         "exhausts attempts",
			policy:       immediateRetry(3),
			failures:     5,
			wantErr:      true,
			wantAttempts: 3,
		},
		{
			name:         "zero max attempts still runs once",
			policy:       RetryPolicy{},
			failures:     1,
			wantErr:      true,
			wantAttempts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := tt.policy.Do(context.Background(), func() error {
				attempts++
				if attempts <= tt.failures {
					return opErr
				}
				return nil
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, opErr, "the last error surfaces")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}

func TestRetryPolicy_Do_ContextCancelled(t *testing.T) {
	policy := RetryPolicy{
		MaxAttempts: 5,
		Backoff:     func(int) time.Duration { return time.Hour },
	}
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	errs := make(chan error, 1)
	go func() {
		errs <- policy.Do(ctx, func() error {
			attempts++
			return errors.New("nope")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts, "the backoff wait is interruptible")
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
}

func TestDefaultRetryPolicy_Backoff(t *testing.T) {
	policy := DefaultRetryPolicy()
	assert.Equal(t, 3, policy.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, policy.Backoff(0))
	assert.Equal(t, time.Second, policy.Backoff(1))
	assert.Equal(t, 2*time.Second, policy.Backoff(2))
}
