package errors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry_TransientErrorsAreRetried(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return NewCompletionError(assert.AnError)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_NonRetryableReturnsImmediately(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return NewValidationError("bad input")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return NewCompletionError(assert.AnError)
	})

	assert.Error(t, err)
	assert.Equal(t, MaxRetries+1, calls)
}

func TestWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffDuration_DoublesAndCaps(t *testing.T) {
	assert.Equal(t, InitialBackoff, backoffDuration(0))
	assert.Equal(t, 2*InitialBackoff, backoffDuration(1))
	assert.Equal(t, 4*InitialBackoff, backoffDuration(2))
	assert.Equal(t, MaxBackoff, backoffDuration(10))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(assert.AnError))
	assert.False(t, IsRetryable(NewValidationError("x")))
	assert.True(t, IsRetryable(NewCompletionError(assert.AnError)))
	assert.False(t, IsRetryable(NewCompletionContentError(assert.AnError)))
}

func TestWithRetry_BackoffStaysBounded(t *testing.T) {
	start := time.Now()
	_ = WithRetry(context.Background(), func() error {
		return NewValidationError("no sleep expected")
	})

	assert.Less(t, time.Since(start), InitialBackoff)
}
