package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountResolutionError(t *testing.T) {
	err := NewAccountResolutionError("acc-1", ErrNotFound)

	var resErr *AccountResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "acc-1", resErr.AccountID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `account "acc-1"`)

	bare := &AccountResolutionError{AccountID: "acc-2"}
	assert.Contains(t, bare.Error(), `account "acc-2"`)
}

func TestUserError(t *testing.T) {
	inner := errors.New("boom")
	err := NewUserError("something went wrong", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "something went wrong")
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", fmt.Errorf("sync: %w", ErrProviderRateLimit), true},
		{"connection", ErrProviderConnection, true},
		{"deadline", context.DeadlineExceeded, true},
		{"retryable wrapper", &RetryableError{Err: errors.New("x"), Retryable: true}, true},
		{"non-retryable wrapper", &RetryableError{Err: errors.New("x"), Retryable: false}, false},
		{"plain error", errors.New("nope"), false},
		{"not found", ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return &RetryableError{Err: errors.New("transient"), Retryable: true}
		}
		return nil
	}, RetryOptions{InitialDelay: time.Millisecond, MaxAttempts: 5})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return &RetryableError{Err: errors.New("bad credentials"), Retryable: false}
	}, RetryOptions{InitialDelay: time.Millisecond, MaxAttempts: 5})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return errors.New("always failing")
	}, RetryOptions{InitialDelay: time.Millisecond, MaxAttempts: 3})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return errors.New("transient")
	}, RetryOptions{InitialDelay: time.Second, MaxAttempts: 3})

	assert.ErrorIs(t, err, context.Canceled)
}
