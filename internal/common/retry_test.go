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

func fastRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastRetryOptions())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return errors.New("always fails")
	}, fastRetryOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryStopsOnInputError(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return fmt.Errorf("%w: bad labels", ErrInvalidInput)
	}, fastRetryOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryHonorsNonRetryable(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return &RetryableError{Err: errors.New("fatal"), Retryable: false}
	}, fastRetryOptions())

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return errors.New("transient")
	}, fastRetryOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(ErrEmptyInput))
	assert.True(t, IsInputError(fmt.Errorf("wrapped: %w", ErrInvalidInput)))
	assert.True(t, IsInputError(ErrInvalidCostParameters))
	assert.False(t, IsInputError(errors.New("other")))
	assert.False(t, IsInputError(ErrNotFound))
}

func TestUserError(t *testing.T) {
	inner := errors.New("inner")
	err := NewUserError("could not load dataset", inner)

	assert.Contains(t, err.Error(), "could not load dataset")
	assert.ErrorIs(t, err, inner)

	plain := &UserError{UserMessage: "just a message"}
	assert.Equal(t, "just a message", plain.Error())
}
