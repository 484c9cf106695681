package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

	var calls int
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}

	var calls int
	err := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("still broken")
	})
	require.Error(t, err)
	require.Equal(t, 2, calls)
}

func TestRetryPermanentStopsImmediately(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond}

	sentinel := errors.New("bad key")
	var calls int
	err := policy.Do(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, calls)
}

func TestRetryZeroValueSingleAttempt(t *testing.T) {
	var policy RetryPolicy

	var calls int
	err := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("nope")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryRespectsContext(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := policy.Do(ctx, func() error { return errors.New("transient") })
	require.ErrorIs(t, err, context.Canceled)
}

func TestPermanentNil(t *testing.T) {
	require.NoError(t, Permanent(nil))
}
