package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerNextAfter(t *testing.T) {
	s := &Scheduler{Hour: 6}

	// Before today's trigger hour: fires later today.
	now := time.Date(2026, 2, 7, 3, 15, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 2, 7, 6, 0, 0, 0, time.UTC), s.nextAfter(now))

	// After today's trigger hour: fires tomorrow.
	now = time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 2, 8, 6, 0, 0, 0, time.UTC), s.nextAfter(now))

	// Exactly on the trigger: next day, never immediate re-fire.
	now = time.Date(2026, 2, 7, 6, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 2, 8, 6, 0, 0, 0, time.UTC), s.nextAfter(now))
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	s := &Scheduler{
		Hour: 6,
		Task: func(ctx context.Context) error { return nil },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}

func TestSchedulerNilTask(t *testing.T) {
	require.NoError(t, (&Scheduler{Hour: 6}).Start(context.Background()))
}
