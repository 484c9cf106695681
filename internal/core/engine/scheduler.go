package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler fires a task once per day at a fixed UTC hour. Start blocks
// until the context is cancelled, so callers run it in a goroutine.
type Scheduler struct {
	Hour   int
	Task   func(ctx context.Context) error
	Logger Logger
	Clock  func() time.Time
}

func (s *Scheduler) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// nextAfter returns the next trigger time strictly after now.
func (s *Scheduler) nextAfter(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start runs the daily loop. Task errors are logged and the loop keeps
// going; only context cancellation stops it.
func (s *Scheduler) Start(ctx context.Context) error {
	if s == nil || s.Task == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		next := s.nextAfter(s.now())
		wait := next.Sub(s.now())

		if s.Logger != nil {
			s.Logger.Info("scheduled next run",
				zap.Time("at", next),
				zap.Duration("in", wait))
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		start := s.now()
		if err := s.Task(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.Logger != nil {
				s.Logger.Error("scheduled run failed",
					zap.Duration("elapsed", s.now().Sub(start)),
					zap.Error(err))
			}
			continue
		}
		if s.Logger != nil {
			s.Logger.Info("scheduled run completed",
				zap.Duration("elapsed", s.now().Sub(start)))
		}
	}
}
