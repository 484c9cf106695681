package engine

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum delay between consecutive requests. It is
// shared by all workers hitting the same upstream so concurrency never
// multiplies the request rate.
type Pacer struct {
	Delay time.Duration

	mu   sync.Mutex
	last time.Time
}

// Wait blocks until at least Delay has passed since the previous Wait
// returned, or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.Delay <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	now := time.Now()
	next := p.last.Add(p.Delay)
	if next.Before(now) {
		next = now
	}
	p.last = next
	p.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
