package engine

import (
	"sync"

	"github.com/wordlens/wordlens/internal/core"
)

// RunState coordinates reclamation runs across triggers. The HTTP
// endpoint and the daily scheduler share one instance, so only a
// single run is active at a time and the latest report is visible
// to both.
type RunState struct {
	mu     sync.Mutex
	active bool
	last   *core.RunReport
}

// TryStart marks a run active. It returns false when a run is
// already in flight.
func (s *RunState) TryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return false
	}
	s.active = true
	return true
}

// Finish clears the active flag and records the report when non-nil.
func (s *RunState) Finish(report *core.RunReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	if report != nil {
		s.last = report
	}
}

// Active reports whether a run is in flight.
func (s *RunState) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Last returns the most recent completed run report, or nil when no
// run has finished yet.
func (s *RunState) Last() *core.RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
