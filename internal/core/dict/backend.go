// Package dict resolves words against dictionary backends with caching,
// pacing, retry, and a fallback chain.
package dict

import (
	"context"
	"errors"

	"github.com/wordlens/wordlens/internal/core"
)

// Backend performs a single-source dictionary lookup.
type Backend interface {
	Name() core.BackendID

	// Configured reports whether the backend has what it needs to make
	// requests (typically an API key).
	Configured() bool

	Lookup(ctx context.Context, word string) (*core.WordResult, error)
}

// Cache stores settled lookup results keyed by word.
type Cache interface {
	GetLookup(ctx context.Context, word string) (*core.WordResult, bool, error)
	PutLookup(ctx context.Context, result *core.WordResult) error
}

// Budget meters paid API requests against a daily allowance.
type Budget interface {
	// Spend consumes one request from today's allowance. It returns
	// ErrBudgetExhausted once the allowance is gone.
	Spend(ctx context.Context) error
}

// ErrBudgetExhausted signals the daily request allowance is used up.
var ErrBudgetExhausted = errors.New("daily API request budget exhausted")

// ErrNotConfigured signals a backend is missing its API key.
var ErrNotConfigured = errors.New("API key not configured")
