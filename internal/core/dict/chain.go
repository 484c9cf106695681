package dict

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wordlens/wordlens/internal/core"
)

// Client resolves words through an ordered backend chain with a shared
// result cache. The chain advances past a backend when it cannot give a
// settled answer: the word was not found there, or the backend failed
// after retries. A settled classification from any backend stands and
// later backends are never consulted.
type Client struct {
	Backends []Backend
	Cache    Cache
	Clock    func() time.Time
	Version  string
}

// NewClient assembles the production chain: collegiate, then medical,
// then the free dictionary.
func NewClient(collegiateKey, medicalKey string) *Client {
	return &Client{
		Backends: []Backend{
			NewCollegiate(collegiateKey),
			NewMedical(medicalKey),
			NewFreeDict(),
		},
	}
}

func (c *Client) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now().UTC()
}

// Lookup resolves word, serving from cache when possible. Error
// outcomes are reported as results rather than errors so a batch run
// can keep going; they are never cached.
func (c *Client) Lookup(ctx context.Context, word string) (*core.WordResult, error) {
	requestedAt := c.now()

	if c.Cache != nil {
		cached, ok, err := c.Cache.GetLookup(ctx, word)
		if err == nil && ok {
			cached.Provenance.LookupID = uuid.NewString()
			cached.Provenance.RequestedAt = requestedAt
			cached.Provenance.ResolvedAt = c.now()
			cached.Provenance.FromCache = true
			cached.Provenance.ToolVersion = c.Version
			return cached, nil
		}
		if err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	var last *core.WordResult
	for i, backend := range c.Backends {
		if !backend.Configured() {
			if i == 0 {
				// A missing primary key is a setup mistake, not a
				// word-level miss. Fail loudly instead of silently
				// degrading to the fallbacks.
				return c.finish(ctx, c.errorResult(word, backend, ErrNotConfigured.Error()), requestedAt), nil
			}
			continue
		}

		result, err := backend.Lookup(ctx, word)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			last = c.errorResult(word, backend, err.Error())
			continue
		}

		if result.Status.Settled() {
			return c.finish(ctx, result, requestedAt), nil
		}
		last = result
	}

	if last == nil {
		last = &core.WordResult{Word: word, Status: core.StatusError, Error: "no lookup backends configured"}
	}
	return c.finish(ctx, last, requestedAt), nil
}

func (c *Client) errorResult(word string, backend Backend, message string) *core.WordResult {
	return &core.WordResult{
		Word:   word,
		Status: core.StatusError,
		Source: string(backend.Name()),
		Error:  message,
	}
}

func (c *Client) finish(ctx context.Context, result *core.WordResult, requestedAt time.Time) *core.WordResult {
	result.Provenance.LookupID = uuid.NewString()
	result.Provenance.RequestedAt = requestedAt
	result.Provenance.ResolvedAt = c.now()
	result.Provenance.ToolVersion = c.Version

	// Errors are transient; caching one would mask a later recovery.
	if c.Cache != nil && result.Status != core.StatusError {
		_ = c.Cache.PutLookup(ctx, result) // nolint:errcheck
	}
	return result
}
