package dict

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/core"
)

type fakeBackend struct {
	id           core.BackendID
	unconfigured bool
	result       *core.WordResult
	err          error
	calls        int
}

func (f *fakeBackend) Name() core.BackendID { return f.id }
func (f *fakeBackend) Configured() bool     { return !f.unconfigured }

func (f *fakeBackend) Lookup(_ context.Context, word string) (*core.WordResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	res.Word = word
	return &res, nil
}

type fakeCache struct {
	stored map[string]*core.WordResult
	puts   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[string]*core.WordResult)}
}

func (f *fakeCache) GetLookup(_ context.Context, word string) (*core.WordResult, bool, error) {
	res, ok := f.stored[word]
	if !ok {
		return nil, false, nil
	}
	copied := *res
	return &copied, true, nil
}

func (f *fakeCache) PutLookup(_ context.Context, result *core.WordResult) error {
	copied := *result
	f.stored[result.Word] = &copied
	f.puts++
	return nil
}

func valid(id core.BackendID) *core.WordResult {
	return &core.WordResult{Status: core.StatusValid, Source: string(id)}
}

func notFound(id core.BackendID) *core.WordResult {
	return &core.WordResult{Status: core.StatusNotFound, Source: string(id)}
}

func TestChainFirstBackendSettles(t *testing.T) {
	first := &fakeBackend{id: core.BackendCollegiate, result: valid(core.BackendCollegiate)}
	second := &fakeBackend{id: core.BackendMedical, result: valid(core.BackendMedical)}
	client := &Client{Backends: []Backend{first, second}, Version: "1.2.3"}

	res, err := client.Lookup(context.Background(), "mind")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.Equal(t, string(core.BackendCollegiate), res.Source)
	require.Equal(t, 0, second.calls)

	require.NotEmpty(t, res.Provenance.LookupID)
	require.Equal(t, "1.2.3", res.Provenance.ToolVersion)
	require.False(t, res.Provenance.FromCache)
}

func TestChainAdvancesOnNotFound(t *testing.T) {
	first := &fakeBackend{id: core.BackendCollegiate, result: notFound(core.BackendCollegiate)}
	second := &fakeBackend{id: core.BackendMedical, result: valid(core.BackendMedical)}
	client := &Client{Backends: []Backend{first, second}}

	res, err := client.Lookup(context.Background(), "boba")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.Equal(t, string(core.BackendMedical), res.Source)
}

func TestChainAdvancesOnBackendError(t *testing.T) {
	first := &fakeBackend{id: core.BackendCollegiate, err: errors.New("mw-collegiate: unexpected status 500")}
	second := &fakeBackend{id: core.BackendFreeDict, result: valid(core.BackendFreeDict)}
	client := &Client{Backends: []Backend{first, second}}

	res, err := client.Lookup(context.Background(), "boba")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.Equal(t, string(core.BackendFreeDict), res.Source)
}

func TestChainProperNounShortCircuits(t *testing.T) {
	first := &fakeBackend{id: core.BackendCollegiate, result: &core.WordResult{
		Status: core.StatusProperNoun, Source: string(core.BackendCollegiate),
	}}
	second := &fakeBackend{id: core.BackendMedical, result: valid(core.BackendMedical)}
	client := &Client{Backends: []Backend{first, second}}

	res, err := client.Lookup(context.Background(), "paris")
	require.NoError(t, err)
	require.Equal(t, core.StatusProperNoun, res.Status)
	require.Equal(t, 0, second.calls)
}

func TestChainLastResultStands(t *testing.T) {
	first := &fakeBackend{id: core.BackendCollegiate, result: notFound(core.BackendCollegiate)}
	second := &fakeBackend{id: core.BackendMedical, err: errors.New("mw-medical: unexpected status 503")}
	client := &Client{Backends: []Backend{first, second}}

	res, err := client.Lookup(context.Background(), "qzxjk")
	require.NoError(t, err)
	require.Equal(t, core.StatusError, res.Status)
	require.Equal(t, string(core.BackendMedical), res.Source)
	require.Contains(t, res.Error, "status 503")
}

func TestChainPrimaryUnconfiguredFailsLoudly(t *testing.T) {
	first := &fakeBackend{id: core.BackendCollegiate, unconfigured: true}
	second := &fakeBackend{id: core.BackendFreeDict, result: valid(core.BackendFreeDict)}
	client := &Client{Backends: []Backend{first, second}}

	res, err := client.Lookup(context.Background(), "mind")
	require.NoError(t, err)
	require.Equal(t, core.StatusError, res.Status)
	require.Equal(t, "API key not configured", res.Error)
	require.Equal(t, 0, second.calls)
}

func TestChainSecondaryUnconfiguredSkipped(t *testing.T) {
	first := &fakeBackend{id: core.BackendCollegiate, result: notFound(core.BackendCollegiate)}
	second := &fakeBackend{id: core.BackendMedical, unconfigured: true}
	third := &fakeBackend{id: core.BackendFreeDict, result: valid(core.BackendFreeDict)}
	client := &Client{Backends: []Backend{first, second, third}}

	res, err := client.Lookup(context.Background(), "boba")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.Equal(t, string(core.BackendFreeDict), res.Source)
	require.Equal(t, 0, second.calls)
}

func TestChainCacheHitSkipsBackends(t *testing.T) {
	cache := newFakeCache()
	cache.stored["mind"] = &core.WordResult{Word: "mind", Status: core.StatusValid, Source: string(core.BackendCollegiate)}

	backend := &fakeBackend{id: core.BackendCollegiate, result: valid(core.BackendCollegiate)}
	client := &Client{Backends: []Backend{backend}, Cache: cache}

	res, err := client.Lookup(context.Background(), "mind")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.True(t, res.Provenance.FromCache)
	require.Equal(t, 0, backend.calls)
}

func TestChainCachesSettledButNotErrors(t *testing.T) {
	cache := newFakeCache()
	client := &Client{
		Backends: []Backend{&fakeBackend{id: core.BackendCollegiate, result: valid(core.BackendCollegiate)}},
		Cache:    cache,
	}
	_, err := client.Lookup(context.Background(), "mind")
	require.NoError(t, err)
	require.Equal(t, 1, cache.puts)

	failing := &Client{
		Backends: []Backend{&fakeBackend{id: core.BackendCollegiate, err: errors.New("boom")}},
		Cache:    cache,
	}
	res, err := failing.Lookup(context.Background(), "boba")
	require.NoError(t, err)
	require.Equal(t, core.StatusError, res.Status)
	require.Equal(t, 1, cache.puts)
}

func TestChainNoBackends(t *testing.T) {
	client := &Client{}
	res, err := client.Lookup(context.Background(), "mind")
	require.NoError(t, err)
	require.Equal(t, core.StatusError, res.Status)
	require.Contains(t, res.Error, "no lookup backends")
}
