package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/engine"
)

const freeDictBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// FreeDictBackend queries the keyless Free Dictionary API. It is the
// last resort in the fallback chain and is not charged against the
// paid-request budget.
type FreeDictBackend struct {
	BaseURL string
	Client  *http.Client
	Pacer   *engine.Pacer
	Retry   engine.RetryPolicy
}

// NewFreeDict returns a backend for the Free Dictionary API.
func NewFreeDict() *FreeDictBackend {
	return &FreeDictBackend{
		BaseURL: freeDictBaseURL,
		Client:  &http.Client{Timeout: defaultTimeout},
		Pacer:   &engine.Pacer{Delay: 100 * time.Millisecond},
		Retry:   engine.DefaultRetryPolicy(),
	}
}

func (b *FreeDictBackend) Name() core.BackendID { return core.BackendFreeDict }

func (b *FreeDictBackend) Configured() bool { return true }

type freeDictEntry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Origin   string `json:"origin"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup queries the API. The service answers 404 for unknown words.
func (b *FreeDictBackend) Lookup(ctx context.Context, word string) (*core.WordResult, error) {
	if err := b.Pacer.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s", b.BaseURL, url.PathEscape(word))

	var (
		body     []byte
		notFound bool
	)
	err := b.Retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return engine.Permanent(fmt.Errorf("build request: %w", err))
		}

		resp, err := b.httpClient().Do(req)
		if err != nil {
			return fmt.Errorf("free-dictionary request: %w", err)
		}
		defer resp.Body.Close() // nolint:errcheck

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			notFound = true
			return nil
		default:
			return fmt.Errorf("free-dictionary: unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("free-dictionary read response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &core.WordResult{Word: word, Source: string(core.BackendFreeDict)}
	if notFound {
		result.Status = core.StatusNotFound
		return result, nil
	}

	var entries []freeDictEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("free-dictionary: decode response: %w", err)
	}
	if len(entries) == 0 {
		result.Status = core.StatusNotFound
		return result, nil
	}

	// The entry must answer the queried word; the service sometimes
	// returns a related headword instead.
	entry := entries[0]
	if !strings.EqualFold(entry.Word, word) {
		result.Status = core.StatusNotFound
		return result, nil
	}

	result.Status = core.StatusValid
	result.Pronunciation = entry.Phonetic
	result.Etymology = entry.Origin
	if len(entry.Meanings) > 0 {
		result.PartOfSpeech = entry.Meanings[0].PartOfSpeech
		if len(entry.Meanings[0].Definitions) > 0 {
			result.Definition = entry.Meanings[0].Definitions[0].Definition
		}
	}
	return result, nil
}

func (b *FreeDictBackend) httpClient() *http.Client {
	if b.Client != nil {
		return b.Client
	}
	return http.DefaultClient
}
