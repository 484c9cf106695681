package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/engine"
)

const (
	collegiateBaseURL = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"
	medicalBaseURL    = "https://www.dictionaryapi.com/api/v3/references/medical/json"

	maxResponseBytes = 1 << 20
	defaultTimeout   = 30 * time.Second
)

// MWBackend looks words up in one Merriam-Webster reference. Requests
// are budgeted, paced, and retried; the response is matched against the
// queried word and classified.
type MWBackend struct {
	ID      core.BackendID
	APIKey  string
	BaseURL string
	Client  *http.Client
	Pacer   *engine.Pacer
	Retry   engine.RetryPolicy
	Budget  Budget
}

// NewCollegiate returns a backend for the collegiate reference.
func NewCollegiate(apiKey string) *MWBackend {
	return newMW(core.BackendCollegiate, collegiateBaseURL, apiKey)
}

// NewMedical returns a backend for the medical reference.
func NewMedical(apiKey string) *MWBackend {
	return newMW(core.BackendMedical, medicalBaseURL, apiKey)
}

func newMW(id core.BackendID, baseURL, apiKey string) *MWBackend {
	return &MWBackend{
		ID:      id,
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: defaultTimeout},
		Pacer:   &engine.Pacer{Delay: 100 * time.Millisecond},
		Retry:   engine.DefaultRetryPolicy(),
	}
}

func (b *MWBackend) Name() core.BackendID { return b.ID }

func (b *MWBackend) Configured() bool { return b.APIKey != "" }

// Lookup queries the reference and classifies the outcome for word.
// word must already be in canonical lowercase form.
func (b *MWBackend) Lookup(ctx context.Context, word string) (*core.WordResult, error) {
	if !b.Configured() {
		return nil, ErrNotConfigured
	}
	if b.Budget != nil {
		if err := b.Budget.Spend(ctx); err != nil {
			return nil, err
		}
	}
	if err := b.Pacer.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", b.BaseURL, url.PathEscape(word), url.QueryEscape(b.APIKey))

	var body []byte
	err := b.Retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return engine.Permanent(fmt.Errorf("build request: %w", err))
		}

		resp, err := b.httpClient().Do(req)
		if err != nil {
			return fmt.Errorf("%s request: %w", b.ID, err)
		}
		defer resp.Body.Close() // nolint:errcheck

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return engine.Permanent(fmt.Errorf("%s: invalid API key (status %d)", b.ID, resp.StatusCode))
		default:
			return fmt.Errorf("%s: unexpected status %d", b.ID, resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("%s read response: %w", b.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return b.parse(word, body)
}

func (b *MWBackend) httpClient() *http.Client {
	if b.Client != nil {
		return b.Client
	}
	return http.DefaultClient
}

// parse interprets a reference response. An empty array or an array of
// suggestion strings means the word is not in this reference.
func (b *MWBackend) parse(word string, body []byte) (*core.WordResult, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", b.ID, err)
	}
	if len(elems) == 0 || isJSONString(elems[0]) {
		return b.result(word, core.StatusNotFound), nil
	}

	for _, raw := range elems {
		var entry mwEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.matches(word) {
			return b.classify(word, entry), nil
		}
	}
	return b.result(word, core.StatusNotFound), nil
}

func (b *MWBackend) classify(word string, entry mwEntry) *core.WordResult {
	head := entry.headword()
	fl := strings.ToLower(entry.FL)

	if strings.Contains(fl, "abbreviation") || isAllCaps(head) {
		res := b.result(word, core.StatusAbbreviation)
		res.PartOfSpeech = entry.FL
		return res
	}

	if isCapitalized(head) || entry.Meta.Section == "biog" || entry.Meta.Section == "geog" {
		res := b.result(word, core.StatusProperNoun)
		res.PartOfSpeech = entry.FL
		return res
	}

	res := b.result(word, core.StatusValid)
	res.PartOfSpeech = entry.FL
	res.Definition = entry.definition()
	res.Etymology = entry.etymology()
	res.Pronunciation = entry.pronunciation()
	return res
}

func (b *MWBackend) result(word string, status core.LookupStatus) *core.WordResult {
	return &core.WordResult{Word: word, Status: status, Source: string(b.ID)}
}

type mwEntry struct {
	Meta struct {
		ID      string   `json:"id"`
		Stems   []string `json:"stems"`
		Section string   `json:"section"`
	} `json:"meta"`
	Hwi struct {
		HW  string `json:"hw"`
		Prs []struct {
			MW string `json:"mw"`
		} `json:"prs"`
	} `json:"hwi"`
	FL  string              `json:"fl"`
	Def []mwDef             `json:"def"`
	Et  [][]json.RawMessage `json:"et"`
}

type mwDef struct {
	Sseq json.RawMessage `json:"sseq"`
}

// headword is the entry's display form: the meta id without its
// homograph suffix, falling back to the syllable-marked headword.
func (e *mwEntry) headword() string {
	if e.Meta.ID != "" {
		return strings.SplitN(e.Meta.ID, ":", 2)[0]
	}
	return strings.ReplaceAll(e.Hwi.HW, "*", "")
}

// matches reports whether the entry is actually about word rather than
// a near-miss the API returned alongside it.
func (e *mwEntry) matches(word string) bool {
	if strings.EqualFold(e.headword(), word) {
		return true
	}
	if strings.EqualFold(strings.ReplaceAll(e.Hwi.HW, "*", ""), word) {
		return true
	}
	for _, stem := range e.Meta.Stems {
		if strings.EqualFold(stem, word) {
			return true
		}
	}
	return false
}

func (e *mwEntry) definition() string {
	for _, d := range e.Def {
		var sseq interface{}
		if err := json.Unmarshal(d.Sseq, &sseq); err != nil {
			continue
		}
		if text := firstDefText(sseq); text != "" {
			return stripMarkers(text)
		}
	}
	return ""
}

func (e *mwEntry) etymology() string {
	for _, pair := range e.Et {
		if len(pair) != 2 {
			continue
		}
		var tag, text string
		if err := json.Unmarshal(pair[0], &tag); err != nil || tag != "text" {
			continue
		}
		if err := json.Unmarshal(pair[1], &text); err != nil {
			continue
		}
		return stripMarkers(text)
	}
	return ""
}

func (e *mwEntry) pronunciation() string {
	if len(e.Hwi.Prs) > 0 {
		return e.Hwi.Prs[0].MW
	}
	return ""
}

// firstDefText finds the first ["text", s] leaf in an sseq tree. Map
// nodes are only descended through known sense keys so traversal order
// stays deterministic.
func firstDefText(node interface{}) string {
	switch v := node.(type) {
	case []interface{}:
		if len(v) == 2 {
			if tag, ok := v[0].(string); ok && tag == "text" {
				if s, ok := v[1].(string); ok {
					return s
				}
			}
		}
		for _, child := range v {
			if s := firstDefText(child); s != "" {
				return s
			}
		}
	case map[string]interface{}:
		for _, key := range []string{"dt", "sense", "sdsense"} {
			if child, ok := v[key]; ok {
				if s := firstDefText(child); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

var (
	mwLinkMarker = regexp.MustCompile(`\{(?:sx|a_link|d_link|i_link|et_link|mat|dxt)\|([^|}]*)[^}]*\}`)
	mwMarker     = regexp.MustCompile(`\{[^}]*\}`)
	mwSpaces     = regexp.MustCompile(`\s+`)
)

// stripMarkers removes Merriam-Webster formatting tokens, keeping the
// referenced word for cross-reference markers like {sx|dog||}.
func stripMarkers(s string) string {
	s = mwLinkMarker.ReplaceAllString(s, "$1")
	s = mwMarker.ReplaceAllString(s, "")
	return strings.TrimSpace(mwSpaces.ReplaceAllString(s, " "))
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, `"`)
}

func isAllCaps(s string) bool {
	return len(s) > 1 && s == strings.ToUpper(s) && s != strings.ToLower(s)
}

func isCapitalized(s string) bool {
	if s == "" || isAllCaps(s) {
		return false
	}
	first := s[:1]
	return first == strings.ToUpper(first) && first != strings.ToLower(first)
}
