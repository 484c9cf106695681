// Package discover pulls new-word candidates from external sources:
// word-of-the-day feeds and a manually curated list.
package discover

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	defaultMWFeedURL  = "https://www.merriam-webster.com/wotd/feed/rss2"
	defaultWordnikURL = "https://api.wordnik.com/v4/words.json/wordOfTheDay"

	defaultLookbackDays = 30
	maxBodyBytes        = 1 << 20
)

// Source yields candidate words from one upstream.
type Source interface {
	Name() string
	Discover(ctx context.Context) ([]string, error)
}

// MWFeedSource reads the Merriam-Webster word-of-the-day RSS feed.
// Item titles are the words.
type MWFeedSource struct {
	URL    string
	Parser *gofeed.Parser
}

// NewMWFeedSource returns the production feed source.
func NewMWFeedSource(feedURL string) *MWFeedSource {
	if feedURL == "" {
		feedURL = defaultMWFeedURL
	}
	return &MWFeedSource{URL: feedURL, Parser: gofeed.NewParser()}
}

func (s *MWFeedSource) Name() string { return "merriam-webster-wotd" }

func (s *MWFeedSource) Discover(ctx context.Context) ([]string, error) {
	parser := s.Parser
	if parser == nil {
		parser = gofeed.NewParser()
	}

	feed, err := parser.ParseURLWithContext(s.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch word-of-the-day feed: %w", err)
	}

	words := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		word := strings.ToLower(strings.TrimSpace(item.Title))
		if word != "" {
			words = append(words, word)
		}
	}
	return words, nil
}

// WordnikSource fetches the Wordnik word of the day for each day in the
// lookback window.
type WordnikSource struct {
	URL          string
	APIKey       string
	LookbackDays int
	Client       *http.Client
	Clock        func() time.Time
}

// NewWordnikSource returns the production Wordnik source.
func NewWordnikSource(apiKey string, lookbackDays int) *WordnikSource {
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}
	return &WordnikSource{
		URL:          defaultWordnikURL,
		APIKey:       apiKey,
		LookbackDays: lookbackDays,
		Client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *WordnikSource) Name() string { return "wordnik-wotd" }

func (s *WordnikSource) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *WordnikSource) Discover(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, fmt.Errorf("wordnik API key not configured")
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	today := s.now().UTC()
	words := make([]string, 0, s.LookbackDays)
	for i := 0; i < s.LookbackDays; i++ {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")

		word, err := s.fetchDay(ctx, client, day)
		if err != nil {
			// A single missing day is not worth failing the window.
			if ctx.Err() != nil {
				return words, ctx.Err()
			}
			continue
		}
		if word != "" {
			words = append(words, word)
		}
	}
	return words, nil
}

func (s *WordnikSource) fetchDay(ctx context.Context, client *http.Client, day string) (string, error) {
	endpoint := fmt.Sprintf("%s?date=%s&api_key=%s", s.URL, url.QueryEscape(day), url.QueryEscape(s.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wordnik: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	var payload struct {
		Word string `json:"word"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("wordnik: decode response: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(payload.Word)), nil
}

// ManualSource reads a curator-maintained word list. Blank lines and
// #-comments are ignored.
type ManualSource struct {
	Path string
}

func (s *ManualSource) Name() string { return "manual" }

func (s *ManualSource) Discover(_ context.Context) ([]string, error) {
	f, err := os.Open(s.Path) // #nosec G304 -- manual list path comes from config
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manual additions: %w", err)
	}
	defer f.Close() // nolint:errcheck

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manual additions: %w", err)
	}
	return words, nil
}
