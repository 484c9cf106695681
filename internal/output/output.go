package output

import (
	"fmt"
	"strings"

	"github.com/wordlens/wordlens/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders lookup results, run reports, and candidate lists.
type Formatter interface {
	FormatResults(results []*core.WordResult) (string, error)
	FormatReport(report *core.RunReport) (string, error)
	FormatCandidates(candidates []core.Candidate) (string, error)
	FormatStatus(status *StatusReport) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// StatusReport aggregates the state a curator checks between runs.
type StatusReport struct {
	CorpusValid   int    `json:"corpus_valid"`
	CorpusInvalid int    `json:"corpus_invalid"`
	Validated     int    `json:"validated"`
	Promoted      int    `json:"promoted"`
	Remaining     int    `json:"remaining"`
	LastRun       string `json:"last_run,omitempty"`
	BudgetUsed    int    `json:"budget_used"`
	BudgetLimit   int    `json:"budget_limit"`
	CacheEntries  int    `json:"cache_entries"`
	CacheExpired  int    `json:"cache_expired"`
	Discoveries   int    `json:"pending_discoveries"`
}

func statusLabel(r *core.WordResult) string {
	switch r.Status {
	case core.StatusValid:
		return "valid"
	case core.StatusProperNoun:
		return "proper noun"
	case core.StatusAbbreviation:
		return "abbreviation"
	case core.StatusNotFound:
		return "not found"
	case core.StatusError:
		return "error"
	default:
		return string(r.Status)
	}
}

func resultNotes(r *core.WordResult) string {
	if r.Error != "" {
		return r.Error
	}
	var parts []string
	if r.PartOfSpeech != "" {
		parts = append(parts, r.PartOfSpeech)
	}
	if r.Definition != "" {
		parts = append(parts, truncate(r.Definition, 60))
	}
	return strings.Join(parts, ": ")
}

func resultSource(r *core.WordResult) string {
	if r.Source == "" {
		return ""
	}
	if r.Provenance.FromCache {
		return r.Source + " (cached)"
	}
	return r.Source
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndex(s[:max], " ")
	if cut <= 0 {
		cut = max
	}
	return s[:cut] + "..."
}

func reportSummary(report *core.RunReport) string {
	return fmt.Sprintf("checked %d, promoted %d, %d remaining",
		report.Validated, report.Promoted, report.Remaining)
}
