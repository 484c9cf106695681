package output

import (
	"fmt"
	"strings"

	"github.com/wordlens/wordlens/internal/core"
)

// MarkdownFormatter renders results as markdown tables.
type MarkdownFormatter struct{}

// FormatResults renders lookup results as a markdown table.
func (f *MarkdownFormatter) FormatResults(results []*core.WordResult) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("| Word | Status | Source | Notes |\n")
	sb.WriteString("|------|--------|--------|-------|\n")

	promoted := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Status.Promotable() {
			promoted++
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escapeMarkdownCell(r.Word),
			escapeMarkdownCell(statusLabel(r)),
			escapeMarkdownCell(resultSource(r)),
			escapeMarkdownCell(resultNotes(r)),
		))
	}
	sb.WriteString(fmt.Sprintf("\n**%d/%d valid**\n", promoted, len(results)))
	return sb.String(), nil
}

// FormatReport renders a run report as markdown.
func (f *MarkdownFormatter) FormatReport(report *core.RunReport) (string, error) {
	if report == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Reclamation run %s\n\n", escapeMarkdownCell(report.Date)))
	sb.WriteString(fmt.Sprintf("- Mode: %s\n", report.Mode))
	sb.WriteString(fmt.Sprintf("- Checked: %d\n", report.Validated))
	sb.WriteString(fmt.Sprintf("- Promoted: %d\n", report.Promoted))
	sb.WriteString(fmt.Sprintf("- Still invalid: %d\n", report.StillInvalid))
	sb.WriteString(fmt.Sprintf("- Remaining: %d\n", report.Remaining))
	if len(report.PromotedWords) > 0 {
		sb.WriteString(fmt.Sprintf("- Promoted words: %s\n", strings.Join(report.PromotedWords, ", ")))
	}
	return sb.String(), nil
}

// FormatCandidates renders a candidate list as a markdown table.
func (f *MarkdownFormatter) FormatCandidates(candidates []core.Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("| # | Word | Score | Reasons |\n")
	sb.WriteString("|---|------|-------|---------|\n")
	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("| %d | %s | %.0f | %s |\n",
			i+1,
			escapeMarkdownCell(c.Word),
			c.Score,
			escapeMarkdownCell(strings.Join(c.Reasons, "; ")),
		))
	}
	return sb.String(), nil
}

// FormatStatus renders the status report as markdown.
func (f *MarkdownFormatter) FormatStatus(status *StatusReport) (string, error) {
	if status == nil {
		return "", nil
	}

	lastRun := status.LastRun
	if lastRun == "" {
		lastRun = "never"
	}

	var sb strings.Builder
	sb.WriteString("## Status\n\n")
	sb.WriteString(fmt.Sprintf("- Corpus: %d valid, %d invalid\n", status.CorpusValid, status.CorpusInvalid))
	sb.WriteString(fmt.Sprintf("- Checked so far: %d (%d promoted, %d remaining)\n",
		status.Validated, status.Promoted, status.Remaining))
	sb.WriteString(fmt.Sprintf("- Last run: %s\n", lastRun))
	sb.WriteString(fmt.Sprintf("- API budget: %d/%d today\n", status.BudgetUsed, status.BudgetLimit))
	sb.WriteString(fmt.Sprintf("- Cache: %d entries (%d expired)\n", status.CacheEntries, status.CacheExpired))
	sb.WriteString(fmt.Sprintf("- Pending discoveries: %d\n", status.Discoveries))
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
