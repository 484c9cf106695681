package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wordlens/wordlens/internal/core"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatResults renders lookup results as a table.
func (f *TableFormatter) FormatResults(results []*core.WordResult) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Word", "Status", "Source", "Notes"})

	promoted := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Status.Promotable() {
			promoted++
		}
		t.AppendRow(table.Row{r.Word, statusLabel(r), resultSource(r), resultNotes(r)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d valid", promoted, len(results)), "", ""})

	return t.Render(), nil
}

// FormatReport renders a run report as a table.
func (f *TableFormatter) FormatReport(report *core.RunReport) (string, error) {
	if report == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Run", report.RunID})
	t.AppendRows([]table.Row{
		{"Date", report.Date},
		{"Mode", report.Mode},
		{"Checked", report.Validated},
		{"Promoted", report.Promoted},
		{"Still invalid", report.StillInvalid},
		{"Remaining", report.Remaining},
		{"Total checked", report.TotalValidated},
		{"Total promoted", report.TotalPromoted},
		{"Duration", fmt.Sprintf("%.1fs", report.Duration)},
	})

	rendered := t.Render()
	if len(report.PromotedWords) > 0 {
		rendered += "\n\nPromoted: " + strings.Join(report.PromotedWords, ", ")
	}
	return rendered, nil
}

// FormatCandidates renders a prioritized candidate list as a table.
func (f *TableFormatter) FormatCandidates(candidates []core.Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Word", "Score", "Reasons"})
	for i, c := range candidates {
		t.AppendRow(table.Row{i + 1, c.Word, fmt.Sprintf("%.0f", c.Score), strings.Join(c.Reasons, "; ")})
	}
	return t.Render(), nil
}

// FormatStatus renders the status report as a table.
func (f *TableFormatter) FormatStatus(status *StatusReport) (string, error) {
	if status == nil {
		return "", nil
	}

	lastRun := status.LastRun
	if lastRun == "" {
		lastRun = "never"
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Corpus valid words", status.CorpusValid},
		{"Corpus invalid words", status.CorpusInvalid},
		{"Checked so far", status.Validated},
		{"Promoted so far", status.Promoted},
		{"Remaining", status.Remaining},
		{"Last run", lastRun},
		{"API budget", fmt.Sprintf("%d/%d today", status.BudgetUsed, status.BudgetLimit)},
		{"Cache entries", fmt.Sprintf("%d (%d expired)", status.CacheEntries, status.CacheExpired)},
		{"Pending discoveries", status.Discoveries},
	})
	return t.Render(), nil
}
