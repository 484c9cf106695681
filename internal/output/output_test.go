package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/corpus"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func sampleResults() []*core.WordResult {
	return []*core.WordResult{
		{
			Word:         "mind",
			Status:       core.StatusValid,
			PartOfSpeech: "noun",
			Definition:   "the element of a person that feels and reasons",
			Source:       "mw-collegiate",
		},
		{Word: "qzxjk", Status: core.StatusNotFound, Source: "free-dictionary"},
		{Word: "nasa", Status: core.StatusAbbreviation, Source: "mw-collegiate"},
	}
}

func TestTableFormatterResults(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatResults(sampleResults())
	require.NoError(t, err)
	require.Contains(t, rendered, "mind")
	require.Contains(t, rendered, "not found")
	require.Contains(t, rendered, "abbreviation")
	// Footers render uppercased under the rounded style.
	require.Contains(t, strings.ToLower(rendered), "1/3 valid")
}

func TestMarkdownFormatterResults(t *testing.T) {
	rendered, err := (&MarkdownFormatter{}).FormatResults(sampleResults())
	require.NoError(t, err)
	require.Contains(t, rendered, "| mind | valid |")
	require.Contains(t, rendered, "**1/3 valid**")
}

func TestJSONFormatterResults(t *testing.T) {
	rendered, err := (&JSONFormatter{Indent: true}).FormatResults(sampleResults())
	require.NoError(t, err)

	var decoded []*core.WordResult
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	require.Len(t, decoded, 3)
	require.Equal(t, "mind", decoded[0].Word)
}

func TestFormatReport(t *testing.T) {
	report := &core.RunReport{
		RunID:          "a2b9",
		Date:           "2026-02-07",
		Mode:           "priority",
		Validated:      50,
		Promoted:       2,
		PromotedWords:  []string{"mind", "boba"},
		StillInvalid:   48,
		Remaining:      950,
		TotalValidated: 150,
		TotalPromoted:  5,
		Duration:       12.5,
	}

	rendered, err := (&TableFormatter{}).FormatReport(report)
	require.NoError(t, err)
	require.Contains(t, rendered, "2026-02-07")
	require.Contains(t, rendered, "mind, boba")

	rendered, err = (&MarkdownFormatter{}).FormatReport(report)
	require.NoError(t, err)
	require.Contains(t, rendered, "- Promoted: 2")
}

func TestFormatCandidates(t *testing.T) {
	candidates := []core.Candidate{
		{Word: "bounteousness", Score: 55, Reasons: []string{"score 55.0"}},
		{Word: "mind", Score: 75},
	}

	rendered, err := (&TableFormatter{}).FormatCandidates(candidates)
	require.NoError(t, err)
	require.Contains(t, rendered, "bounteousness")
	require.Contains(t, rendered, "55")
}

func TestFormatStatus(t *testing.T) {
	status := &StatusReport{
		CorpusValid:   1200,
		CorpusInvalid: 300,
		Validated:     150,
		Promoted:      5,
		Remaining:     150,
		BudgetUsed:    42,
		BudgetLimit:   1000,
		CacheEntries:  140,
	}

	rendered, err := (&TableFormatter{}).FormatStatus(status)
	require.NoError(t, err)
	require.Contains(t, rendered, "42/1000 today")
	require.Contains(t, rendered, "never")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 60))
	long := strings.Repeat("word ", 30)
	out := truncate(long, 60)
	require.LessOrEqual(t, len(out), 63)
	require.True(t, strings.HasSuffix(out, "..."))
}

func sampleStats() *corpus.UpdateStats {
	return &corpus.UpdateStats{
		LastUpdate:   "2026-02-07T12:00:00Z",
		NewWords:     []string{"boba"},
		Promoted:     []string{"mind"},
		TotalValid:   1201,
		TotalInvalid: 299,
		Sources:      map[string]int{"wordnik-wotd": 1},
	}
}

func TestRenderChangelogSection(t *testing.T) {
	meta := map[string]corpus.Entry{
		"boba": {Word: "boba", Source: "wordnik-wotd", Definition: "tapioca pearls in tea"},
		"mind": {Word: "mind", PartOfSpeech: "noun", Definition: "the element of a person that feels and reasons"},
	}

	section := RenderChangelogSection(sampleStats(), meta)
	require.Contains(t, section, "## 2026-02-07")
	require.Contains(t, section, "| boba | wordnik-wotd |")
	require.Contains(t, section, "**mind** (noun)")
	require.Contains(t, section, "- wordnik-wotd: 1")
}

func TestWriteChangelogPrepends(t *testing.T) {
	m := corpus.NewManager(t.TempDir())

	first := sampleStats()
	require.NoError(t, WriteChangelog(m, first, nil))

	second := sampleStats()
	second.LastUpdate = "2026-03-01T12:00:00Z"
	require.NoError(t, WriteChangelog(m, second, nil))

	data, err := os.ReadFile(m.ChangelogPath())
	require.NoError(t, err)
	content := string(data)
	require.True(t, strings.HasPrefix(content, changelogHeader))
	require.Less(t, strings.Index(content, "## 2026-03-01"), strings.Index(content, "## 2026-02-07"))
}

func TestRenderFigures(t *testing.T) {
	dir := t.TempDir()

	updatePath := filepath.Join(dir, "update.png")
	require.NoError(t, RenderUpdateFigure(sampleStats(), updatePath))

	sourcesPath := filepath.Join(dir, "sources.png")
	require.NoError(t, RenderSourcesFigure(sampleStats(), sourcesPath))

	for _, path := range []string{updatePath, sourcesPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}
