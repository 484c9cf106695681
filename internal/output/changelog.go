package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/wordlens/wordlens/internal/corpus"
)

const changelogHeader = "# Corpus Changelog\n"

// RenderChangelogSection renders one update's changelog entry from its
// recorded stats and the word metadata captured during the update.
func RenderChangelogSection(stats *corpus.UpdateStats, meta map[string]corpus.Entry) string {
	var sb strings.Builder

	date := stats.LastUpdate
	if len(date) >= 10 {
		date = date[:10]
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", date))

	sb.WriteString("### Summary\n\n")
	sb.WriteString(fmt.Sprintf("- New words: %d\n", len(stats.NewWords)))
	sb.WriteString(fmt.Sprintf("- Promoted from invalid: %d\n", len(stats.Promoted)))
	sb.WriteString(fmt.Sprintf("- Corpus size: %d valid, %d invalid\n\n", stats.TotalValid, stats.TotalInvalid))

	if len(stats.NewWords) > 0 {
		sb.WriteString("### New Words\n\n")
		sb.WriteString("| Word | Source | Definition |\n")
		sb.WriteString("|------|--------|------------|\n")
		for _, word := range stats.NewWords {
			entry := meta[word]
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				escapeMarkdownCell(word),
				escapeMarkdownCell(entry.Source),
				escapeMarkdownCell(truncate(entry.Definition, 80))))
		}
		sb.WriteString("\n")
	}

	if len(stats.Promoted) > 0 {
		sb.WriteString("### Promoted\n\n")
		sb.WriteString("Words previously rejected, now verified against the dictionary:\n\n")
		for _, word := range stats.Promoted {
			entry := meta[word]
			line := fmt.Sprintf("- **%s**", word)
			if entry.PartOfSpeech != "" {
				line += fmt.Sprintf(" (%s)", entry.PartOfSpeech)
			}
			if entry.Definition != "" {
				line += ": " + truncate(entry.Definition, 80)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	if len(stats.Sources) > 0 {
		sb.WriteString("### Discovery Sources\n\n")
		names := make([]string, 0, len(stats.Sources))
		for name := range stats.Sources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", name, stats.Sources[name]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteChangelog prepends the rendered section to the corpus changelog,
// keeping the newest update at the top.
func WriteChangelog(m *corpus.Manager, stats *corpus.UpdateStats, meta map[string]corpus.Entry) error {
	section := RenderChangelogSection(stats, meta)

	existing, err := os.ReadFile(m.ChangelogPath()) // #nosec G304 -- corpus dir comes from config
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read changelog: %w", err)
	}

	body := strings.TrimPrefix(string(existing), changelogHeader)
	body = strings.TrimLeft(body, "\n")

	content := changelogHeader + "\n" + section
	if body != "" {
		content += body
	}

	if err := os.WriteFile(m.ChangelogPath(), []byte(content), 0o600); err != nil {
		return fmt.Errorf("write changelog: %w", err)
	}
	return nil
}
