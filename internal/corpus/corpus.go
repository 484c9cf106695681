// Package corpus manages the word-list artifacts on disk: the valid and
// invalid lists, per-word metadata, the promotion log, and update
// bookkeeping. Lists are stored sorted and written atomically.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wordlens/wordlens/internal/core"
)

const (
	validFile     = "valid_words.txt"
	invalidFile   = "invalid_words.txt"
	metadataFile  = "word_metadata.json"
	promotedFile  = "promoted_words.json"
	progressFile  = "validation_progress.json"
	statsFile     = "update_stats.json"
	changelogFile = "CHANGELOG.md"
)

// Entry is the metadata kept for a word admitted to the valid list.
type Entry struct {
	Word             string `json:"word"`
	Source           string `json:"source"`
	AddedDate        string `json:"added_date"`
	ValidationStatus string `json:"validation_status"`
	PartOfSpeech     string `json:"part_of_speech,omitempty"`
	Definition       string `json:"definition,omitempty"`
	Pronunciation    string `json:"pronunciation,omitempty"`
	Etymology        string `json:"etymology,omitempty"`
}

// NewEntry builds metadata from a lookup result.
func NewEntry(res *core.WordResult, addedOn time.Time) Entry {
	return Entry{
		Word:             res.Word,
		Source:           res.Source,
		AddedDate:        addedOn.UTC().Format("2006-01-02"),
		ValidationStatus: "validated",
		PartOfSpeech:     res.PartOfSpeech,
		Definition:       res.Definition,
		Pronunciation:    res.Pronunciation,
		Etymology:        res.Etymology,
	}
}

// Manager reads and writes the corpus artifacts under one directory.
type Manager struct {
	Dir string
}

// NewManager returns a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{Dir: dir}
}

func (m *Manager) ValidPath() string     { return filepath.Join(m.Dir, validFile) }
func (m *Manager) InvalidPath() string   { return filepath.Join(m.Dir, invalidFile) }
func (m *Manager) MetadataPath() string  { return filepath.Join(m.Dir, metadataFile) }
func (m *Manager) PromotedPath() string  { return filepath.Join(m.Dir, promotedFile) }
func (m *Manager) ProgressPath() string  { return filepath.Join(m.Dir, progressFile) }
func (m *Manager) StatsPath() string     { return filepath.Join(m.Dir, statsFile) }
func (m *Manager) ChangelogPath() string { return filepath.Join(m.Dir, changelogFile) }

// ValidWords loads the valid list. A missing file is an empty list.
func (m *Manager) ValidWords() ([]string, error) {
	return readWordList(m.ValidPath())
}

// InvalidWords loads the invalid list. A missing file is an empty list.
func (m *Manager) InvalidWords() ([]string, error) {
	return readWordList(m.InvalidPath())
}

// SaveValid writes the valid list sorted and deduplicated.
func (m *Manager) SaveValid(words []string) error {
	return m.writeWordList(m.ValidPath(), words)
}

// SaveInvalid writes the invalid list sorted and deduplicated.
func (m *Manager) SaveInvalid(words []string) error {
	return m.writeWordList(m.InvalidPath(), words)
}

// Metadata loads the per-word metadata map. A missing file is an empty
// map.
func (m *Manager) Metadata() (map[string]Entry, error) {
	data, err := os.ReadFile(m.MetadataPath()) // #nosec G304 -- corpus dir comes from config
	if os.IsNotExist(err) {
		return make(map[string]Entry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	meta := make(map[string]Entry)
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return meta, nil
}

// SaveMetadata writes the metadata map.
func (m *Manager) SaveMetadata(meta map[string]Entry) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return m.writeFileAtomic(m.MetadataPath(), append(data, '\n'))
}

// Counts reports the sizes of both lists.
func (m *Manager) Counts() (valid int, invalid int, err error) {
	validWords, err := m.ValidWords()
	if err != nil {
		return 0, 0, err
	}
	invalidWords, err := m.InvalidWords()
	if err != nil {
		return 0, 0, err
	}
	return len(validWords), len(invalidWords), nil
}

func readWordList(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- corpus dir comes from config
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	defer f.Close() // nolint:errcheck

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return words, nil
}

func (m *Manager) writeWordList(path string, words []string) error {
	unique := make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word != "" {
			unique[word] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(unique))
	for word := range unique {
		sorted = append(sorted, word)
	}
	sort.Strings(sorted)

	var sb strings.Builder
	for _, word := range sorted {
		sb.WriteString(word)
		sb.WriteByte('\n')
	}
	return m.writeFileAtomic(path, []byte(sb.String()))
}

// writeFileAtomic stages the content next to the target and renames it
// into place, so readers never see a partial file.
func (m *Manager) writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create corpus dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()        // nolint:errcheck
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("commit %s: %w", path, err)
	}
	return nil
}
