package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wordlens/wordlens/internal/core/rules"
)

func intakeRules() rules.Rules {
	return rules.Default()
}

func resolveWords(positional []string, wordsFile string) ([]string, error) {
	trimmed := strings.TrimSpace(wordsFile)
	if trimmed != "" {
		if len(positional) > 0 {
			return nil, fmt.Errorf("cannot combine positional words with --words-file")
		}
		return readWordsFile(trimmed)
	}

	intake := intakeRules()
	words := make([]string, 0, len(positional))
	for _, raw := range positional {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		word, err := intake.Validate(strings.ToLower(strings.TrimSpace(raw)))
		if err != nil {
			return nil, fmt.Errorf("invalid word %q: %w", raw, err)
		}
		words = append(words, word)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("at least one word is required")
	}
	return words, nil
}

func readWordsFile(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path) // #nosec G304 -- path comes from the CLI flag
		if err != nil {
			return nil, err
		}
		defer file.Close() // nolint:errcheck
		reader = file
	}

	intake := intakeRules()
	words := make([]string, 0)
	scanner := bufio.NewScanner(reader)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		word, err := intake.Validate(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid word on line %d: %w", line, err)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no words found")
	}
	return words, nil
}
