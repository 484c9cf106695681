// Package rules enforces the structural constraints a string must meet
// before it is worth spending a dictionary lookup on.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	DefaultMinLength = 2
	DefaultMaxLength = 45
)

var alphabetic = regexp.MustCompile(`^[a-z]+$`)

// Rules holds the corpus intake constraints. The zero value rejects
// nothing beyond emptiness; use Default for the production policy.
type Rules struct {
	MinLength      int
	MaxLength      int
	LowercaseOnly  bool
	AlphabeticOnly bool
	NoProperNouns  bool
}

// Default returns the standard corpus intake rules.
func Default() Rules {
	return Rules{
		MinLength:      DefaultMinLength,
		MaxLength:      DefaultMaxLength,
		LowercaseOnly:  true,
		AlphabeticOnly: true,
		NoProperNouns:  true,
	}
}

// Validate checks raw against the structural rules and returns the
// canonical lowercase form. The error names the violated constraint
// and the configured bound. NoProperNouns is not a string-shape rule;
// it is enforced downstream by lookup classification.
func (r Rules) Validate(raw string) (string, error) {
	word := strings.TrimSpace(raw)
	if word == "" {
		return "", errors.New("empty word")
	}

	if r.LowercaseOnly && word != strings.ToLower(word) {
		return "", errors.New("contains uppercase letters (potential proper noun)")
	}
	word = strings.ToLower(word)

	if r.AlphabeticOnly && !alphabetic.MatchString(word) {
		return "", errors.New("contains non-alphabetic characters")
	}

	if r.MinLength > 0 && len(word) < r.MinLength {
		return "", fmt.Errorf("too short (min %d characters)", r.MinLength)
	}
	if r.MaxLength > 0 && len(word) > r.MaxLength {
		return "", fmt.Errorf("too long (max %d characters)", r.MaxLength)
	}

	return word, nil
}
