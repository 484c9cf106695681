package heuristics

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Ruleset carries the letter-pattern knowledge the prioritizer runs on.
// Curators can override individual fields from a YAML file; absent
// fields keep their defaults.
type Ruleset struct {
	// Prefixes that generate synthetic compounds rarely found in
	// dictionaries (anti-, pseudo-, ...).
	ProductivePrefixes []string `yaml:"productive_prefixes"`

	// Prefixes that appear in real dictionary words (un-, re-, ...).
	RealWordPrefixes []string `yaml:"real_word_prefixes"`

	CommonSuffixes []string `yaml:"common_suffixes"`

	// Regular expressions that mark a word as non-English. A word
	// matching any of these never reaches scoring.
	RejectPatterns []string `yaml:"reject_patterns"`

	CommonFirstLetters string `yaml:"common_first_letters"`

	compiled []*regexp.Regexp
}

// DefaultRuleset returns the production-tuned pattern sets.
func DefaultRuleset() Ruleset {
	return Ruleset{
		ProductivePrefixes: []string{
			"anti", "non", "pre", "post", "multi", "semi", "pseudo", "quasi",
			"ultra", "super", "hyper", "mega", "micro", "macro", "neo", "proto",
			"counter", "inter", "intra", "extra", "trans",
		},
		RealWordPrefixes: []string{"un", "re", "dis", "mis", "over", "out", "under"},
		CommonSuffixes: []string{
			"ing", "ed", "er", "est", "ly", "tion", "sion", "ness", "ment",
			"able", "ible", "ful", "less", "ous", "ive", "al", "ical",
			"ity", "ance", "ence", "ism", "ist",
		},
		RejectPatterns: []string{
			`^[^aeiou]{5,}`,         // 5+ consonants at start
			`[^aeiou]{5,}`,          // 5+ consecutive consonants anywhere
			`[aeiou]{4,}`,           // 4+ consecutive vowels
			`q($|[^u])`,             // q not followed by u
			`[jkqvwxz]{3,}`,         // 3+ rare consonants in a row
			`[^a-z]`,                // non-letter characters
			`szcz|zcz|tsz|cz[aeiou]`, // Polish
			`ough$|ght$`,            // endings the base list already covers
			`schw|tsch`,             // German
			`ção|ões|ão$`,           // Portuguese
			`ñ|ü|ö|ä|ß`,             // diacritics
			`^[^aeiou]{4}`,          // 4 consonants at start
			`[^aeiou]{4}$`,          // 4 consonants at end
			`kh|gh[^t]|zh|dj`,       // transliteration patterns
		},
		CommonFirstLetters: "stcpbdmrahfglewn",
	}
}

// LoadRuleset reads a YAML override file and merges it onto the
// defaults. Only fields present in the file replace their defaults.
func LoadRuleset(path string) (Ruleset, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- Ruleset path is user-provided
	if err != nil {
		return Ruleset{}, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	return ParseRuleset(path, data)
}

// ParseRuleset merges YAML override bytes onto the default ruleset.
func ParseRuleset(source string, data []byte) (Ruleset, error) {
	var overlay Ruleset
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Ruleset{}, fmt.Errorf("parse ruleset %s: %w", source, err)
	}

	merged := DefaultRuleset()
	if len(overlay.ProductivePrefixes) > 0 {
		merged.ProductivePrefixes = overlay.ProductivePrefixes
	}
	if len(overlay.RealWordPrefixes) > 0 {
		merged.RealWordPrefixes = overlay.RealWordPrefixes
	}
	if len(overlay.CommonSuffixes) > 0 {
		merged.CommonSuffixes = overlay.CommonSuffixes
	}
	if len(overlay.RejectPatterns) > 0 {
		merged.RejectPatterns = overlay.RejectPatterns
	}
	if overlay.CommonFirstLetters != "" {
		merged.CommonFirstLetters = overlay.CommonFirstLetters
	}

	if err := merged.Compile(); err != nil {
		return Ruleset{}, fmt.Errorf("ruleset %s: %w", source, err)
	}
	return merged, nil
}

// Compile builds the reject-pattern matchers. It is idempotent and
// called lazily by the prioritizer when skipped.
func (r *Ruleset) Compile() error {
	compiled := make([]*regexp.Regexp, 0, len(r.RejectPatterns))
	for _, pattern := range r.RejectPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compile reject pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	r.compiled = compiled
	return nil
}

func (r *Ruleset) matchers() []*regexp.Regexp {
	if r.compiled == nil {
		if err := r.Compile(); err != nil {
			// Default patterns always compile; overrides are compiled
			// at load time where errors can be reported.
			return nil
		}
	}
	return r.compiled
}
