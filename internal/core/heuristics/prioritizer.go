// Package heuristics selects the invalid-list words most worth spending
// a dictionary lookup on. Stage one is a strict plausibility pre-filter;
// stage two scores the survivors and samples them by score tier.
package heuristics

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/wordlens/wordlens/internal/core"
)

const (
	scoreBase = 50.0
	tierWidth = 5
)

// Prioritizer scores words by likelihood of being real English words.
// Higher scores are checked first. The scoring is a hand-tuned
// approximation; adjustments and thresholds are deliberate and should
// not be retuned casually.
type Prioritizer struct {
	Rules Ruleset

	// Rand drives corpus sampling and the within-tier shuffle. Nil
	// falls back to a time-seeded source; tests pin a seed.
	Rand *rand.Rand
}

// New returns a prioritizer over the given ruleset with its reject
// patterns compiled.
func New(rules Ruleset) (*Prioritizer, error) {
	if err := rules.Compile(); err != nil {
		return nil, err
	}
	return &Prioritizer{Rules: rules}, nil
}

// LikelyEnglish is the coarse pre-filter. It eliminates words that are
// almost certainly not English (foreign spellings, OCR junk, synthetic
// compounds) before any scoring happens.
func (p *Prioritizer) LikelyEnglish(word string) bool {
	if len(word) < 3 || len(word) > 15 {
		return false
	}

	if hasTripledLetter(word) {
		return false
	}

	for _, re := range p.Rules.matchers() {
		if re.MatchString(word) {
			return false
		}
	}

	ratio := vowelRatio(word)
	if ratio < 0.15 || ratio > 0.6 {
		return false
	}

	// Productive-prefix compounds are usually synthetic concatenations,
	// not dictionary headwords.
	for _, prefix := range p.Rules.ProductivePrefixes {
		if strings.HasPrefix(word, prefix) && len(word) > len(prefix)+3 {
			return false
		}
	}

	return true
}

// Score rates a word's likelihood of being valid on a 0-100 scale,
// recording a reason for every adjustment applied.
func (p *Prioritizer) Score(word string) core.Candidate {
	score := scoreBase
	reasons := make([]string, 0, 4)
	length := len(word)

	switch {
	case length >= 3 && length <= 5:
		score += 25
		reasons = append(reasons, fmt.Sprintf("short word (%d chars)", length))
	case length >= 6 && length <= 8:
		score += 15
		reasons = append(reasons, fmt.Sprintf("medium word (%d chars)", length))
	case length >= 9 && length <= 12:
		score += 5
		reasons = append(reasons, fmt.Sprintf("longer word (%d chars)", length))
	case length == 2:
		score += 10
		reasons = append(reasons, "2-letter word")
	case length >= 13 && length <= 16:
		score -= 10
		reasons = append(reasons, "long word")
	default:
		score -= 30
		reasons = append(reasons, fmt.Sprintf("very long (%d chars)", length))
	}

	for _, prefix := range p.Rules.ProductivePrefixes {
		if strings.HasPrefix(word, prefix) && len(word) > len(prefix)+3 {
			score -= 35
			reasons = append(reasons, fmt.Sprintf("productive prefix compound: %s-", prefix))
			break
		}
	}

	for _, prefix := range p.Rules.RealWordPrefixes {
		if strings.HasPrefix(word, prefix) && len(word) > len(prefix)+2 {
			if length <= 10 {
				score += 5
				reasons = append(reasons, fmt.Sprintf("real-word prefix: %s-", prefix))
			}
			break
		}
	}

	for _, suffix := range p.Rules.CommonSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			if length <= 10 {
				score += 5
				reasons = append(reasons, fmt.Sprintf("common suffix: -%s", suffix))
			}
			break
		}
	}

	if ratio := vowelRatio(word); ratio >= 0.25 && ratio <= 0.5 {
		score += 10
		reasons = append(reasons, "good vowel balance")
	} else {
		score -= 10
		reasons = append(reasons, "poor vowel balance")
	}

	if length > 0 && strings.ContainsRune(p.Rules.CommonFirstLetters, rune(word[0])) {
		score += 5
		reasons = append(reasons, "common starting letter")
	}

	if distinctLetters(word) >= int(float64(length)*0.6) {
		score += 5
		reasons = append(reasons, "good letter diversity")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return core.Candidate{Word: word, Score: score, Reasons: reasons}
}

// Prioritize pre-filters, scores, and selects up to limit candidates.
// Candidates are bucketed into 5-point score tiers and drawn from the
// highest tier down, shuffled within each tier so equally-scored words
// do not always come back in lexical order.
func (p *Prioritizer) Prioritize(words []string, limit int) []core.Candidate {
	if limit <= 0 {
		return nil
	}

	rng := p.rng()

	survivors := make([]string, 0, len(words))
	for _, word := range words {
		if p.LikelyEnglish(word) {
			survivors = append(survivors, word)
		}
	}

	// Scoring tens of millions of words is wasted effort when only a
	// few thousand will be selected. Sample down first.
	if len(survivors) > limit*10 {
		sampleSize := limit * 50
		if sampleSize > len(survivors) {
			sampleSize = len(survivors)
		}
		rng.Shuffle(len(survivors), func(i, j int) {
			survivors[i], survivors[j] = survivors[j], survivors[i]
		})
		survivors = survivors[:sampleSize]
	}

	tiers := make(map[int][]core.Candidate)
	for _, word := range survivors {
		candidate := p.Score(word)
		tier := int(candidate.Score/tierWidth) * tierWidth
		tiers[tier] = append(tiers[tier], candidate)
	}

	keys := make([]int, 0, len(tiers))
	for tier := range tiers {
		keys = append(keys, tier)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	selected := make([]core.Candidate, 0, limit)
	for _, tier := range keys {
		bucket := tiers[tier]
		rng.Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})

		needed := limit - len(selected)
		if needed <= 0 {
			break
		}
		if needed > len(bucket) {
			needed = len(bucket)
		}
		selected = append(selected, bucket[:needed]...)
	}

	return selected
}

func (p *Prioritizer) rng() *rand.Rand {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- selection sampling, not crypto
}

func hasTripledLetter(word string) bool {
	for i := 2; i < len(word); i++ {
		if word[i] == word[i-1] && word[i] == word[i-2] {
			return true
		}
	}
	return false
}

func vowelRatio(word string) float64 {
	if len(word) == 0 {
		return 0
	}
	vowels := 0
	for _, c := range word {
		switch c {
		case 'a', 'e', 'i', 'o', 'u':
			vowels++
		}
	}
	return float64(vowels) / float64(len(word))
}

func distinctLetters(word string) int {
	var seen [256]bool
	count := 0
	for i := 0; i < len(word); i++ {
		if !seen[word[i]] {
			seen[word[i]] = true
			count++
		}
	}
	return count
}
