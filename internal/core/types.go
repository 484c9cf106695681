package core

import "time"

// BackendID identifies a dictionary lookup backend.
type BackendID string

const (
	BackendCollegiate BackendID = "mw-collegiate"
	BackendMedical    BackendID = "mw-medical"
	BackendFreeDict   BackendID = "free-dictionary"
)

// LookupStatus classifies the outcome of a dictionary lookup.
type LookupStatus string

const (
	StatusValid        LookupStatus = "valid"
	StatusInvalid      LookupStatus = "invalid"
	StatusNotFound     LookupStatus = "not_found"
	StatusProperNoun   LookupStatus = "proper_noun"
	StatusAbbreviation LookupStatus = "abbreviation"
	StatusError        LookupStatus = "error"
)

// Promotable reports whether the status confirms a reclaimable word.
func (s LookupStatus) Promotable() bool { return s == StatusValid }

// Settled reports whether a backend answered authoritatively. Unsettled
// statuses let a fallback chain try the next backend.
func (s LookupStatus) Settled() bool {
	return s != StatusNotFound && s != StatusError
}

// Provenance captures metadata about how a lookup was resolved.
type Provenance struct {
	LookupID       string     `json:"lookup_id"`
	RequestedAt    time.Time  `json:"requested_at"`
	ResolvedAt     time.Time  `json:"resolved_at"`
	Source         string     `json:"source"`
	FromCache      bool       `json:"from_cache"`
	CacheExpiresAt *time.Time `json:"cache_expires_at,omitempty"`
	ToolVersion    string     `json:"tool_version"`
}

// WordResult reports the classification of one looked-up word.
type WordResult struct {
	Word          string       `json:"word"`
	Status        LookupStatus `json:"status"`
	PartOfSpeech  string       `json:"part_of_speech,omitempty"`
	Definition    string       `json:"definition,omitempty"`
	Pronunciation string       `json:"pronunciation,omitempty"`
	Etymology     string       `json:"etymology,omitempty"`
	Source        string       `json:"source,omitempty"`
	Error         string       `json:"error,omitempty"`
	Provenance    Provenance   `json:"provenance"`
}

// Candidate is a scored word selected for verification.
type Candidate struct {
	Word    string   `json:"word"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

// RunReport summarizes one reclamation run.
type RunReport struct {
	RunID          string   `json:"run_id"`
	Date           string   `json:"date"`
	Mode           string   `json:"mode"`
	Validated      int      `json:"validated"`
	Promoted       int      `json:"promoted"`
	PromotedWords  []string `json:"promoted_words"`
	StillInvalid   int      `json:"still_invalid"`
	Duration       float64  `json:"duration_seconds"`
	TotalValidated int      `json:"total_validated"`
	TotalPromoted  int      `json:"total_promoted"`
	Remaining      int      `json:"remaining"`
}
