package core

import (
	"strings"
	"time"
)

// Profile bundles run settings for a reclamation pass.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	BatchSize   int    `json:"batch_size,omitempty"`
	Workers     int    `json:"workers,omitempty"`
	Sample      bool   `json:"sample,omitempty"`
	Ruleset     string `json:"ruleset,omitempty"`
}

// ProfileRecord wraps a profile with persistence metadata.
type ProfileRecord struct {
	Profile   Profile
	IsBuiltin bool
	UpdatedAt time.Time
}

// BuiltInProfiles provides default run profiles bundled with wordlens.
var BuiltInProfiles = []Profile{
	{
		Name:        "daily",
		Description: "Standard daily pass within the free API budget",
		Limit:       100,
		BatchSize:   50,
		Workers:     5,
	},
	{
		Name:        "deep",
		Description: "Large weekly sweep for backlogs, heavier on budget",
		Limit:       500,
		BatchSize:   50,
		Workers:     8,
	},
	{
		Name:        "smoke",
		Description: "Tiny run for verifying credentials and wiring",
		Limit:       5,
		BatchSize:   5,
		Workers:     1,
	},
	{
		Name:        "survey",
		Description: "Uniform random sample to estimate corpus quality",
		Limit:       50,
		BatchSize:   25,
		Workers:     5,
		Sample:      true,
	},
}

// FindBuiltInProfile looks up a built-in profile by name.
func FindBuiltInProfile(name string) (*Profile, bool) {
	needle := strings.TrimSpace(strings.ToLower(name))
	if needle == "" {
		return nil, false
	}

	for _, profile := range BuiltInProfiles {
		if strings.EqualFold(profile.Name, needle) {
			copied := profile
			return &copied, true
		}
	}

	return nil, false
}
