package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// UpdateStats records what the last corpus update changed. It is the
// input for changelog generation.
type UpdateStats struct {
	LastUpdate   string         `json:"last_update"`
	NewWords     []string       `json:"new_words"`
	Promoted     []string       `json:"promoted"`
	TotalValid   int            `json:"total_valid"`
	TotalInvalid int            `json:"total_invalid"`
	Sources      map[string]int `json:"sources"`
}

// Stats loads the last update stats. A missing file yields zero stats.
func (m *Manager) Stats() (*UpdateStats, error) {
	data, err := os.ReadFile(m.StatsPath()) // #nosec G304 -- corpus dir comes from config
	if os.IsNotExist(err) {
		return &UpdateStats{Sources: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read update stats: %w", err)
	}

	var stats UpdateStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("parse update stats: %w", err)
	}
	if stats.Sources == nil {
		stats.Sources = map[string]int{}
	}
	return &stats, nil
}

// SaveStats writes the update stats.
func (m *Manager) SaveStats(stats *UpdateStats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encode update stats: %w", err)
	}
	return m.writeFileAtomic(m.StatsPath(), append(data, '\n'))
}
