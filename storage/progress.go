// Package storage keeps what outlives a session: the resume point of the
// last level played (gdata save slot) and the history of finished runs
// (SQLite).
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/flipside/shared/leveldata"
	"github.com/quasilyte/gdata"
)

const progressKey = "progress"

// ItemStore is the key/value slot storage progress is written to.
// *gdata.Manager satisfies it.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Progress is where to pick up the last level played.
type Progress struct {
	Level       string  `json:"level"`
	CheckpointX float64 `json:"checkpointX"`
	CheckpointY float64 `json:"checkpointY"`
	Endless     bool    `json:"endless,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
}

// Checkpoint is the saved respawn anchor.
func (p Progress) Checkpoint() leveldata.Point {
	return leveldata.Point{X: p.CheckpointX, Y: p.CheckpointY}
}

// ProgressStore reads and writes the progress slot.
type ProgressStore struct {
	items ItemStore
}

// OpenProgress opens the per-user save data directory for appName.
func OpenProgress(appName string) (*ProgressStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open save data: %w", err)
	}
	return NewProgressStore(m), nil
}

// NewProgressStore wraps an existing item store.
func NewProgressStore(items ItemStore) *ProgressStore {
	return &ProgressStore{items: items}
}

// Load returns the saved progress, or nil when nothing is saved.
func (s *ProgressStore) Load() (*Progress, error) {
	data, err := s.items.LoadItem(progressKey)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("storage: cannot parse progress: %w", err)
	}
	return &p, nil
}

// Save overwrites the progress slot.
func (s *ProgressStore) Save(p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot serialize progress: %w", err)
	}
	if err := s.items.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Clear empties the progress slot.
func (s *ProgressStore) Clear() error {
	if err := s.items.SaveItem(progressKey, nil); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// Has reports whether any progress is saved.
func (s *ProgressStore) Has() bool {
	data, err := s.items.LoadItem(progressKey)
	return err == nil && len(data) > 0
}
