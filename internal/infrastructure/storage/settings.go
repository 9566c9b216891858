// Package storage persists player settings between runs.
package storage

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// Settings are the player preferences kept on disk
type Settings struct {
	Muted  bool    `json:"muted"`
	Volume float64 `json:"volume"`
}

// DefaultSettings returns the settings used before anything is saved
func DefaultSettings() Settings {
	return Settings{Volume: 1}
}

// ItemStore reads and writes named blobs. *gdata.Manager satisfies it.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// SettingsStore loads and saves Settings.
// A store without a backend keeps defaults and never fails.
type SettingsStore struct {
	items ItemStore
}

// Open opens the per-user data directory for appName.
// On failure it logs a warning and returns a store that only serves defaults.
func Open(appName string) (*SettingsStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return &SettingsStore{}, fmt.Errorf("failed to open storage for %s: %w", appName, err)
	}
	return &SettingsStore{items: m}, nil
}

// NewSettingsStore wraps an existing item store
func NewSettingsStore(items ItemStore) *SettingsStore {
	return &SettingsStore{items: items}
}

// Load returns the saved settings, or defaults when none are saved
func (s *SettingsStore) Load() (Settings, error) {
	settings := DefaultSettings()
	if s.items == nil {
		return settings, nil
	}

	data, err := s.items.LoadItem(settingsKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}
	if data == nil {
		// No saved settings yet
		return settings, nil
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// Save writes settings to disk
func (s *SettingsStore) Save(settings Settings) error {
	if s.items == nil {
		return nil
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := s.items.SaveItem(settingsKey, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
