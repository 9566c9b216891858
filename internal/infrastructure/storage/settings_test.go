package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	items   map[string][]byte
	loadErr error
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: make(map[string][]byte)}
}

func (m *memoryStore) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *memoryStore) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[key] = data
	return nil
}

func TestSettingsStore_LoadDefaults(t *testing.T) {
	store := NewSettingsStore(newMemoryStore())

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestSettingsStore_SaveLoad(t *testing.T) {
	store := NewSettingsStore(newMemoryStore())

	require.NoError(t, store.Save(Settings{Muted: true, Volume: 0.25}))
	settings, err := store.Load()

	require.NoError(t, err)
	assert.True(t, settings.Muted)
	assert.Equal(t, 0.25, settings.Volume)
}

func TestSettingsStore_Errors(t *testing.T) {
	boom := errors.New("disk full")

	t.Run("load failure falls back to defaults", func(t *testing.T) {
		items := newMemoryStore()
		items.loadErr = boom

		settings, err := NewSettingsStore(items).Load()

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, DefaultSettings(), settings)
	})

	t.Run("corrupt data falls back to defaults", func(t *testing.T) {
		items := newMemoryStore()
		items.items[settingsKey] = []byte("{not json")

		settings, err := NewSettingsStore(items).Load()

		assert.Error(t, err)
		assert.Equal(t, DefaultSettings(), settings)
	})

	t.Run("save failure is returned", func(t *testing.T) {
		items := newMemoryStore()
		items.saveErr = boom

		err := NewSettingsStore(items).Save(DefaultSettings())

		assert.ErrorIs(t, err, boom)
	})
}

func TestSettingsStore_NoBackend(t *testing.T) {
	store := &SettingsStore{}

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	assert.NoError(t, store.Save(Settings{Muted: true}))
}
