package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Display  *DisplayConfig
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
	Input    *InputConfig
	Audio    *AudioConfig
}

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// readJSON decodes the named file into v
func (l *Loader) readJSON(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadDisplay loads game.json
func (l *Loader) LoadDisplay() (*DisplayConfig, error) {
	var cfg DisplayConfig
	if err := l.readJSON("game.json", &cfg); err != nil {
		return nil, err
	}
	if cfg.Framerate <= 0 {
		return nil, fmt.Errorf("game.json: framerate must be positive, got %d", cfg.Framerate)
	}
	if cfg.PixelsPerMeter <= 0 {
		return nil, fmt.Errorf("game.json: pixelsPerMeter must be positive, got %v", cfg.PixelsPerMeter)
	}
	return &cfg, nil
}

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	var cfg PhysicsConfig
	if err := l.readJSON("physics.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.readJSON("entities.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadInput loads input.json
func (l *Loader) LoadInput() (*InputConfig, error) {
	var cfg InputConfig
	if err := l.readJSON("input.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAudio loads audio.json
func (l *Loader) LoadAudio() (*AudioConfig, error) {
	var cfg AudioConfig
	if err := l.readJSON("audio.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.readJSON("stages/"+name+".json", &cfg); err != nil {
		return nil, fmt.Errorf("stage %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadAll loads all base configurations (everything except stages)
func (l *Loader) LoadAll() (*GameConfig, error) {
	display, err := l.LoadDisplay()
	if err != nil {
		return nil, err
	}

	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	input, err := l.LoadInput()
	if err != nil {
		return nil, err
	}

	audio, err := l.LoadAudio()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Display:  display,
		Physics:  physics,
		Entities: entities,
		Input:    input,
		Audio:    audio,
	}, nil
}
