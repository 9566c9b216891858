// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/footfall/internal/application/replay"
	"github.com/younwookim/footfall/internal/application/scene"
	"github.com/younwookim/footfall/internal/application/state"
	"github.com/younwookim/footfall/internal/application/system"
	"github.com/younwookim/footfall/internal/infrastructure/config"
	"github.com/younwookim/footfall/internal/infrastructure/storage"
)

// Muter silences audio output
type Muter interface {
	Mute(muted bool)
	Muted() bool
}

// Options wires optional services into the scene
type Options struct {
	Voices     VoiceFactory
	Audio      Muter
	Settings   *storage.SettingsStore
	RecordPath string
}

// Playing is the main gameplay scene
type Playing struct {
	stageCfg *config.StageConfig
	world    *World
	state    state.GameState
	renderer *renderer
	screenW  int
	screenH  int

	audio    Muter
	settings *storage.SettingsStore

	// Key releases seen while not playing, delivered on the next Step
	heldReleases []system.KeyEvent

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
}

// New creates a new Playing scene.
// If opts.RecordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, opts Options) (*Playing, error) {
	world, err := NewWorld(cfg, stageCfg, opts.Voices)
	if err != nil {
		return nil, err
	}

	p := &Playing{
		stageCfg:       stageCfg,
		world:          world,
		state:          state.StateLoading,
		renderer:       newRenderer(cfg.Entities.Player.Sprite, stageCfg.Colors),
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		audio:          opts.Audio,
		settings:       opts.Settings,
		recordFilename: opts.RecordPath,
	}

	// Initialize recorder if recording is enabled
	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(stageCfg.ID)
		log.Printf("Recording enabled: %s", opts.RecordPath)
	}

	return p, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		p.ToggleMute()
	}

	events := p.world.Input.Poll()
	if p.state != state.StatePlaying {
		p.holdReleases(events)
		return nil, nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	if err := p.Step(events); err != nil {
		return nil, err
	}
	return nil, nil // nil = stay on this scene
}

// holdReleases keeps the releases among events for the next Step.
// Presses made while not playing are dropped.
func (p *Playing) holdReleases(events []system.KeyEvent) {
	for _, ev := range events {
		if !ev.Down {
			p.heldReleases = append(p.heldReleases, ev)
		}
	}
}

// Step records events and advances the world by one tick.
// Releases held back while paused are delivered first, in a tick of their own.
func (p *Playing) Step(events []system.KeyEvent) error {
	if len(p.heldReleases) > 0 {
		releases := p.heldReleases
		p.heldReleases = nil
		if err := p.step(releases); err != nil {
			return err
		}
	}
	return p.step(events)
}

func (p *Playing) step(events []system.KeyEvent) error {
	if p.recorder != nil {
		p.recorder.RecordFrame(events)
	}
	if err := p.world.Tick(events); err != nil {
		return fmt.Errorf("tick %d: %w", p.world.Ticks(), err)
	}
	return nil
}

// TogglePause switches between playing and paused
func (p *Playing) TogglePause() {
	p.state = p.state.Toggle()
}

// ToggleMute flips audio mute and persists the choice
func (p *Playing) ToggleMute() {
	if p.audio == nil {
		return
	}
	muted := !p.audio.Muted()
	p.audio.Mute(muted)
	p.persistSettings()
}

func (p *Playing) persistSettings() {
	if p.settings == nil {
		return
	}
	// Failures are logged by the store; a failed load leaves stored settings untouched
	settings, err := p.settings.Load()
	if err != nil {
		return
	}
	settings.Muted = p.audio.Muted()
	_ = p.settings.Save(settings)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	p.renderer.draw(screen, p)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.state = state.StatePlaying
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// World returns the simulation
func (p *Playing) World() *World {
	return p.world
}

// Recorder returns the input recorder, nil when not recording
func (p *Playing) Recorder() *replay.Recorder {
	return p.recorder
}
