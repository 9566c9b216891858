package playing

import (
	"fmt"

	"github.com/younwookim/footfall/internal/application/system"
	"github.com/younwookim/footfall/internal/domain/entity"
	"github.com/younwookim/footfall/internal/domain/gesture"
	"github.com/younwookim/footfall/internal/infrastructure/config"
)

// VoiceFactory creates the voice for a tone at freq Hz
type VoiceFactory func(freq float64) (system.Voice, error)

// World is the simulation behind the playing scene.
// It has no ebiten runtime dependencies so it can be ticked headless.
type World struct {
	Player     *entity.Player
	Physics    *system.PhysicsSystem
	Playspace  *system.PlayspaceSystem
	Tones      *system.ToneBank
	Input      *system.InputSystem
	Dispatcher *system.ActionDispatcher

	pixelsPerMeter float64
	dt             float64
	ticks          int
}

// NewWorld builds the player, stage, tones and recognizer from config.
// voices may be nil, in which case tones are silent.
func NewWorld(cfg *config.GameConfig, stageCfg *config.StageConfig, voices VoiceFactory) (*World, error) {
	ppm := cfg.Display.PixelsPerMeter

	physics, err := system.NewPhysicsSystem(cfg.Physics, ppm)
	if err != nil {
		return nil, fmt.Errorf("failed to create physics: %w", err)
	}

	player, err := newPlayer(cfg)
	if err != nil {
		return nil, err
	}
	physics.AddDynamic(player.Body)

	playspace := system.NewPlayspaceSystem(physics)
	if err := addPiece(physics, playspace, stageCfg.Floor); err != nil {
		return nil, fmt.Errorf("stage %s floor: %w", stageCfg.ID, err)
	}
	for i, piece := range stageCfg.Scenery {
		if err := addPiece(physics, playspace, piece); err != nil {
			return nil, fmt.Errorf("stage %s scenery %d: %w", stageCfg.ID, i, err)
		}
	}
	player.OnCamera = playspace.OnCamera
	player.OnParallax = playspace.OnParallax

	tones, err := newToneBank(cfg.Audio, voices)
	if err != nil {
		return nil, err
	}

	dispatcher := system.NewActionDispatcher(player)

	recognizerCfg, err := cfg.Input.RecognizerConfig()
	if err != nil {
		return nil, err
	}
	recognizer, err := gesture.NewRecognizer(recognizerCfg, gesture.ListenerFuncs{
		Action:       dispatcher.OnAction,
		KeyActivated: tones.OnKeyActivated,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recognizer: %w", err)
	}

	keymap, err := system.ParseKeymap(cfg.Input.Keymap)
	if err != nil {
		return nil, err
	}

	return &World{
		Player:         player,
		Physics:        physics,
		Playspace:      playspace,
		Tones:          tones,
		Input:          system.NewInputSystem(keymap, recognizer),
		Dispatcher:     dispatcher,
		pixelsPerMeter: ppm,
		dt:             1.0 / float64(cfg.Display.Framerate),
	}, nil
}

func newPlayer(cfg *config.GameConfig) (*entity.Player, error) {
	playerCfg := cfg.Entities.Player
	spriteCfg := playerCfg.Sprite

	anims := make(map[string]entity.Animation, len(spriteCfg.Animations))
	for name, a := range spriteCfg.Animations {
		anims[name] = entity.Animation{Frames: a.Frames, Next: a.Next, Frequency: a.Frequency}
	}
	sheet, err := entity.NewSpriteSheet(spriteCfg.Name, spriteCfg.FrameCount, spriteCfg.FrameWidth, spriteCfg.FrameHeight, anims)
	if err != nil {
		return nil, err
	}
	if spriteCfg.RegX != 0 || spriteCfg.RegY != 0 {
		sheet.RegX = spriteCfg.RegX
		sheet.RegY = spriteCfg.RegY
	}

	b := playerCfg.Body
	body := entity.NewDynamicBody(b.X, b.Y, b.Width, b.Height, b.Density, b.Friction, b.Restitution)

	// The camera rests with the player at screen centre
	ppm := cfg.Display.PixelsPerMeter
	viewportX := float64(cfg.Display.ScreenWidth)/2 - b.X*ppm
	viewportY := float64(cfg.Display.ScreenHeight)/2 - b.Y*ppm

	player, err := entity.NewPlayer(body, entity.NewSprite(sheet), viewportX, viewportY, entity.ImpulseSettings{
		Step:     cfg.Physics.Impulse.Step,
		MaxSpeed: cfg.Physics.Impulse.MaxSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	if spriteCfg.Initial != "" && spriteCfg.Initial != entity.AnimStill {
		if err := player.Sprite.GotoAndPlay(spriteCfg.Initial); err != nil {
			return nil, err
		}
	}
	return player, nil
}

func addPiece(physics *system.PhysicsSystem, playspace *system.PlayspaceSystem, piece config.PieceConfig) error {
	b := piece.Body
	body := entity.NewStaticBody(b.X, b.Y, b.Width, b.Height, b.Friction, b.Restitution)
	if _, err := playspace.Add(body, piece.Layer); err != nil {
		return err
	}
	physics.AddStatic(body, piece.Solid)
	return nil
}

func newToneBank(cfg *config.AudioConfig, voices VoiceFactory) (*system.ToneBank, error) {
	tones := system.NewToneBank(cfg.ReleaseTicks)
	for _, t := range cfg.Tones {
		var voice system.Voice = silentVoice{}
		if voices != nil {
			v, err := voices(t.Frequency)
			if err != nil {
				return nil, err
			}
			voice = v
		}
		if err := tones.Add(gesture.KeyCode(t.Key), voice, t.Duration); err != nil {
			return nil, err
		}
	}
	return tones, nil
}

// Tick runs one fixed step: input, audio, player, playspace, physics
func (w *World) Tick(events []system.KeyEvent) error {
	if err := w.Input.Apply(events); err != nil {
		return err
	}
	if err := w.Input.Advance(); err != nil {
		return err
	}
	w.Tones.Advance()
	w.Player.Advance(w.pixelsPerMeter)
	w.Playspace.Advance(w.pixelsPerMeter)
	w.Physics.Step(w.dt)
	w.ticks++
	return nil
}

// Ticks returns the number of completed ticks
func (w *World) Ticks() int {
	return w.ticks
}

// Recognizer returns the gesture recognizer
func (w *World) Recognizer() *gesture.Recognizer {
	return w.Input.Recognizer()
}

// PixelsPerMeter returns the world scale
func (w *World) PixelsPerMeter() float64 {
	return w.pixelsPerMeter
}

// silentVoice stands in when no audio output is available
type silentVoice struct{}

func (silentVoice) Play()           {}
func (silentVoice) Pause()          {}
func (silentVoice) SetGain(float64) {}
func (silentVoice) Rewind()         {}
func (silentVoice) IsPlaying() bool { return false }
