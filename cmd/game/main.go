package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/footfall/internal/application/game"
	"github.com/younwookim/footfall/internal/application/scene/playing"
	"github.com/younwookim/footfall/internal/application/system"
	"github.com/younwookim/footfall/internal/infrastructure/config"
	"github.com/younwookim/footfall/internal/infrastructure/sound"
	"github.com/younwookim/footfall/internal/infrastructure/storage"
)

//go:embed configs
var configFS embed.FS

const appName = "footfall"

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play a recording back headless and print recognized actions")
	stageFlag := flag.String("stage", "demo", "Stage to load")
	flag.Parse()

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		if err := replayFile(loader, cfg, *replayFlag, os.Stdout); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	stageCfg, err := loader.LoadStage(*stageFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	// Settings are optional; Open falls back to defaults
	settingsStore, _ := storage.Open(appName)
	settings, err := settingsStore.Load()
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	synth, err := sound.NewSynth(cfg.Audio.SampleRate, cfg.Audio.Volume*settings.Volume)
	if err != nil {
		log.Fatalf("Failed to create synth: %v", err)
	}
	defer func() { _ = synth.Close() }()
	synth.Mute(settings.Muted)

	scene, err := playing.New(cfg, stageCfg, playing.Options{
		Voices: func(freq float64) (system.Voice, error) {
			v, err := synth.NewVoice(freq)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		Audio:      synth,
		Settings:   settingsStore,
		RecordPath: *recordFlag,
	})
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	display := cfg.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	// Set up ebiten
	scale := max(display.Scale, 1)
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle(windowTitle(display))
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func windowTitle(display *config.DisplayConfig) string {
	if display.Title == "" {
		return appName
	}
	return display.Title
}
