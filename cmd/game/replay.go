package main

import (
	"fmt"
	"io"

	"github.com/younwookim/footfall/internal/application/replay"
	"github.com/younwookim/footfall/internal/application/scene/playing"
	"github.com/younwookim/footfall/internal/domain/gesture"
	"github.com/younwookim/footfall/internal/infrastructure/config"
)

const defaultStage = "demo"

// ReplayResult summarizes a headless replay
type ReplayResult struct {
	Stage   string
	Frames  int
	Actions []replay.RecognizedAction
	FinalX  float64
	FinalY  float64
	FinalVX float64
}

// simulateReplay feeds recorded frames through a silent world
func simulateReplay(loader *config.Loader, cfg *config.GameConfig, data replay.ReplayData) (ReplayResult, error) {
	stage := data.Stage
	if stage == "" {
		stage = defaultStage
	}
	stageCfg, err := loader.LoadStage(stage)
	if err != nil {
		return ReplayResult{}, err
	}

	world, err := playing.NewWorld(cfg, stageCfg, nil)
	if err != nil {
		return ReplayResult{}, err
	}

	result := ReplayResult{Stage: stage}
	world.Dispatcher.OnDispatch = func(action gesture.Action) {
		result.Actions = append(result.Actions, replay.RecognizedAction{
			Frame:  world.Ticks(),
			Action: string(action),
		})
	}

	replayer := replay.NewReplayer(data)
	for {
		events, ok := replayer.Next()
		if !ok {
			break
		}
		if err := world.Tick(events); err != nil {
			return result, fmt.Errorf("frame %d: %w", replayer.CurrentFrame()-1, err)
		}
	}

	body := world.Player.Body
	result.Frames = world.Ticks()
	result.FinalX = body.X
	result.FinalY = body.Y
	result.FinalVX = body.VX
	return result, nil
}

// replayFile loads a recording, replays it and prints the outcome to w
func replayFile(loader *config.Loader, cfg *config.GameConfig, filename string, w io.Writer) error {
	data, err := replay.LoadReplay(filename)
	if err != nil {
		return err
	}

	result, err := simulateReplay(loader, cfg, *data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "stage %s: %d frames\n", result.Stage, result.Frames)
	for _, a := range result.Actions {
		fmt.Fprintf(w, "%6d  %s\n", a.Frame, a.Action)
	}
	fmt.Fprintf(w, "final position (%.3f, %.3f) vx %.3f\n", result.FinalX, result.FinalY, result.FinalVX)
	return nil
}
