package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player PlayerConfig `json:"player"`
}

// PlayerConfig describes the walking character
type PlayerConfig struct {
	ID     string            `json:"id"`
	Body   BodyConfig        `json:"body"`
	Sprite SpriteSheetConfig `json:"sprite"`
}

// SpriteSheetConfig describes a uniform grid of frames and the animations over them
type SpriteSheetConfig struct {
	Name        string                     `json:"name"`
	FrameCount  int                        `json:"frameCount"`
	FrameWidth  int                        `json:"frameWidth"`
	FrameHeight int                        `json:"frameHeight"`
	RegX        int                        `json:"regX"` // Registration point
	RegY        int                        `json:"regY"`
	Initial     string                     `json:"initial"`
	Animations  map[string]AnimationConfig `json:"animations"`
}

// AnimationConfig is a named run of frames.
// Next names the animation that follows; empty holds the last frame.
type AnimationConfig struct {
	Frames    []int  `json:"frames"`
	Next      string `json:"next"`
	Frequency int    `json:"frequency"` // Ticks per frame
}
