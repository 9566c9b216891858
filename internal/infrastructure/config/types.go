package config

// DisplayConfig is the root config for game.json
type DisplayConfig struct {
	Title          string  `json:"title"`
	ScreenWidth    int     `json:"screenWidth"`
	ScreenHeight   int     `json:"screenHeight"`
	Scale          int     `json:"scale"`
	Framerate      int     `json:"framerate"`
	PixelsPerMeter float64 `json:"pixelsPerMeter"`
}

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Gravity float64 `json:"gravity"`
	// VelocityThreshold is the impact speed (m/s) below which bodies do not bounce
	VelocityThreshold float64       `json:"velocityThreshold"`
	Impulse           ImpulseConfig `json:"impulse"`
	Space             SpaceConfig   `json:"space"`
}

// ImpulseConfig configures the walking impulse
type ImpulseConfig struct {
	Step     float64 `json:"step"`     // Velocity change per step (m/s)
	MaxSpeed float64 `json:"maxSpeed"` // Horizontal speed cap (m/s)
}

// SpaceConfig sizes the collision grid (pixels)
type SpaceConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	CellSize int `json:"cellSize"`
}

// BodyConfig describes a box body. Position is the centre, all values in meters.
type BodyConfig struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Density     float64 `json:"density"`
	Friction    float64 `json:"friction"`
	Restitution float64 `json:"restitution"`
}

// AudioConfig is the root config for audio.json
type AudioConfig struct {
	SampleRate   int          `json:"sampleRate"`
	Volume       float64      `json:"volume"`
	ReleaseTicks int          `json:"releaseTicks"`
	Tones        []ToneConfig `json:"tones"`
}

// ToneConfig binds a tone to a key code
type ToneConfig struct {
	Key       int     `json:"key"`
	Frequency float64 `json:"frequency"` // Hz
	Duration  int     `json:"duration"`  // Ticks
}
