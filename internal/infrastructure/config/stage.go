package config

// StageConfig is the root config for stage JSON files.
// A stage is a floor the player walks on plus scenery blocks spread over parallax layers.
type StageConfig struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Floor   PieceConfig      `json:"floor"`
	Scenery []PieceConfig    `json:"scenery"`
	Colors  StageColorConfig `json:"colors"`
}

// PieceConfig places a static body with a flat skin on a layer.
// Layer 1 is fixed to the camera; deeper layers scroll slower.
type PieceConfig struct {
	Body  BodyConfig `json:"body"`
	Layer int        `json:"layer"`
	Solid bool       `json:"solid"`
}

// StageColorConfig holds RGBA colors for rendering
type StageColorConfig struct {
	Background [4]uint8 `json:"background"`
	Piece      [4]uint8 `json:"piece"`
	Outline    [4]uint8 `json:"outline"`
}
