package replay

// FormatVersion is written into every recording
const FormatVersion = "1.0"

// FrameInput records the key transitions of a single tick
type FrameInput struct {
	F    int   `json:"f"`              // Frame number
	Down []int `json:"down,omitempty"` // Key codes pressed
	Up   []int `json:"up,omitempty"`   // Key codes released
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// RecognizedAction is an action recognized while replaying
type RecognizedAction struct {
	Frame  int    `json:"frame"`
	Action string `json:"action"`
}
