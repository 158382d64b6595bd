package model

// Prompt is everything generated for one round. Correct is always one of
// Candidates.
type Prompt struct {
	Category   string
	Drill      string
	Correct    string
	Candidates []string
	Cues       []Cue
}

// Choice is the visible state of one candidate control.
type Choice struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
	Chosen  bool   `json:"chosen"`
	Correct bool   `json:"correct"`
}
