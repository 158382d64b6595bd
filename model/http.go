package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type StartRoundRequestBody struct {
	Drill      string `json:"drill"`
	Difficulty string `json:"difficulty,omitempty"`
}

type CueResponse struct {
	Kind       CueKind    `json:"kind"`
	Note       string     `json:"note,omitempty"`
	Midi       *int       `json:"midi,omitempty"`
	Percussion Percussion `json:"percussion,omitempty"`
	Duration   float64    `json:"duration"`
	Offset     float64    `json:"offset"`
}

func NewCueResponse(c Cue) CueResponse {
	res := CueResponse{
		Kind:       c.Kind,
		Percussion: c.Percussion,
		Duration:   c.Duration.Seconds(),
		Offset:     c.Offset.Seconds(),
	}
	if c.Kind == CueNote {
		abs := c.Pitch.AbsoluteSemitone()
		res.Note = c.Pitch.String()
		res.Midi = &abs
	}
	return res
}

type RoundResponse struct {
	RoundId    string        `json:"round_id"`
	Category   string        `json:"category"`
	Drill      string        `json:"drill"`
	Candidates []string      `json:"candidates"`
	Cues       []CueResponse `json:"cues"`
}

type AnswerRequestBody struct {
	Label string `json:"label"`
}

type AnswerResponse struct {
	Graded       bool       `json:"graded"`
	IsCorrect    bool       `json:"is_correct"`
	CorrectLabel string     `json:"correct_label,omitempty"`
	ChosenLabel  string     `json:"chosen_label,omitempty"`
	Choices      []Choice   `json:"choices"`
	Tally        ScoreTally `json:"tally"`
}

type ScoresResponse struct {
	Scores map[string]ScoreTally `json:"scores"`
}

type DrillInfo struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Difficulties []string `json:"difficulties,omitempty"`
}

type TrainersResponse struct {
	Drills []DrillInfo `json:"drills"`
}
