package model

type ScoreTally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (s ScoreTally) Record(isCorrect bool) ScoreTally {
	s.Total++
	if isCorrect {
		s.Correct++
	}
	return s
}

func (s ScoreTally) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}
