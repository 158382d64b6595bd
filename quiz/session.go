package quiz

import "github.com/jsphweid/eartrainer/model"

// Session owns the score tallies for one user. It is not safe for
// concurrent use; callers that share one across goroutines must guard it.
type Session struct {
	categories []string
	tallies    map[string]model.ScoreTally
}

// NewSession starts every listed category at (0,0). Categories that show
// up later are added on first use.
func NewSession(categories ...string) *Session {
	s := &Session{tallies: make(map[string]model.ScoreTally)}
	for _, c := range categories {
		s.ensure(c)
	}
	return s
}

func (s *Session) ensure(category string) {
	if _, ok := s.tallies[category]; ok {
		return
	}
	s.categories = append(s.categories, category)
	s.tallies[category] = model.ScoreTally{}
}

func (s *Session) Tally(category string) model.ScoreTally {
	return s.tallies[category]
}

// Tallies returns a copy keyed by category.
func (s *Session) Tallies() map[string]model.ScoreTally {
	res := make(map[string]model.ScoreTally, len(s.tallies))
	for k, v := range s.tallies {
		res[k] = v
	}
	return res
}

// Categories in the order they were first seen.
func (s *Session) Categories() []string {
	res := make([]string, len(s.categories))
	copy(res, s.categories)
	return res
}

func (s *Session) Reset() {
	for k := range s.tallies {
		s.tallies[k] = model.ScoreTally{}
	}
}

func (s *Session) record(category string, isCorrect bool) model.ScoreTally {
	s.ensure(category)
	t := s.tallies[category].Record(isCorrect)
	s.tallies[category] = t
	return t
}
