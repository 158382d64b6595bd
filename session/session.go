package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/quiz"
	"github.com/jsphweid/eartrainer/trainer"
)

// OutcomeHandler hears about every graded round in every session.
type OutcomeHandler func(sessionId string, o quiz.Outcome)

// Session is one user's quiz. Every method serializes on the session, so
// rapid repeated requests run one after another.
type Session struct {
	Id        string
	CreatedAt time.Time

	mu         sync.Mutex
	trainer    *trainer.Trainer
	controller *quiz.Controller
	lastSeen   time.Time
}

type Round struct {
	Id     string
	Prompt model.Prompt
}

type Answer struct {
	Outcome quiz.Outcome
	Graded  bool
	Choices []model.Choice
	Tally   model.ScoreTally
}

func (s *Session) touch() {
	s.lastSeen = time.Now()
}

// StartRound generates a prompt and presents it. Any unanswered round is
// discarded first.
func (s *Session) StartRound(drill, difficulty string) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	p, err := s.trainer.Generate(drill, difficulty)
	if err != nil {
		return Round{}, err
	}
	id, err := s.controller.StartRound(p.Category, p.Correct, p.Candidates)
	if err != nil {
		return Round{}, err
	}
	p.Candidates = s.controller.Candidates()
	return Round{Id: id, Prompt: p}, nil
}

func (s *Session) Answer(label string) Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	outcome, graded := s.controller.SelectAnswer(label)
	return Answer{
		Outcome: outcome,
		Graded:  graded,
		Choices: s.controller.Choices(),
		Tally:   s.controller.Session().Tally(s.controller.Category()),
	}
}

func (s *Session) Scores() map[string]model.ScoreTally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Session().Tallies()
}

func (s *Session) Reset() map[string]model.ScoreTally {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.controller.ResetScores()
	return s.controller.Session().Tallies()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Store holds live sessions in memory. Nothing is ever written to disk.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	trainer  *trainer.Trainer
	onGraded OutcomeHandler
}

func NewStore(tr *trainer.Trainer, onGraded OutcomeHandler) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		trainer:  tr,
		onGraded: onGraded,
	}
}

func (st *Store) Create() *Session {
	now := time.Now()
	s := &Session{
		Id:        uuid.New().String(),
		CreatedAt: now,
		trainer:   st.trainer,
		lastSeen:  now,
	}
	var observer quiz.Observer
	if st.onGraded != nil {
		observer = quiz.ObserverFunc(func(o quiz.Outcome) {
			st.onGraded(s.Id, o)
		})
	}
	s.controller = quiz.NewController(quiz.NewSession(trainer.Categories...), observer)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.Id] = s
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Expire drops sessions untouched for longer than maxIdle and returns how
// many went.
func (st *Store) Expire(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}
