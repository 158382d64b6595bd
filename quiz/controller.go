package quiz

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/eartrainer/logger"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/util"
	"golang.org/x/exp/slices"
)

type State int

const (
	Idle State = iota
	Presenting
	Graded
	// Discarded is where a round ends up when a new one starts before it
	// was answered. It never touches the score.
	Discarded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Presenting:
		return "presenting"
	case Graded:
		return "graded"
	case Discarded:
		return "discarded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type InvalidRoundError struct {
	Reason string
}

func (e *InvalidRoundError) Error() string {
	return "invalid round: " + e.Reason
}

type Outcome struct {
	RoundId      string
	Category     string
	IsCorrect    bool
	CorrectLabel string
	ChosenLabel  string
	Tally        model.ScoreTally
}

type Observer interface {
	RoundGraded(Outcome)
}

type ObserverFunc func(Outcome)

func (f ObserverFunc) RoundGraded(o Outcome) {
	f(o)
}

type round struct {
	id         string
	category   string
	correct    string
	candidates []string
	chosen     string
	state      State
}

// Controller runs one round at a time against a Session. It holds no
// rendering logic; the UI reads Choices and listens for outcomes.
type Controller struct {
	session  *Session
	observer Observer
	round    *round
}

func NewController(session *Session, observer Observer) *Controller {
	if session == nil {
		session = NewSession()
	}
	return &Controller{session: session, observer: observer}
}

func (c *Controller) Session() *Session {
	return c.session
}

// StartRound presents a new set of candidates. Duplicate candidates are
// collapsed so exactly one control maps to correct. A round still being
// presented is discarded without affecting the score.
func (c *Controller) StartRound(category, correct string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", &InvalidRoundError{Reason: "no candidate labels"}
	}
	deduped := util.Dedup(candidates)
	if !slices.Contains(deduped, correct) {
		return "", &InvalidRoundError{Reason: fmt.Sprintf("correct label %q is not a candidate", correct)}
	}

	if c.round != nil && c.round.state == Presenting {
		c.round.state = Discarded
		logger.Debug("discarded unanswered round", logger.Fields{
			"round_id": c.round.id,
			"category": c.round.category,
		})
	}

	c.round = &round{
		id:         uuid.New().String(),
		category:   category,
		correct:    correct,
		candidates: deduped,
		state:      Presenting,
	}
	return c.round.id, nil
}

// SelectAnswer grades the first selection of the current round. Any
// selection made when nothing is being presented, or of a label that was
// never offered, is a no-op and reports graded=false.
func (c *Controller) SelectAnswer(label string) (Outcome, bool) {
	r := c.round
	if r == nil || r.state != Presenting || !slices.Contains(r.candidates, label) {
		return Outcome{}, false
	}

	r.chosen = label
	r.state = Graded
	isCorrect := label == r.correct
	outcome := Outcome{
		RoundId:      r.id,
		Category:     r.category,
		IsCorrect:    isCorrect,
		CorrectLabel: r.correct,
		ChosenLabel:  label,
		Tally:        c.session.record(r.category, isCorrect),
	}
	if c.observer != nil {
		c.observer.RoundGraded(outcome)
	}
	return outcome, true
}

// ResetScores zeroes every tally. The current round, if any, keeps its
// state and can still be graded.
func (c *Controller) ResetScores() {
	c.session.Reset()
}

func (c *Controller) State() State {
	if c.round == nil {
		return Idle
	}
	return c.round.state
}

func (c *Controller) RoundId() string {
	if c.round == nil {
		return ""
	}
	return c.round.id
}

func (c *Controller) Category() string {
	if c.round == nil {
		return ""
	}
	return c.round.category
}

func (c *Controller) Candidates() []string {
	if c.round == nil {
		return nil
	}
	res := make([]string, len(c.round.candidates))
	copy(res, c.round.candidates)
	return res
}

// Choices describes each candidate control. Once graded, every control is
// disabled and the true answer is flagged whether or not it was chosen.
func (c *Controller) Choices() []model.Choice {
	if c.round == nil {
		return nil
	}
	r := c.round
	res := make([]model.Choice, 0, len(r.candidates))
	for _, label := range r.candidates {
		choice := model.Choice{Label: label, Enabled: r.state == Presenting}
		if r.state == Graded {
			choice.Chosen = label == r.chosen
			choice.Correct = label == r.correct
		}
		res = append(res, choice)
	}
	return res
}
