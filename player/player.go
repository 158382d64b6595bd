package player

import (
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/logger"
	"github.com/jsphweid/eartrainer/midi"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/pitch"
)

// Player makes sound. Calls must not block for the length of the sound;
// offsets are relative to the moment the cue sequence is handed over.
type Player interface {
	PlayNote(p pitch.Pitch, duration, offset time.Duration) error
	PlayPercussive(kind model.Percussion, duration, offset time.Duration) error
}

// Play hands every cue to p. Failures are logged and otherwise ignored so
// that a missing audio backend never gets in the way of the quiz. It
// returns how many cues were accepted.
func Play(p Player, cues []model.Cue) int {
	accepted := 0
	for _, c := range cues {
		var err error
		switch c.Kind {
		case model.CueNote:
			err = p.PlayNote(c.Pitch, c.Duration, c.Offset)
		case model.CuePercussive:
			err = p.PlayPercussive(c.Percussion, c.Duration, c.Offset)
		default:
			logger.Warn("skipping cue of unknown kind", logger.Fields{"kind": string(c.Kind)})
			continue
		}
		if err != nil {
			logger.Warn("playback failed", logger.Fields{
				"kind":   string(c.Kind),
				"offset": c.Offset.String(),
				"error":  err.Error(),
			})
			continue
		}
		accepted++
	}
	return accepted
}

type Nop struct{}

func (Nop) PlayNote(pitch.Pitch, time.Duration, time.Duration) error {
	return nil
}

func (Nop) PlayPercussive(model.Percussion, time.Duration, time.Duration) error {
	return nil
}

// Recorder keeps every cue it is asked to play. It is safe for concurrent
// use.
type Recorder struct {
	mu   sync.Mutex
	cues []model.Cue
}

func (r *Recorder) PlayNote(p pitch.Pitch, duration, offset time.Duration) error {
	r.add(model.NoteCue(p, duration, offset))
	return nil
}

func (r *Recorder) PlayPercussive(kind model.Percussion, duration, offset time.Duration) error {
	r.add(model.PercussiveCue(kind, duration, offset))
	return nil
}

func (r *Recorder) add(c model.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

func (r *Recorder) Cues() []model.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]model.Cue, len(r.cues))
	copy(res, r.cues)
	return res
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = nil
}

// WriteFile renders everything recorded so far as a MIDI file.
func (r *Recorder) WriteFile(path string) error {
	return midi.WriteCueFile(path, r.Cues())
}
