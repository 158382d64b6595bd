package model

import (
	"time"

	"github.com/jsphweid/eartrainer/pitch"
)

type CueKind string

const (
	CueNote       CueKind = "note"
	CuePercussive CueKind = "percussive"
)

type Percussion string

const (
	Kick  Percussion = "kick"
	Snare Percussion = "snare"
	HiHat Percussion = "hihat"
)

// Cue is one sound in a prompt. Offset is measured from the start of the
// round; nothing in the core waits on it.
type Cue struct {
	Kind       CueKind
	Pitch      pitch.Pitch
	Percussion Percussion
	Duration   time.Duration
	Offset     time.Duration
}

func NoteCue(p pitch.Pitch, duration, offset time.Duration) Cue {
	return Cue{Kind: CueNote, Pitch: p, Duration: duration, Offset: offset}
}

func PercussiveCue(kind Percussion, duration, offset time.Duration) Cue {
	return Cue{Kind: CuePercussive, Percussion: kind, Duration: duration, Offset: offset}
}

// End is when the cue stops sounding.
func (c Cue) End() time.Duration {
	return c.Offset + c.Duration
}
