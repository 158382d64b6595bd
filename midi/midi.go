package midi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/jsphweid/eartrainer/constants"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/pitch"
	"github.com/jsphweid/eartrainer/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	NoteChannel uint8 = 0
	// general midi percussion lives on channel 10
	DrumChannel uint8 = 9
	Velocity    uint8 = 100
)

var percussionKeys = map[model.Percussion]uint8{
	model.Kick:  36,
	model.Snare: 38,
	model.HiHat: 42,
}

// ChannelAndKey maps a cue onto the MIDI channel and key it sounds on.
func ChannelAndKey(c model.Cue) (uint8, uint8, error) {
	switch c.Kind {
	case model.CueNote:
		if !c.Pitch.InMIDIRange() {
			return 0, 0, fmt.Errorf("pitch %v is outside the MIDI range", c.Pitch)
		}
		return NoteChannel, uint8(c.Pitch.AbsoluteSemitone()), nil
	case model.CuePercussive:
		key, ok := percussionKeys[c.Percussion]
		if !ok {
			return 0, 0, fmt.Errorf("no drum key for %q", c.Percussion)
		}
		return DrumChannel, key, nil
	}
	return 0, 0, fmt.Errorf("unknown cue kind %q", c.Kind)
}

func ticksPerSecond() float64 {
	return constants.TicksPerQuarter * constants.RenderTempo / 60
}

func toTicks(d time.Duration) uint32 {
	return uint32(math.Round(d.Seconds() * ticksPerSecond()))
}

type note struct {
	channel, key uint8
	on, off      uint32
}

type event struct {
	tick      uint32
	isNoteOff bool
	msg       gomidi.Message
}

// Encode renders cues as a single track SMF. A note that is still sounding
// when the same key starts again is cut at the new onset. Two notes on the
// same key and tick become one note lasting as long as the longer of them.
func Encode(cues []model.Cue) (*smf.SMF, error) {
	var notes []note
	for _, c := range cues {
		ch, key, err := ChannelAndKey(c)
		if err != nil {
			return nil, err
		}
		n := note{channel: ch, key: key, on: toTicks(c.Offset), off: toTicks(c.End())}
		// every note sounds for at least a tick
		n.off = util.Max(n.off, n.on+1)
		notes = append(notes, n)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].on < notes[j].on
	})

	var merged []note
	sounding := make(map[[2]uint8]int)
	for _, n := range notes {
		id := [2]uint8{n.channel, n.key}
		if prev, ok := sounding[id]; ok && merged[prev].off > n.on {
			if merged[prev].on == n.on {
				merged[prev].off = util.Max(merged[prev].off, n.off)
				continue
			}
			merged[prev].off = n.on
		}
		sounding[id] = len(merged)
		merged = append(merged, n)
	}

	var events []event
	for _, n := range merged {
		events = append(events,
			event{tick: n.on, msg: gomidi.NoteOn(n.channel, n.key, Velocity)},
			event{tick: n.off, isNoteOff: true, msg: gomidi.NoteOff(n.channel, n.key)},
		)
	}
	// prioritize smaller ticks then note off
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(constants.RenderTempo))
	var last uint32
	for _, evt := range events {
		track.Add(evt.tick-last, evt.msg)
		last = evt.tick
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("adding track: %w", err)
	}
	return s, nil
}

func WriteCues(w io.Writer, cues []model.Cue) error {
	s, err := Encode(cues)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}

func WriteCueFile(path string, cues []model.Cue) error {
	var buf bytes.Buffer
	if err := WriteCues(&buf, cues); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return readSMF(bytes.NewReader(dat))
}

// readSMF turns any panic from the smf reader into an error.
// https://github.com/gomidi/midi/issues/20
func readSMF(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("parsing midi: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parsing midi: %w", err)
	}
	return res, nil
}

// Decode pairs note starts with note ends and turns them back into cues,
// ordered by offset. Notes left hanging at the end of a track are dropped.
func Decode(s *smf.SMF) []model.Cue {
	var cues []model.Cue
	for _, track := range s.Tracks {
		var absTicks int64
		open := make(map[[2]uint8][]int64)
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var ch, key, vel uint8
			msg := gomidi.Message(evt.Message)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				id := [2]uint8{ch, key}
				open[id] = append(open[id], s.TimeAt(absTicks))
			case msg.GetNoteEnd(&ch, &key):
				id := [2]uint8{ch, key}
				starts := open[id]
				if len(starts) == 0 {
					continue
				}
				start := starts[0]
				open[id] = starts[1:]
				if c, ok := cueFor(ch, key, microseconds(start), microseconds(s.TimeAt(absTicks)-start)); ok {
					cues = append(cues, c)
				}
			}
		}
	}
	sort.SliceStable(cues, func(i, j int) bool {
		if cues[i].Offset != cues[j].Offset {
			return cues[i].Offset < cues[j].Offset
		}
		return cues[i].Pitch < cues[j].Pitch
	})
	return cues
}

func ReadCues(r io.Reader) ([]model.Cue, error) {
	s, err := readSMF(r)
	if err != nil {
		return nil, err
	}
	return Decode(s), nil
}

func microseconds(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}

func cueFor(ch, key uint8, offset, duration time.Duration) (model.Cue, bool) {
	if ch != DrumChannel {
		return model.NoteCue(pitch.FromAbsolute(int(key)), duration, offset), true
	}
	for kind, k := range percussionKeys {
		if k == key {
			return model.PercussiveCue(kind, duration, offset), true
		}
	}
	return model.Cue{}, false
}
