package player

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/logger"
	"github.com/jsphweid/eartrainer/midi"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/pitch"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// MIDIOut plays cues on a MIDI output port. Each note is scheduled with
// its own timer, so calls return immediately.
type MIDIOut struct {
	send func(msg gomidi.Message) error
	out  drivers.Out

	mu       sync.Mutex
	closed   bool
	timers   []*time.Timer
	sounding map[[2]uint8]int
}

// NewMIDIOut plays through send, which is usually the result of
// gomidi.SendTo.
func NewMIDIOut(send func(msg gomidi.Message) error) *MIDIOut {
	return &MIDIOut{send: send, sounding: make(map[[2]uint8]int)}
}

// OpenMIDIOut needs a registered driver, e.g. a blank import of rtmididrv.
func OpenMIDIOut(port int) (*MIDIOut, error) {
	out, err := gomidi.OutPort(port)
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI out port %d: %w", port, err)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("can't open MIDI out port %d: %w", port, err)
	}
	m := NewMIDIOut(send)
	m.out = out
	return m, nil
}

func (m *MIDIOut) PlayNote(p pitch.Pitch, duration, offset time.Duration) error {
	return m.schedule(model.NoteCue(p, duration, offset))
}

func (m *MIDIOut) PlayPercussive(kind model.Percussion, duration, offset time.Duration) error {
	return m.schedule(model.PercussiveCue(kind, duration, offset))
}

// schedule counts the key as sounding until its NoteOff goes out, so Close
// knows which keys to silence.
func (m *MIDIOut) schedule(c model.Cue) error {
	ch, key, err := midi.ChannelAndKey(c)
	if err != nil {
		return err
	}
	id := [2]uint8{ch, key}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errClosed
	}
	if len(m.sounding) == 0 {
		m.timers = nil
	}
	m.sounding[id]++
	// the NoteOff timer starts from the NoteOn so it can never overtake it
	m.timers = append(m.timers, time.AfterFunc(c.Offset, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed {
			return
		}
		m.sendOrWarn(gomidi.NoteOn(ch, key, midi.Velocity))
		time.AfterFunc(c.Duration, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.closed {
				return
			}
			if m.sounding[id]--; m.sounding[id] <= 0 {
				delete(m.sounding, id)
			}
			m.sendOrWarn(gomidi.NoteOff(ch, key))
		})
	}))
	return nil
}

var errClosed = errors.New("MIDI out is closed")

func (m *MIDIOut) sendOrWarn(msg gomidi.Message) {
	if err := m.send(msg); err != nil {
		logger.Warn("MIDI send failed", logger.Fields{"msg": msg.String(), "error": err.Error()})
	}
}

// Close stops cues that haven't started, sends NoteOff for every key that may still be
// sounding, then releases the port and the driver behind it.
func (m *MIDIOut) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for _, t := range m.timers {
		t.Stop()
	}
	m.timers = nil
	ids := make([][2]uint8, 0, len(m.sounding))
	for id := range m.sounding {
		ids = append(ids, id)
	}
	m.sounding = nil
	m.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool {
		if ids[i][0] != ids[j][0] {
			return ids[i][0] < ids[j][0]
		}
		return ids[i][1] < ids[j][1]
	})
	for _, id := range ids {
		m.sendOrWarn(gomidi.NoteOff(id[0], id[1]))
	}

	if m.out == nil {
		return nil
	}
	defer gomidi.CloseDriver()
	return m.out.Close()
}
