package player

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/eartrainer/midi"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

type failing struct{}

func (failing) PlayNote(pitch.Pitch, time.Duration, time.Duration) error {
	return errors.New("no audio device")
}

func (failing) PlayPercussive(model.Percussion, time.Duration, time.Duration) error {
	return errors.New("no audio device")
}

func sampleCues() []model.Cue {
	return []model.Cue{
		model.NoteCue(pitch.MustParse("C4"), 600*time.Millisecond, 0),
		model.NoteCue(pitch.MustParse("E4"), 600*time.Millisecond, 500*time.Millisecond),
		model.PercussiveCue(model.Kick, 250*time.Millisecond, time.Second),
	}
}

func TestPlayHandsOverEveryCue(t *testing.T) {
	rec := &Recorder{}
	assert.Equal(t, 3, Play(rec, sampleCues()))
	assert.Equal(t, sampleCues(), rec.Cues())

	rec.Reset()
	assert.Empty(t, rec.Cues())
}

func TestPlayFailuresAreSwallowed(t *testing.T) {
	assert.Equal(t, 0, Play(failing{}, sampleCues()))
	assert.Equal(t, 3, Play(Nop{}, sampleCues()))
}

func TestPlaySkipsUnknownKinds(t *testing.T) {
	rec := &Recorder{}
	assert.Equal(t, 0, Play(rec, []model.Cue{{Kind: "whistle"}}))
}

func TestRecorderWritesMidi(t *testing.T) {
	rec := &Recorder{}
	Play(rec, sampleCues())
	path := filepath.Join(t.TempDir(), "round.mid")
	require.NoError(t, rec.WriteFile(path))

	s, err := midi.ReadMidiFile(path)
	require.NoError(t, err)
	assert.Len(t, midi.Decode(s), 3)
}

func TestMIDIOutSendsOnAndOff(t *testing.T) {
	var mu sync.Mutex
	var sent []gomidi.Message
	out := NewMIDIOut(func(msg gomidi.Message) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, msg)
		return nil
	})

	require.NoError(t, out.PlayNote(pitch.MustParse("A4"), 5*time.Millisecond, 0))
	require.NoError(t, out.PlayPercussive(model.HiHat, 5*time.Millisecond, 5*time.Millisecond))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 4
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	var ch, key, vel uint8
	starts := 0
	for _, msg := range sent {
		if msg.GetNoteStart(&ch, &key, &vel) {
			starts++
		}
	}
	assert.Equal(t, 2, starts)
	assert.NoError(t, out.Close())
}

func TestMIDIOutRejectsOutOfRange(t *testing.T) {
	out := NewMIDIOut(func(gomidi.Message) error { return nil })
	assert.Error(t, out.PlayNote(pitch.FromAbsolute(-1), time.Millisecond, 0))
}

func TestMIDIOutCloseSilencesSoundingKeys(t *testing.T) {
	var mu sync.Mutex
	var sent []gomidi.Message
	out := NewMIDIOut(func(msg gomidi.Message) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, msg)
		return nil
	})

	require.NoError(t, out.PlayNote(pitch.MustParse("C4"), time.Hour, 0))
	require.NoError(t, out.PlayPercussive(model.Kick, time.Hour, time.Hour))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, out.Close())
	assert.Error(t, out.PlayNote(pitch.MustParse("C4"), time.Millisecond, 0))

	mu.Lock()
	defer mu.Unlock()
	var ch, key, vel uint8
	starts := 0
	ends := map[uint8]bool{}
	for _, msg := range sent {
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			starts++
		case msg.GetNoteEnd(&ch, &key):
			ends[key] = true
		}
	}
	assert.Equal(t, 1, starts)
	assert.True(t, ends[60])
}
