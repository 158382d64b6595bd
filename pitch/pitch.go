package pitch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var notePattern = regexp.MustCompile(`^([A-G]#?)(-?\d+)$`)

// maxOctave keeps (octave+1)*12 plus a name index inside int.
const maxOctave = (math.MaxInt-11)/12 - 1

// Pitch is an absolute semitone number using MIDI numbering, so C4 is 60
// and C-1 is 0. Values outside 0-127 are valid pitches, they just can't be
// sent over MIDI.
type Pitch int

type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid note name %q", e.Input)
}

// New builds a pitch from one of the 12 chromatic names and an octave.
func New(name string, octave int) (Pitch, error) {
	idx := nameIndex(name)
	if idx < 0 || octave > maxOctave || octave < -maxOctave {
		return 0, &ParseError{Input: name + strconv.Itoa(octave)}
	}
	return Pitch(idx + (octave+1)*12), nil
}

// Parse reads note names like "C4", "F#3" or "B-1".
func Parse(s string) (Pitch, error) {
	match := notePattern.FindStringSubmatch(s)
	if match == nil {
		return 0, &ParseError{Input: s}
	}
	octave, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, &ParseError{Input: s}
	}
	return New(match[1], octave)
}

func MustParse(s string) Pitch {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func FromAbsolute(semitone int) Pitch {
	return Pitch(semitone)
}

func (p Pitch) AbsoluteSemitone() int {
	return int(p)
}

// Name is the chromatic name without octave.
func (p Pitch) Name() string {
	return noteNames[mod12(int(p))]
}

func (p Pitch) Octave() int {
	return floorDiv12(int(p)) - 1
}

func (p Pitch) String() string {
	return p.Name() + strconv.Itoa(p.Octave())
}

// Transpose moves p by any number of semitones, crossing octaves in
// either direction.
func (p Pitch) Transpose(semitones int) Pitch {
	return p + Pitch(semitones)
}

// InMIDIRange reports whether p fits in a MIDI key number.
func (p Pitch) InMIDIRange() bool {
	return p >= 0 && p <= 127
}

func Transpose(p Pitch, semitones int) Pitch {
	return p.Transpose(semitones)
}

// TransposeAll returns root moved by each offset, in order.
func TransposeAll(root Pitch, offsets []int) []Pitch {
	res := make([]Pitch, 0, len(offsets))
	for _, o := range offsets {
		res = append(res, root.Transpose(o))
	}
	return res
}

func nameIndex(name string) int {
	for i, n := range noteNames {
		if n == name {
			return i
		}
	}
	return -1
}

func mod12(n int) int {
	return (n%12 + 12) % 12
}

func floorDiv12(n int) int {
	q := n / 12
	if n%12 < 0 {
		q--
	}
	return q
}

func (p Pitch) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pitch) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
