package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/eartrainer/pitch"
)

// Quality is a chord shape as semitone offsets from the root.
type Quality struct {
	Name    string `yaml:"name"`
	Offsets []int  `yaml:"offsets"`
}

var Triads = []Quality{
	{Name: "major", Offsets: []int{0, 4, 7}},
	{Name: "minor", Offsets: []int{0, 3, 7}},
	{Name: "diminished", Offsets: []int{0, 3, 6}},
	{Name: "augmented", Offsets: []int{0, 4, 8}},
}

type Inversion int

const (
	RootPosition Inversion = iota
	FirstInversion
	SecondInversion
)

var Inversions = []Inversion{RootPosition, FirstInversion, SecondInversion}

func (i Inversion) Label() string {
	switch i {
	case RootPosition:
		return "Root position"
	case FirstInversion:
		return "1st inversion"
	case SecondInversion:
		return "2nd inversion"
	}
	return fmt.Sprintf("%dth inversion", int(i))
}

func Voice(root pitch.Pitch, q Quality) []pitch.Pitch {
	return pitch.TransposeAll(root, q.Offsets)
}

// Invert moves the lowest note up an octave n times.
func Invert(notes []pitch.Pitch, n Inversion) []pitch.Pitch {
	res := sorted(notes)
	for i := 0; i < int(n) && len(res) > 0; i++ {
		res = append(res[1:], res[0].Transpose(12))
	}
	return res
}

// CreateChordKey joins the sorted note names, e.g. "C4-E4-G4".
func CreateChordKey(notes []pitch.Pitch) string {
	var names []string
	for _, n := range sorted(notes) {
		names = append(names, n.String())
	}
	return strings.Join(names, "-")
}

// Identify names a close-voiced triad and its inversion. ok is false when
// the notes don't match any of qualities in any inversion.
func Identify(notes []pitch.Pitch, qualities []Quality) (q Quality, inv Inversion, ok bool) {
	if len(notes) == 0 {
		return Quality{}, 0, false
	}
	ordered := sorted(notes)
	for _, candidate := range qualities {
		if len(candidate.Offsets) != len(ordered) {
			continue
		}
		for _, inversion := range Inversions {
			if int(inversion) >= len(candidate.Offsets) {
				break
			}
			// recover the root from the bass note of this inversion
			root := ordered[0].Transpose(-candidate.Offsets[inversion])
			if equal(Invert(Voice(root, candidate), inversion), ordered) {
				return candidate, inversion, true
			}
		}
	}
	return Quality{}, 0, false
}

func sorted(notes []pitch.Pitch) []pitch.Pitch {
	res := make([]pitch.Pitch, len(notes))
	copy(res, notes)
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}

func equal(a, b []pitch.Pitch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
