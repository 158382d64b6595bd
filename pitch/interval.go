package pitch

import "fmt"

// Interval is a named distance of at most an octave.
type Interval struct {
	Code      string `yaml:"code" json:"code"`
	Label     string `yaml:"label" json:"label"`
	Semitones int    `yaml:"semitones" json:"semitones"`
}

// Above returns the pitch this interval above p.
func (i Interval) Above(p Pitch) Pitch {
	return p.Transpose(i.Semitones)
}

type UnknownIntervalError struct {
	Label string
}

func (e *UnknownIntervalError) Error() string {
	return fmt.Sprintf("unknown interval %q", e.Label)
}

var SimpleIntervals = []Interval{
	{Code: "P1", Label: "Unison", Semitones: 0},
	{Code: "m2", Label: "Minor 2nd", Semitones: 1},
	{Code: "M2", Label: "Major 2nd", Semitones: 2},
	{Code: "m3", Label: "Minor 3rd", Semitones: 3},
	{Code: "M3", Label: "Major 3rd", Semitones: 4},
	{Code: "P4", Label: "Perfect 4th", Semitones: 5},
	{Code: "TT", Label: "Tritone", Semitones: 6},
	{Code: "P5", Label: "Perfect 5th", Semitones: 7},
	{Code: "m6", Label: "Minor 6th", Semitones: 8},
	{Code: "M6", Label: "Major 6th", Semitones: 9},
	{Code: "m7", Label: "Minor 7th", Semitones: 10},
	{Code: "M7", Label: "Major 7th", Semitones: 11},
	{Code: "P8", Label: "Octave", Semitones: 12},
}

// IntervalTable is an immutable lookup keyed by both code and label.
type IntervalTable struct {
	intervals []Interval
	byKey     map[string]Interval
}

func NewIntervalTable(intervals []Interval) (*IntervalTable, error) {
	t := &IntervalTable{
		intervals: make([]Interval, 0, len(intervals)),
		byKey:     make(map[string]Interval),
	}
	for _, iv := range intervals {
		if iv.Label == "" {
			return nil, fmt.Errorf("interval %q has no label", iv.Code)
		}
		if iv.Semitones < 0 || iv.Semitones > 12 {
			return nil, fmt.Errorf("interval %q has %d semitones, want 0-12", iv.Label, iv.Semitones)
		}
		for _, key := range []string{iv.Code, iv.Label} {
			if key == "" {
				continue
			}
			if _, ok := t.byKey[key]; ok {
				return nil, fmt.Errorf("interval key %q defined twice", key)
			}
			t.byKey[key] = iv
		}
		t.intervals = append(t.intervals, iv)
	}
	return t, nil
}

func DefaultIntervalTable() *IntervalTable {
	t, err := NewIntervalTable(SimpleIntervals)
	if err != nil {
		panic("SimpleIntervals is invalid: " + err.Error())
	}
	return t
}

func (t *IntervalTable) Lookup(label string) (Interval, error) {
	iv, ok := t.byKey[label]
	if !ok {
		return Interval{}, &UnknownIntervalError{Label: label}
	}
	return iv, nil
}

// SemitoneOffsetOf accepts either the short code ("M3") or the label
// ("Major 3rd").
func (t *IntervalTable) SemitoneOffsetOf(label string) (int, error) {
	iv, err := t.Lookup(label)
	if err != nil {
		return 0, err
	}
	return iv.Semitones, nil
}

func (t *IntervalTable) Intervals() []Interval {
	res := make([]Interval, len(t.intervals))
	copy(res, t.intervals)
	return res
}
