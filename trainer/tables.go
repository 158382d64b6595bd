package trainer

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/jsphweid/eartrainer/chord"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/pitch"
	"github.com/jsphweid/eartrainer/util"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// MaxTempo bounds drums/tempo so clicks stay at least a millisecond apart.
const MaxTempo = 300

// hits closer than this would land on the same MIDI tick
const minSpacing = time.Millisecond

type StrumPattern struct {
	Label string    `yaml:"label"`
	Beats []float64 `yaml:"beats"`
}

type Subdivision struct {
	Label string  `yaml:"label"`
	Beats float64 `yaml:"beats"`
}

type Rhythm struct {
	Label string             `yaml:"label"`
	Hits  []model.Percussion `yaml:"hits"`
}

type TempoRange struct {
	Min     int   `yaml:"min"`
	Max     int   `yaml:"max"`
	Clicks  int   `yaml:"clicks"`
	Offsets []int `yaml:"offsets"`
}

type Difficulty struct {
	Name      string
	Intervals []pitch.Interval
}

// Tables is the validated content every drill draws from.
type Tables struct {
	Intervals            *pitch.IntervalTable
	Difficulties         []Difficulty
	DefaultDifficulty    string
	DistractorDifficulty string

	PianoNotes         []pitch.Pitch
	PianoIntervalBases int
	ChordRoots         []pitch.Pitch
	ChordQualities     []chord.Quality

	GuitarIntervalBases      []pitch.Pitch
	GuitarIntervalDifficulty string
	PowerRoots               []pitch.Pitch
	StrumRoot                pitch.Pitch
	GuitarVoicings           []chord.Quality
	StrumPatterns            []StrumPattern

	Tempo            TempoRange
	SubdivisionTempo float64
	Subdivisions     []Subdivision
	Rhythms          []Rhythm
}

type rawTables struct {
	Intervals    []pitch.Interval `yaml:"intervals"`
	Difficulties []struct {
		Name      string   `yaml:"name"`
		Intervals []string `yaml:"intervals"`
	} `yaml:"difficulties"`
	DefaultDifficulty    string `yaml:"default_difficulty"`
	DistractorDifficulty string `yaml:"distractor_difficulty"`
	Piano                struct {
		Notes         []string `yaml:"notes"`
		IntervalBases int      `yaml:"interval_bases"`
		ChordRoots    []string `yaml:"chord_roots"`
	} `yaml:"piano"`
	ChordQualities []chord.Quality `yaml:"chord_qualities"`
	Guitar         struct {
		IntervalBases      []string        `yaml:"interval_bases"`
		IntervalDifficulty string          `yaml:"interval_difficulty"`
		PowerRoots         []string        `yaml:"power_roots"`
		StrumRoot          string          `yaml:"strum_root"`
		Voicings           []chord.Quality `yaml:"voicings"`
	} `yaml:"guitar"`
	StrumPatterns    []StrumPattern `yaml:"strum_patterns"`
	Tempo            TempoRange     `yaml:"tempo"`
	SubdivisionTempo float64        `yaml:"subdivision_tempo"`
	Subdivisions     []Subdivision  `yaml:"subdivisions"`
	Rhythms          []Rhythm       `yaml:"rhythms"`
}

func DefaultTables() (*Tables, error) {
	return ParseTables(defaultTablesYAML)
}

// LoadTables reads path, or the embedded tables when path is empty.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables()
	}
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables: %w", err)
	}
	return ParseTables(dat)
}

// ParseTables decodes and validates a tables document. Every interval
// code a difficulty names must exist, so lookups at quiz time can't miss.
func ParseTables(dat []byte) (*Tables, error) {
	var raw rawTables
	if err := yaml.Unmarshal(dat, &raw); err != nil {
		return nil, fmt.Errorf("decoding tables: %w", err)
	}

	var t Tables
	var err error
	if t.Intervals, err = pitch.NewIntervalTable(raw.Intervals); err != nil {
		return nil, fmt.Errorf("intervals: %w", err)
	}

	for _, d := range raw.Difficulties {
		if len(d.Intervals) == 0 {
			return nil, fmt.Errorf("difficulty %q has no intervals", d.Name)
		}
		diff := Difficulty{Name: d.Name}
		for _, code := range d.Intervals {
			iv, err := t.Intervals.Lookup(code)
			if err != nil {
				return nil, fmt.Errorf("difficulty %q: %w", d.Name, err)
			}
			diff.Intervals = append(diff.Intervals, iv)
		}
		t.Difficulties = append(t.Difficulties, diff)
	}
	t.DefaultDifficulty = raw.DefaultDifficulty
	t.DistractorDifficulty = raw.DistractorDifficulty
	t.GuitarIntervalDifficulty = raw.Guitar.IntervalDifficulty
	for _, name := range []string{t.DefaultDifficulty, t.DistractorDifficulty, t.GuitarIntervalDifficulty} {
		if _, ok := t.Difficulty(name); !ok {
			return nil, fmt.Errorf("difficulty %q is referenced but not defined", name)
		}
	}

	if t.PianoNotes, err = parseNotes("piano.notes", raw.Piano.Notes); err != nil {
		return nil, err
	}
	t.PianoIntervalBases = raw.Piano.IntervalBases
	if t.PianoIntervalBases < 1 || t.PianoIntervalBases > len(t.PianoNotes) {
		return nil, fmt.Errorf("piano.interval_bases must be between 1 and %d", len(t.PianoNotes))
	}
	if t.ChordRoots, err = parseNotes("piano.chord_roots", raw.Piano.ChordRoots); err != nil {
		return nil, err
	}
	if t.GuitarIntervalBases, err = parseNotes("guitar.interval_bases", raw.Guitar.IntervalBases); err != nil {
		return nil, err
	}
	if t.PowerRoots, err = parseNotes("guitar.power_roots", raw.Guitar.PowerRoots); err != nil {
		return nil, err
	}
	if t.StrumRoot, err = pitch.Parse(raw.Guitar.StrumRoot); err != nil {
		return nil, fmt.Errorf("guitar.strum_root: %w", err)
	}

	if t.ChordQualities, err = checkQualities("chord_qualities", raw.ChordQualities); err != nil {
		return nil, err
	}
	if t.GuitarVoicings, err = checkQualities("guitar.voicings", raw.Guitar.Voicings); err != nil {
		return nil, err
	}

	if len(raw.StrumPatterns) == 0 {
		return nil, fmt.Errorf("strum_patterns is empty")
	}
	for _, sp := range raw.StrumPatterns {
		if sp.Label == "" || len(sp.Beats) == 0 {
			return nil, fmt.Errorf("strum pattern %q needs a label and beats", sp.Label)
		}
	}
	t.StrumPatterns = raw.StrumPatterns

	t.Tempo = raw.Tempo
	if t.Tempo.Min < 1 || t.Tempo.Max < t.Tempo.Min || t.Tempo.Clicks < 1 {
		return nil, fmt.Errorf("tempo range %d-%d with %d clicks is invalid", t.Tempo.Min, t.Tempo.Max, t.Tempo.Clicks)
	}
	if t.Tempo.Max > MaxTempo {
		return nil, fmt.Errorf("tempo.max %d is above %d BPM", t.Tempo.Max, MaxTempo)
	}
	if len(t.Tempo.Offsets) == 0 || t.Tempo.Offsets[0] != 0 {
		return nil, fmt.Errorf("tempo.offsets must start with 0")
	}
	for _, o := range t.Tempo.Offsets {
		if t.Tempo.Min+o < 1 || t.Tempo.Max+o > MaxTempo {
			return nil, fmt.Errorf("tempo offset %d leaves the 1-%d BPM range", o, MaxTempo)
		}
	}

	t.SubdivisionTempo = raw.SubdivisionTempo
	if t.SubdivisionTempo <= 0 {
		return nil, fmt.Errorf("subdivision_tempo must be positive")
	}
	if len(raw.Subdivisions) == 0 {
		return nil, fmt.Errorf("subdivisions is empty")
	}
	for _, s := range raw.Subdivisions {
		if s.Label == "" || s.Beats <= 0 {
			return nil, fmt.Errorf("subdivision %q needs a label and positive beats", s.Label)
		}
		if subdivisionSpacing(t.SubdivisionTempo, s.Beats) < minSpacing {
			return nil, fmt.Errorf("subdivision %q puts hits less than %v apart", s.Label, minSpacing)
		}
	}
	t.Subdivisions = raw.Subdivisions

	if len(raw.Rhythms) == 0 {
		return nil, fmt.Errorf("rhythms is empty")
	}
	for _, r := range raw.Rhythms {
		if r.Label == "" || len(r.Hits) == 0 {
			return nil, fmt.Errorf("rhythm %q needs a label and hits", r.Label)
		}
		for _, hit := range r.Hits {
			if hit != model.Kick && hit != model.Snare && hit != model.HiHat {
				return nil, fmt.Errorf("rhythm %q has unknown hit %q", r.Label, hit)
			}
		}
	}
	t.Rhythms = raw.Rhythms

	if err := t.checkUniqueLabels(); err != nil {
		return nil, err
	}
	return &t, nil
}

// checkUniqueLabels makes sure every answer a drill can offer names one
// thing only.
func (t *Tables) checkUniqueLabels() error {
	var qualities, voicings, strums, subdivisions, rhythms []string
	for _, q := range t.ChordQualities {
		qualities = append(qualities, q.Name)
	}
	for _, v := range t.GuitarVoicings {
		voicings = append(voicings, v.Name)
	}
	for _, sp := range t.StrumPatterns {
		strums = append(strums, sp.Label)
	}
	for _, sub := range t.Subdivisions {
		subdivisions = append(subdivisions, sub.Label)
	}
	for _, r := range t.Rhythms {
		rhythms = append(rhythms, r.Label)
	}

	fields := []struct {
		name   string
		labels []string
	}{
		{"chord_qualities", qualities},
		{"guitar.voicings", voicings},
		{"strum_patterns", strums},
		{"subdivisions", subdivisions},
		{"rhythms", rhythms},
	}
	for _, f := range fields {
		if len(util.Dedup(f.labels)) != len(f.labels) {
			return fmt.Errorf("%s has duplicate labels", f.name)
		}
	}
	return nil
}

func (t *Tables) Difficulty(name string) (Difficulty, bool) {
	for _, d := range t.Difficulties {
		if d.Name == name {
			return d, true
		}
	}
	return Difficulty{}, false
}

func (t *Tables) DifficultyNames() []string {
	var res []string
	for _, d := range t.Difficulties {
		res = append(res, d.Name)
	}
	return res
}

func parseNotes(field string, names []string) ([]pitch.Pitch, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%s is empty", field)
	}
	res := make([]pitch.Pitch, 0, len(names))
	for _, n := range names {
		p, err := pitch.Parse(n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		res = append(res, p)
	}
	return res, nil
}

func checkQualities(field string, qualities []chord.Quality) ([]chord.Quality, error) {
	if len(qualities) == 0 {
		return nil, fmt.Errorf("%s is empty", field)
	}
	for _, q := range qualities {
		if q.Name == "" || len(q.Offsets) == 0 {
			return nil, fmt.Errorf("%s: %q needs a name and offsets", field, q.Name)
		}
	}
	return qualities, nil
}
