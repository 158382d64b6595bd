package trainer

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/chord"
	"github.com/jsphweid/eartrainer/constants"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/pitch"
	"github.com/jsphweid/eartrainer/quiz"
	"github.com/jsphweid/eartrainer/util"
)

const (
	Piano  = "piano"
	Guitar = "guitar"
	Drums  = "drums"
)

var Categories = []string{Piano, Guitar, Drums}

const (
	pianoIntervalGap     = 500 * time.Millisecond
	pianoIntervalLength  = 600 * time.Millisecond
	pianoChordSpread     = 30 * time.Millisecond
	pianoInversionSpread = 80 * time.Millisecond
	pianoChordLength     = 900 * time.Millisecond
	guitarPowerSpread    = 60 * time.Millisecond
	guitarPowerLength    = time.Second
	guitarIntervalGap    = 400 * time.Millisecond
	guitarIntervalLength = 800 * time.Millisecond
	strumBeat            = 200 * time.Millisecond
	strumLength          = 500 * time.Millisecond
	drumHitLength        = 250 * time.Millisecond
	hiHatLength          = 100 * time.Millisecond
	rhythmSpacing        = 300 * time.Millisecond
)

type UnknownDrillError struct {
	Name string
}

func (e *UnknownDrillError) Error() string {
	return fmt.Sprintf("unknown drill %q", e.Name)
}

type UnknownDifficultyError struct {
	Name string
}

func (e *UnknownDifficultyError) Error() string {
	return fmt.Sprintf("unknown difficulty %q", e.Name)
}

type generator func(t *Trainer, difficulty string) (model.Prompt, error)

type Drill struct {
	Name           string
	Category       string
	UsesDifficulty bool
	generate       generator
}

var drills = []Drill{
	{Name: "piano/interval", Category: Piano, UsesDifficulty: true, generate: (*Trainer).pianoInterval},
	{Name: "piano/chord", Category: Piano, generate: (*Trainer).pianoChord},
	{Name: "piano/inversion", Category: Piano, generate: (*Trainer).pianoInversion},
	{Name: "guitar/power", Category: Guitar, generate: (*Trainer).guitarPower},
	{Name: "guitar/interval", Category: Guitar, UsesDifficulty: true, generate: (*Trainer).guitarInterval},
	{Name: "guitar/strum", Category: Guitar, generate: (*Trainer).guitarStrum},
	{Name: "drums/tempo", Category: Drums, generate: (*Trainer).drumTempo},
	{Name: "drums/subdivision", Category: Drums, generate: (*Trainer).drumSubdivision},
	{Name: "drums/rhythm", Category: Drums, generate: (*Trainer).drumRhythm},
}

func Drills() []Drill {
	res := make([]Drill, len(drills))
	copy(res, drills)
	return res
}

func FindDrill(name string) (Drill, error) {
	for _, d := range drills {
		if d.Name == name {
			return d, nil
		}
	}
	return Drill{}, &UnknownDrillError{Name: name}
}

// Trainer turns tables into prompts. All randomness comes from rng; a
// Trainer may be shared between goroutines.
type Trainer struct {
	tables *Tables
	mu     sync.Mutex
	rng    *rand.Rand
}

func New(tables *Tables, rng *rand.Rand) *Trainer {
	return &Trainer{tables: tables, rng: rng}
}

func (t *Trainer) Tables() *Tables {
	return t.tables
}

// Generate builds a fresh prompt for the named drill. An empty difficulty
// means the tables' default.
func (t *Trainer) Generate(drillName, difficulty string) (model.Prompt, error) {
	d, err := FindDrill(drillName)
	if err != nil {
		return model.Prompt{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := d.generate(t, difficulty)
	if err != nil {
		return model.Prompt{}, err
	}
	p.Category = d.Category
	p.Drill = d.Name
	return p, nil
}

func pick[A any](rng *rand.Rand, values []A) A {
	return values[rng.Intn(len(values))]
}

func (t *Trainer) candidates(correct string, pool []string) []string {
	return quiz.Candidates(t.rng, correct, pool, constants.ChoiceCount)
}

func (t *Trainer) difficulty(name, fallback string) (Difficulty, error) {
	if name == "" {
		name = fallback
	}
	d, ok := t.tables.Difficulty(name)
	if !ok {
		return Difficulty{}, &UnknownDifficultyError{Name: name}
	}
	return d, nil
}

func intervalLabels(ivs []pitch.Interval) []string {
	res := make([]string, 0, len(ivs))
	for _, iv := range ivs {
		res = append(res, iv.Label)
	}
	return res
}

func qualityNames(qs []chord.Quality) []string {
	res := make([]string, 0, len(qs))
	for _, q := range qs {
		res = append(res, q.Name)
	}
	return res
}

// interval plays base then the note above it and asks for the interval.
func (t *Trainer) interval(bases []pitch.Pitch, difficulty, fallback string, gap, length time.Duration) (model.Prompt, error) {
	diff, err := t.difficulty(difficulty, fallback)
	if err != nil {
		return model.Prompt{}, err
	}
	distractors, _ := t.tables.Difficulty(t.tables.DistractorDifficulty)

	chosen := pick(t.rng, diff.Intervals)
	semis, err := t.tables.Intervals.SemitoneOffsetOf(chosen.Label)
	if err != nil {
		return model.Prompt{}, err
	}
	base := pick(t.rng, bases)
	upper := pitch.Transpose(base, semis)

	return model.Prompt{
		Correct:    chosen.Label,
		Candidates: t.candidates(chosen.Label, intervalLabels(distractors.Intervals)),
		Cues: []model.Cue{
			model.NoteCue(base, length, 0),
			model.NoteCue(upper, length, gap),
		},
	}, nil
}

// arpeggiate spreads notes spacing apart, each lasting length.
func arpeggiate(notes []pitch.Pitch, spacing, length time.Duration) []model.Cue {
	cues := make([]model.Cue, 0, len(notes))
	for i, n := range notes {
		cues = append(cues, model.NoteCue(n, length, time.Duration(i)*spacing))
	}
	return cues
}

func (t *Trainer) pianoInterval(difficulty string) (model.Prompt, error) {
	bases := t.tables.PianoNotes[:t.tables.PianoIntervalBases]
	return t.interval(bases, difficulty, t.tables.DefaultDifficulty, pianoIntervalGap, pianoIntervalLength)
}

func (t *Trainer) pianoChord(string) (model.Prompt, error) {
	q := pick(t.rng, t.tables.ChordQualities)
	root := pick(t.rng, t.tables.ChordRoots)
	return model.Prompt{
		Correct:    q.Name,
		Candidates: t.candidates(q.Name, qualityNames(t.tables.ChordQualities)),
		Cues:       arpeggiate(chord.Voice(root, q), pianoChordSpread, pianoChordLength),
	}, nil
}

func (t *Trainer) pianoInversion(string) (model.Prompt, error) {
	root := pick(t.rng, t.tables.ChordRoots)
	inv := pick(t.rng, chord.Inversions)
	var labels []string
	for _, i := range chord.Inversions {
		labels = append(labels, i.Label())
	}
	notes := chord.Invert(chord.Voice(root, chord.Triads[0]), inv)
	return model.Prompt{
		Correct:    inv.Label(),
		Candidates: t.candidates(inv.Label(), labels),
		Cues:       arpeggiate(notes, pianoInversionSpread, pianoChordLength),
	}, nil
}

func (t *Trainer) guitarPower(string) (model.Prompt, error) {
	v := pick(t.rng, t.tables.GuitarVoicings)
	root := pick(t.rng, t.tables.PowerRoots)
	return model.Prompt{
		Correct:    v.Name,
		Candidates: t.candidates(v.Name, qualityNames(t.tables.GuitarVoicings)),
		Cues:       arpeggiate(chord.Voice(root, v), guitarPowerSpread, guitarPowerLength),
	}, nil
}

func (t *Trainer) guitarInterval(difficulty string) (model.Prompt, error) {
	return t.interval(t.tables.GuitarIntervalBases, difficulty, t.tables.GuitarIntervalDifficulty, guitarIntervalGap, guitarIntervalLength)
}

func (t *Trainer) guitarStrum(string) (model.Prompt, error) {
	sp := pick(t.rng, t.tables.StrumPatterns)
	var labels []string
	for _, p := range t.tables.StrumPatterns {
		labels = append(labels, p.Label)
	}

	var cues []model.Cue
	var at time.Duration
	for _, beat := range sp.Beats {
		cues = append(cues, model.NoteCue(t.tables.StrumRoot, strumLength, at))
		at += util.Max(strumBeat, time.Duration(beat*float64(strumBeat)))
	}
	return model.Prompt{
		Correct:    sp.Label,
		Candidates: t.candidates(sp.Label, labels),
		Cues:       cues,
	}, nil
}

func bpmLabel(bpm int) string {
	return strconv.Itoa(bpm) + " BPM"
}

func beatLength(bpm float64) time.Duration {
	return time.Duration(float64(time.Minute) / bpm)
}

// subdivisionSpacing is the gap between hits, truncated to whole
// milliseconds.
func subdivisionSpacing(bpm, beats float64) time.Duration {
	return time.Duration(float64(beatLength(bpm)) * beats).Truncate(time.Millisecond)
}

func (t *Trainer) drumTempo(string) (model.Prompt, error) {
	tr := t.tables.Tempo
	tempo := tr.Min + t.rng.Intn(tr.Max-tr.Min+1)
	beat := beatLength(float64(tempo)).Truncate(time.Millisecond)

	var cues []model.Cue
	for i := 0; i < tr.Clicks; i++ {
		hit := model.Snare
		if i%4 == 0 {
			hit = model.Kick
		}
		cues = append(cues, model.PercussiveCue(hit, drumHitLength, time.Duration(i)*beat))
	}

	var labels []string
	for _, o := range tr.Offsets {
		labels = append(labels, bpmLabel(tempo+o))
	}
	return model.Prompt{
		Correct:    bpmLabel(tempo),
		Candidates: t.candidates(bpmLabel(tempo), labels),
		Cues:       cues,
	}, nil
}

func (t *Trainer) drumSubdivision(string) (model.Prompt, error) {
	sub := pick(t.rng, t.tables.Subdivisions)
	spacing := subdivisionSpacing(t.tables.SubdivisionTempo, sub.Beats)

	var cues []model.Cue
	for i := 0; i < t.tables.Tempo.Clicks; i++ {
		cues = append(cues, model.PercussiveCue(model.HiHat, hiHatLength, time.Duration(i)*spacing))
	}

	var labels []string
	for _, s := range t.tables.Subdivisions {
		labels = append(labels, s.Label)
	}
	return model.Prompt{
		Correct:    sub.Label,
		Candidates: t.candidates(sub.Label, labels),
		Cues:       cues,
	}, nil
}

func (t *Trainer) drumRhythm(string) (model.Prompt, error) {
	r := pick(t.rng, t.tables.Rhythms)

	var cues []model.Cue
	for i, hit := range r.Hits {
		cues = append(cues, model.PercussiveCue(hit, drumHitLength, time.Duration(i)*rhythmSpacing))
	}

	var labels []string
	for _, rh := range t.tables.Rhythms {
		labels = append(labels, rh.Label)
	}
	return model.Prompt{
		Correct:    r.Label,
		Candidates: t.candidates(r.Label, labels),
		Cues:       cues,
	}, nil
}
