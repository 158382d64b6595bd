package trainer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"easy", "medium", "hard"}, tables.DifficultyNames())
	assert.Len(tables.PianoNotes, 13)
	assert.Equal(8, tables.PianoIntervalBases)
	assert.Len(tables.ChordQualities, 4)
	assert.Len(tables.GuitarVoicings, 4)
	assert.Len(tables.Rhythms, 4)
	assert.Equal(90.0, tables.SubdivisionTempo)

	semis, err := tables.Intervals.SemitoneOffsetOf("TT")
	assert.NoError(err)
	assert.Equal(6, semis)
}

func TestParseTablesRejectsBrokenContent(t *testing.T) {
	base := string(defaultTablesYAML)
	cases := map[string][2]string{
		"unknown interval code": {"easy, intervals: [M2, m3, P5]", "easy, intervals: [M2, m3, P12]"},
		"bad note name":         {"strum_root: E3", "strum_root: H3"},
		"undefined difficulty":  {"default_difficulty: medium", "default_difficulty: brutal"},
		"unknown drum hit":      {"hits: [kick, kick, kick, snare]", "hits: [kick, kick, kick, cowbell]"},
		"too many bases":        {"interval_bases: 8", "interval_bases: 80"},
		"bad tempo":             {"min: 70", "min: 0"},
		"tempo too fast":        {"max: 149", "max: 100000"},
		"tempo offset below 1":  {"offsets: [0, 5, -5, 10]", "offsets: [0, 5, -80, 10]"},
		"subdivision too fine":  {"{ label: Sixteenth, beats: 0.25 }", "{ label: Sixteenth, beats: 0.0001 }"},
		"rhythm without hits":   {"hits: [kick, kick, kick, snare]", "hits: []"},
		"rhythm without label":  {`label: "Kick - Kick - Kick - Snare"`, `label: ""`},
		"duplicate rhythm":      {`label: "Kick - Kick - Kick - Snare"`, `label: "Kick - Snare - Kick - Snare"`},
		"duplicate voicing":     {`name: "Single note"`, `name: "Major triad"`},
		"duplicate strum":       {`"Down - Down - Down - Down"`, `"Down - Up - Down - Up"`},
		"duplicate subdivision": {"label: Sixteenth", "label: Quarter"},
		"duplicate quality":     {"name: augmented", "name: major"},
	}
	for name, swap := range cases {
		t.Run(name, func(t *testing.T) {
			require.Contains(t, base, swap[0])
			_, err := ParseTables([]byte(strings.Replace(base, swap[0], swap[1], 1)))
			assert.Error(t, err)
		})
	}
}

func TestLoadTablesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, defaultTablesYAML, 0644))

	tables, err := LoadTables(path)
	require.NoError(t, err)
	assert.Len(t, tables.StrumPatterns, 4)

	_, err = LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
