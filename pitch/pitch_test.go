package pitch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	cases := map[string]int{
		"C4":  60,
		"A4":  69,
		"C#4": 61,
		"B3":  59,
		"E2":  40,
		"C-1": 0,
		"G9":  127,
	}

	for name, abs := range cases {
		t.Run(fmt.Sprintf("parse %v", name), func(t *testing.T) {
			p, err := Parse(name)
			require.NoError(t, err)

			assert := assert.New(t)
			assert.Equal(abs, p.AbsoluteSemitone())
			assert.Equal(name, p.String())
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "H4", "Cb4", "C", "c4", "C#", "E#4x"} {
		_, err := Parse(s)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "expected ParseError for %q", s)
	}
}

func TestOctaveWraparound(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C4", MustParse("B3").Transpose(1).String())
	assert.Equal("B3", MustParse("C4").Transpose(-1).String())
	assert.Equal("B-2", FromAbsolute(-1).String())
	assert.Equal("C-2", FromAbsolute(-12).String())
	assert.Equal("E4", Transpose(MustParse("E2"), 24).String())
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for abs := -30; abs <= 140; abs++ {
		p := FromAbsolute(abs)
		for s := -25; s <= 25; s++ {
			moved := Transpose(p, s)
			assert.Equal(moved, FromAbsolute(moved.AbsoluteSemitone()))
			assert.Equal(p, Transpose(moved, -s))
			assert.Equal(moved, MustParse(moved.String()))
		}
	}
}

func TestNewMatchesParse(t *testing.T) {
	for i, name := range noteNames {
		p, err := New(name, 3)
		require.NoError(t, err)
		assert.Equal(t, 48+i, p.AbsoluteSemitone())
	}
	_, err := New("Db", 3)
	assert.Error(t, err)
}

func TestTransposeAll(t *testing.T) {
	notes := TransposeAll(MustParse("A3"), []int{0, 4, 7})
	assert.Equal(t, []Pitch{MustParse("A3"), MustParse("C#4"), MustParse("E4")}, notes)
}

func TestInMIDIRange(t *testing.T) {
	assert := assert.New(t)
	assert.True(FromAbsolute(0).InMIDIRange())
	assert.True(FromAbsolute(127).InMIDIRange())
	assert.False(FromAbsolute(-1).InMIDIRange())
	assert.False(FromAbsolute(128).InMIDIRange())
}

func TestHugeOctaves(t *testing.T) {
	_, err := Parse("C768614336404564650")
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))

	for _, octave := range []int{maxOctave, -maxOctave} {
		p, err := New("B", octave)
		require.NoError(t, err)
		back, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, back)
		assert.Equal(t, octave, p.Octave())
	}

	_, err = New("C", maxOctave+1)
	assert.Error(t, err)
}
