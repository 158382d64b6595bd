package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func count(labels []string, want string) int {
	n := 0
	for _, l := range labels {
		if l == want {
			n++
		}
	}
	return n
}

func TestCandidatesContainCorrectOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := []string{"m2", "M2", "m3", "M3", "P4", "P5", "m6", "M6", "m7", "M7"}

	assert := assert.New(t)
	for i := 0; i < 200; i++ {
		got := Candidates(rng, "P5", pool, 4)
		assert.Len(got, 4)
		assert.Equal(1, count(got, "P5"))
		for _, l := range got {
			assert.Equal(1, count(got, l))
		}
	}
}

func TestCandidatesWithSmallPool(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	got := Candidates(rng, "major", []string{"major", "minor", "minor"}, 4)
	assert.ElementsMatch(t, []string{"major", "minor"}, got)
}

func TestCandidatesCorrectNotInPool(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	got := Candidates(rng, "100 BPM", nil, 4)
	assert.Equal(t, []string{"100 BPM"}, got)
}

func TestShuffleCoversPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	seen := make(map[string]int)
	for i := 0; i < 600; i++ {
		s := Shuffle(rng, []string{"a", "b", "c"})
		seen[s[0]+s[1]+s[2]]++
	}

	assert := assert.New(t)
	assert.Len(seen, 6)
	for perm, n := range seen {
		assert.Greater(n, 50, perm)
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	Shuffle(rand.New(rand.NewSource(5)), in)
	assert.Equal(t, []string{"a", "b", "c", "d"}, in)
}
