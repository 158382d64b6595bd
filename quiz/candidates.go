package quiz

import (
	"math/rand"

	"github.com/jsphweid/eartrainer/util"
)

// Shuffle returns a uniformly random permutation of labels.
func Shuffle(rng *rand.Rand, labels []string) []string {
	res := make([]string, len(labels))
	copy(res, labels)
	rng.Shuffle(len(res), func(i, j int) {
		res[i], res[j] = res[j], res[i]
	})
	return res
}

// Candidates picks up to n-1 distinct distractors from pool (never the
// correct label), adds the correct label and shuffles the lot. The result
// has at most n entries and contains correct exactly once.
func Candidates(rng *rand.Rand, correct string, pool []string, n int) []string {
	if n < 1 {
		n = 1
	}
	distractors := Shuffle(rng, util.Without(util.Dedup(pool), correct))
	if len(distractors) > n-1 {
		distractors = distractors[:n-1]
	}
	return Shuffle(rng, append(distractors, correct))
}
