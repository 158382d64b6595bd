package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "c": 2, "a": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetSortedKeys(m))
}

func TestDedupKeepsFirst(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, Dedup([]string{"A", "B", "A", "C", "B"}))
	assert.Empty(t, Dedup([]string{}))
}

func TestWithout(t *testing.T) {
	assert.Equal(t, []int{1, 3}, Without([]int{1, 2, 3, 2}, 2))
}

func TestMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3, Max(1, 3))
	assert.Equal(2.5, Max(2.5, -1.0))
}
