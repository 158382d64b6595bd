package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// GetSortedKeys is GetKeys in ascending order, for output that has to be
// stable.
func GetSortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	slices.Sort(keys)
	return keys
}

// Dedup keeps the first occurrence of each value, preserving order.
func Dedup[A comparable](values []A) []A {
	seen := make(map[A]bool, len(values))
	res := make([]A, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		res = append(res, v)
	}
	return res
}

func Without[A comparable](values []A, drop A) []A {
	res := make([]A, 0, len(values))
	for _, v := range values {
		if v != drop {
			res = append(res, v)
		}
	}
	return res
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}
