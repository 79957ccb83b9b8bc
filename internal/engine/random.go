package engine

import (
	"fmt"
	"math"
	"slices"
)

// Match minute domain.
const (
	FirstMinute = 1
	LastMinute  = 90
)

// UniformInt returns an integer in [min, max], each value equally likely.
// It panics if min > max.
func UniformInt(rng Rand, min, max int) int {
	if min > max {
		panic(fmt.Sprintf("engine: UniformInt called with min %d > max %d", min, max))
	}
	return min + rng.IntN(max-min+1)
}

// UniqueMinutes returns n distinct minutes in [1, 90], sorted ascending.
// It panics if n is outside [0, 90].
func UniqueMinutes(rng Rand, n int) []int {
	return uniqueMinutesExcluding(rng, n, nil)
}

// uniqueMinutesExcluding draws n distinct minutes that are not in used.
// Draws come from the remaining domain, so the loop is bounded by n.
func uniqueMinutesExcluding(rng Rand, n int, used map[int]bool) []int {
	free := make([]int, 0, LastMinute)
	for m := FirstMinute; m <= LastMinute; m++ {
		if !used[m] {
			free = append(free, m)
		}
	}
	if n < 0 || n > len(free) {
		panic(fmt.Sprintf("engine: cannot draw %d distinct minutes from %d free", n, len(free)))
	}

	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(free)-i)
		free[i], free[j] = free[j], free[i]
	}

	out := slices.Clone(free[:n])
	slices.Sort(out)
	return out
}

// GoalCount maps a strength rating to a goal total using a rounded normal
// draw centred on 1.2 + strength/50 - 1 (sd 1), clamped to [0, ceiling].
func GoalCount(rng Rand, strength, ceiling int) int {
	goals := int(math.Round(rng.NormFloat64() + ExpectedGoalMean(strength)))
	return clamp(goals, 0, ceiling)
}

// ExpectedGoalMean is the centre of the GoalCount distribution before clamping.
func ExpectedGoalMean(strength int) float64 {
	return 0.2 + float64(strength)/50
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
