package engine

import (
	"math/rand/v2"
)

// Rand is the random source the engine draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	NormFloat64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source. A zero seed yields a
// non-deterministic source.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
