package engine

import (
	"math/rand/v2"
	"time"
)

// RandomSource provides the random numbers for the Cxkk instruction.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// NewRandom returns a random source for the given seed. A seed of 0 selects
// a time based seed, any other value produces a reproducible sequence.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
