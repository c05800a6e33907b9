package planner

import (
	"math/rand/v2"
	"time"
)

// Random is the source of every random decision taken while composing a plan.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a time-seeded source.
func NewRandom() Random {
	return NewSeededRandom(uint64(time.Now().UnixNano()))
}

// NewSeededRandom returns a deterministic source.
func NewSeededRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
