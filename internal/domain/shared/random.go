package shared

import (
	"math/rand"
	"time"
)

// RandomSource is the subset of *rand.Rand the simulation draws from.
type RandomSource interface {
	NormFloat64() float64
	Intn(n int) int
	Float64() float64
}

// NewRandomSource returns a seeded generator. A zero seed picks one from the clock.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
