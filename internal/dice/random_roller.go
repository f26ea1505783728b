package dice

import (
	"math/rand/v2"
)

// seededStream is the PCG stream selector shared by all seeded rollers
const seededStream = 0x6c616e7465726e

// randomRoller draws from the process-wide source
type randomRoller struct{}

// NewRandomRoller creates a roller backed by math/rand/v2's global source
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Float implements Roller.Float
func (r *randomRoller) Float() float64 {
	return rand.Float64()
}

// SeededRoller is a reproducible roller. It is not safe for concurrent use;
// give every role runtime its own.
type SeededRoller struct {
	seed int64
	rng  *rand.Rand
}

// NewSeededRoller creates a PCG-backed roller for the given seed
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		seed: seed,
		rng:  rand.New(rand.NewPCG(uint64(seed), seededStream)),
	}
}

// Float implements Roller.Float
func (r *SeededRoller) Float() float64 {
	return r.rng.Float64()
}

// Seed returns the seed this roller was created with
func (r *SeededRoller) Seed() int64 {
	return r.seed
}

// Factory creates one roller per role runtime
type Factory func(runtimeIndex int) Roller

// SeededFactory derives a distinct, reproducible seed per runtime index
func SeededFactory(seed int64) Factory {
	return func(runtimeIndex int) Roller {
		return NewSeededRoller(seed + int64(runtimeIndex)*7919)
	}
}

// RandomFactory hands every runtime the global source
func RandomFactory() Factory {
	return func(int) Roller {
		return NewRandomRoller()
	}
}
