package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 that hands out
// fixed-width random bit fields.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bits returns a uniformly distributed value in [0, 2^n). n is capped at 32.
func (r *RNG) Bits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	if n >= 32 {
		return r.r.Uint32()
	}
	return r.r.Uint32() & (1<<n - 1)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
