// Package rng provides the default uniform random source injected into the
// simulation engine.
package rng

import "math/rand"

// Uniform draws uniformly distributed values from a seeded source. It
// satisfies the engine's Sampler capability.
type Uniform struct {
	r *rand.Rand
}

// NewUniform returns a Uniform seeded with seed. Runs with the same seed
// produce the same initial velocities.
func NewUniform(seed int64) *Uniform {
	return &Uniform{r: rand.New(rand.NewSource(seed))}
}

// Sample returns a value uniformly drawn from [low, high).
func (u *Uniform) Sample(low, high float64) float64 {
	return low + (high-low)*u.r.Float64()
}
