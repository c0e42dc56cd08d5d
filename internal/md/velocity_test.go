package md

import (
	"math"
	"testing"
)

func TestVelocityNetMomentumZero(t *testing.T) {
	for _, cells := range []int{1, 2, 3} {
		sys := newTestSystem(t, cells, 1.0)

		if p := sys.Momentum(); p.Norm() > 1e-12 {
			t.Errorf("cells=%d: net momentum = %v, want zero", cells, p)
		}
	}
}

func TestVelocityThermalMagnitude(t *testing.T) {
	sys := newTestSystem(t, 2, 1.0)
	thermal := math.Sqrt(3.0 * sys.tGiven)

	// Momentum removal perturbs individual speeds by O(1/sqrt(N)); they
	// must stay near the thermal speed.
	for i, v := range sys.vel {
		speed := v.Norm()
		if speed < 0.5*thermal || speed > 1.5*thermal {
			t.Errorf("particle %d: speed %g far from thermal speed %g", i, speed, thermal)
		}
	}
}

func TestRandomDirectionUnitNorm(t *testing.T) {
	sys := &System{rng: &seqSampler{vals: []float64{0.3, -0.7, 0.1}}}

	v := sys.randomDirection()
	if math.Abs(v.Norm()-1.0) > 1e-12 {
		t.Errorf("direction norm = %g, want 1", v.Norm())
	}
}

func TestRandomDirectionResamplesDegenerateDraws(t *testing.T) {
	// The first draw is the zero vector and cannot be normalized; the
	// second draw lies outside the unit ball. Both must be rejected.
	sys := &System{rng: &seqSampler{vals: []float64{
		0.0, 0.0, 0.0,
		0.9, 0.9, 0.9,
		0.0, 0.6, -0.8,
	}}}

	v := sys.randomDirection()
	want := Vec3{X: 0.0, Y: 0.6, Z: -0.8}
	if v.Sub(want).Norm() > 1e-12 {
		t.Errorf("direction = %v, want %v", v, want)
	}
}
