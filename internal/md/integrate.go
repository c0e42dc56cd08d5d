package md

import (
	"math"

	"github.com/san-kum/argonmd/internal/units"
)

// minKineticTemperature is the floor below which the thermostat scale factor
// cannot be formed.
const minKineticTemperature = 1e-12

// moveAtoms advances positions and velocities by one timestep. The first
// step uses a second-order Euler bootstrap since Verlet needs a previous
// position; every later step uses Stoermer-Verlet, with Woodcock velocity
// rescaling folded into the position update when the ensemble is NVT.
//
// Kinetic energy, total energy and kinetic temperature are refreshed from
// the pre-update velocities before the move.
func (s *System) moveAtoms() error {
	uk := 0.0
	for i := 0; i < s.n; i++ {
		uk += s.vel[i].SquaredNorm()
	}
	uk *= 0.5

	s.uk = uk
	s.utot = uk + s.up
	s.tCalc = uk / (1.5 * float64(s.n))

	dt := units.Dt
	dt2 := dt * dt

	// The scale factor divides by the kinetic temperature; it is needed on
	// the bootstrap step and on every NVT step.
	scale := 1.0
	if s.step == 1 || s.ensemble == NVT {
		if s.tCalc < minKineticTemperature {
			return ErrColdSystem
		}
		scale = math.Sqrt((s.tGiven + units.Woodcock*(s.tCalc-s.tGiven)) / s.tCalc)
	}

	if s.step == 1 {
		parallelFor(s.n, s.workers, func(_, start, end int) {
			for n := start; n < end; n++ {
				s.prev[n] = s.pos[n]
				s.vel[n] = s.vel[n].Scale(scale)
				s.pos[n] = s.pos[n].
					Add(s.vel[n].Scale(dt)).
					Add(s.force[n].Scale(0.5 * dt2))
				s.vel[n] = s.vel[n].Add(s.force[n].Scale(dt))
			}
		})
		return nil
	}

	// Ensemble dispatch happens once per step, outside the particle loop.
	switch s.ensemble {
	case NVE:
		parallelFor(s.n, s.workers, func(_, start, end int) {
			for n := start; n < end; n++ {
				r := s.pos[n]
				s.pos[n] = r.Scale(2.0).Sub(s.prev[n]).Add(s.force[n].Scale(dt2))
				s.vel[n] = s.pos[n].Sub(s.prev[n]).Scale(0.5 / dt)
				s.prev[n] = r
			}
		})

	case NVT:
		parallelFor(s.n, s.workers, func(_, start, end int) {
			for n := start; n < end; n++ {
				r := s.pos[n]
				s.pos[n] = r.
					Add(r.Sub(s.prev[n]).Scale(scale)).
					Add(s.force[n].Scale(dt2))
				s.vel[n] = s.pos[n].Sub(s.prev[n]).Scale(0.5 / dt)
				s.prev[n] = r
			}
		})

	default:
		panic("md: unknown ensemble")
	}

	return nil
}

// wrap re-images every particle that left the primary cell, shifting the
// stored previous position by the same amount so the next Verlet
// displacement stays a true one-step displacement.
func (s *System) wrap() {
	l := s.boxLen
	parallelFor(s.n, s.workers, func(_, start, end int) {
		for n := start; n < end; n++ {
			wrapAxis(&s.pos[n].X, &s.prev[n].X, l)
			wrapAxis(&s.pos[n].Y, &s.prev[n].Y, l)
			wrapAxis(&s.pos[n].Z, &s.prev[n].Z, l)
		}
	})
}

func wrapAxis(x, x1 *float64, l float64) {
	if *x > l {
		*x -= l
		*x1 -= l
	} else if *x < 0.0 {
		*x += l
		*x1 += l
	}
}
