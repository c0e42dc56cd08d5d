package md

import "math"

// computeForces evaluates the Lennard-Jones force on every particle, summing
// over all pairs and all periodic images within the cutoff, and accumulates
// the global potential energy and virial.
//
// Each worker owns a contiguous slice of particle indexes and writes only to
// its own force slots; potential energy and virial are gathered in per-worker
// partial sums and combined after the join. The combination is a plain sum,
// so results are order-independent up to floating-point rounding.
func (s *System) computeForces() {
	for i := range s.force {
		s.force[i] = Vec3{}
	}

	partUp := make([]float64, s.workers)
	partVirial := make([]float64, s.workers)

	parallelFor(s.n, s.workers, func(w, start, end int) {
		var up, virial float64

		for n := start; n < end; n++ {
			f := Vec3{}
			for m := 0; m < s.n; m++ {
				for si, shift := range s.shifts {
					// No self-interaction in the home cell.
					if n == m && si == s.selfIdx {
						continue
					}

					d := s.pos[n].Sub(s.pos[m].Add(shift))
					r2 := d.SquaredNorm()
					if r2 > s.rc2 {
						continue
					}

					r := math.Sqrt(r2)
					rm6 := 1.0 / (r2 * r2 * r2)
					rm7 := rm6 / r
					rm12 := rm6 * rm6
					rm13 := rm12 / r

					fr := 48.0*rm13 - 24.0*rm7
					f = f.Add(d.Scale(fr / r))

					// Half weights offset the double counting from
					// iterating ordered pairs.
					up += 0.5 * (4.0*(rm12-rm6) - s.vrc)
					virial += 0.5 * r * fr
				}
			}
			s.force[n] = f
		}

		partUp[w] = up
		partVirial[w] = virial
	})

	s.up = 0.0
	s.virial = 0.0
	for w := 0; w < s.workers; w++ {
		s.up += partUp[w]
		s.virial += partVirial[w]
	}
}
