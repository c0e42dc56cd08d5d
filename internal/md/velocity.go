package md

import "math"

// minDirectionNorm2 rejects degenerate direction draws before normalizing.
const minDirectionNorm2 = 1e-12

// initVelocities assigns every particle a velocity of thermal magnitude
// sqrt(3*T) in a random direction, then removes the net momentum so the
// center of mass is at rest.
func (s *System) initVelocities() {
	speed := math.Sqrt(3.0 * s.tGiven)

	for i := 0; i < s.n; i++ {
		s.vel[i] = s.randomDirection().Scale(speed)
	}

	var mean Vec3
	for i := 0; i < s.n; i++ {
		mean = mean.Add(s.vel[i])
	}
	mean = mean.Scale(1.0 / float64(s.n))

	for i := 0; i < s.n; i++ {
		s.vel[i] = s.vel[i].Sub(mean)
	}
}

// randomDirection draws a unit vector uniformly distributed on the sphere by
// rejection sampling the unit ball. Draws with a near-zero norm cannot be
// normalized and are rejected along with points outside the ball.
func (s *System) randomDirection() Vec3 {
	for {
		v := Vec3{
			X: s.rng.Sample(-1.0, 1.0),
			Y: s.rng.Sample(-1.0, 1.0),
			Z: s.rng.Sample(-1.0, 1.0),
		}
		n2 := v.SquaredNorm()
		if n2 < minDirectionNorm2 || n2 > 1.0 {
			continue
		}
		return v.Scale(1.0 / math.Sqrt(n2))
	}
}
