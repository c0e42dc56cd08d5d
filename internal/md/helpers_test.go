package md

import (
	"testing"

	"github.com/san-kum/argonmd/internal/rng"
)

// seqSampler replays a fixed sequence of draws, cycling at the end.
type seqSampler struct {
	vals []float64
	i    int
}

func (s *seqSampler) Sample(low, high float64) float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// makePair builds a two-particle system with particles on the x axis at
// separation r, at rest, in a box large enough that no image interactions
// reach within the cutoff.
func makePair(t *testing.T, r float64) *System {
	t.Helper()

	sys, err := NewSystem(Config{
		Cells:       1,
		Scale:       1.0,
		Temperature: 50.0,
		Ensemble:    NVE,
		Replicas:    0,
		Workers:     1,
	}, rng.NewUniform(1))
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}

	sys.n = 2
	sys.pos = []Vec3{{}, {X: r}}
	sys.prev = make([]Vec3, 2)
	sys.vel = make([]Vec3, 2)
	sys.force = make([]Vec3, 2)
	sys.boxLen = 100.0
	sys.buildShifts()

	return sys
}
