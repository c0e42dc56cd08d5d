// Package analysis provides post-run structural analysis of particle
// configurations.
package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/argonmd/internal/md"
)

// RDF is a radial distribution function histogram.
type RDF struct {
	Centers []float64 // bin center radii, reduced units
	G       []float64 // g(r) per bin
}

// ComputeRDF builds g(r) from a configuration in a cubic periodic box of
// side boxLen, using the minimum-image convention. rMax must not exceed half
// the box length or images would be double counted.
func ComputeRDF(pos []md.Vec3, boxLen float64, bins int, rMax float64) (*RDF, error) {
	n := len(pos)
	if n < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 particles, got %d", n)
	}
	if bins < 1 {
		return nil, fmt.Errorf("analysis: need at least 1 bin, got %d", bins)
	}
	if rMax <= 0 || rMax > boxLen/2 {
		return nil, fmt.Errorf("analysis: rMax must be in (0, boxLen/2], got %g", rMax)
	}

	hist := make([]float64, bins)
	dr := rMax / float64(bins)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := pos[i].Sub(pos[j])
			d.X -= boxLen * math.Round(d.X/boxLen)
			d.Y -= boxLen * math.Round(d.Y/boxLen)
			d.Z -= boxLen * math.Round(d.Z/boxLen)

			r := d.Norm()
			if r < rMax {
				hist[int(r/dr)]++
			}
		}
	}

	volume := boxLen * boxLen * boxLen
	density := float64(n) / volume

	out := &RDF{
		Centers: make([]float64, bins),
		G:       make([]float64, bins),
	}

	for b := 0; b < bins; b++ {
		rLo := float64(b) * dr
		rHi := rLo + dr
		shell := 4.0 / 3.0 * math.Pi * (rHi*rHi*rHi - rLo*rLo*rLo)

		// Unordered pairs: each of the n particles sees density*shell
		// neighbors on average, halved to match the i<j loop.
		ideal := 0.5 * float64(n) * density * shell

		out.Centers[b] = rLo + 0.5*dr
		out.G[b] = hist[b] / ideal
	}

	return out, nil
}
