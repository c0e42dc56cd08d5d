package md

// fccBasis holds the four basis positions of the FCC unit cell, in units of
// the lattice constant.
var fccBasis = [4]Vec3{
	{0.0, 0.0, 0.0},
	{0.5, 0.5, 0.0},
	{0.0, 0.5, 0.5},
	{0.5, 0.0, 0.5},
}

// initLattice tiles the FCC unit cell over cells^3 lattice sites and centers
// the resulting configuration on the origin.
func (s *System) initLattice() {
	n := 0
	for i := 0; i < s.cells; i++ {
		for j := 0; j < s.cells; j++ {
			for k := 0; k < s.cells; k++ {
				cell := Vec3{
					X: float64(i) * s.lat,
					Y: float64(j) * s.lat,
					Z: float64(k) * s.lat,
				}
				for _, b := range fccBasis {
					s.pos[n] = cell.Add(b.Scale(s.lat))
					n++
				}
			}
		}
	}
	s.n = n

	// Move the centroid to the origin.
	var c Vec3
	for i := 0; i < s.n; i++ {
		c = c.Add(s.pos[i])
	}
	c = c.Scale(1.0 / float64(s.n))

	for i := 0; i < s.n; i++ {
		s.pos[i] = s.pos[i].Sub(c)
	}
}
