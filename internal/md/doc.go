// Package md implements classical molecular dynamics for a periodic box of
// identical Lennard-Jones particles (argon).
//
// The engine works entirely in reduced units (see the units package) and
// advances a [System] one timestep at a time:
//
//   - pairwise force, potential energy and virial over periodic images
//     within a cutoff,
//   - a modified-Euler bootstrap step followed by Stoermer-Verlet, with a
//     Woodcock velocity-rescaling thermostat in the NVT ensemble,
//   - periodic re-imaging of particles that leave the primary cell.
//
// # Example
//
//	sys, _ := md.NewSystem(md.DefaultConfig(), rng.NewUniform(1))
//	for i := 0; i < 1000; i++ {
//		if err := sys.Step(); err != nil {
//			break
//		}
//	}
//	fmt.Println(sys.Temperature(), sys.Pressure())
//
// # Thread Safety
//
// System instances are NOT thread-safe. Parallelism lives inside Step:
// data-parallel loops over particles with a join barrier between phases.
package md
