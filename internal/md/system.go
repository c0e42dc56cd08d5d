package md

import (
	"fmt"
	"math"
	"runtime"

	"github.com/san-kum/argonmd/internal/units"
)

// Ensemble selects the statistical ensemble the integrator targets.
type Ensemble int

const (
	// NVE holds particle number, volume and total energy fixed.
	NVE Ensemble = iota
	// NVT holds particle number, volume and temperature fixed via
	// Woodcock velocity rescaling.
	NVT
)

func (e Ensemble) String() string {
	switch e {
	case NVE:
		return "nve"
	case NVT:
		return "nvt"
	default:
		return fmt.Sprintf("ensemble(%d)", int(e))
	}
}

// ParseEnsemble converts a config string into an Ensemble value.
func ParseEnsemble(s string) (Ensemble, error) {
	switch s {
	case "nve", "NVE":
		return NVE, nil
	case "nvt", "NVT":
		return NVT, nil
	default:
		return 0, fmt.Errorf("md: unknown ensemble %q", s)
	}
}

// Sampler is the injected uniform random capability used for velocity
// initialization. Implementations return values uniformly drawn from
// [low, high).
type Sampler interface {
	Sample(low, high float64) float64
}

// Config holds construction parameters for a System.
type Config struct {
	Cells       int     // unit cells per box side
	Scale       float64 // multiplier on the base lattice constant
	Temperature float64 // target temperature in kelvin
	Ensemble    Ensemble
	Replicas    int     // periodic image range per axis
	Cutoff      float64 // pair cutoff in reduced units; 0 selects the default
	Workers     int     // parallel workers; 0 selects runtime.NumCPU()
}

// DefaultConfig returns the reference parameter set: a 4x4x4 cell box of 256
// atoms at 50 K in the NVT ensemble.
func DefaultConfig() Config {
	return Config{
		Cells:       4,
		Scale:       1.0,
		Temperature: 50.0,
		Ensemble:    NVT,
		Replicas:    3,
	}
}

// System owns the full simulation state: per-particle arrays, box geometry,
// accumulated observables and the step counter. It is mutated in place by
// Step and the setters; it is not safe for concurrent use.
type System struct {
	cells  int
	scale  float64
	lat    float64 // lattice constant, reduced
	boxLen float64 // periodic box length, reduced
	n      int

	pos   []Vec3
	prev  []Vec3
	vel   []Vec3
	force []Vec3

	ensemble Ensemble
	tGiven   float64 // target temperature, reduced
	tCalc    float64 // kinetic temperature, reduced

	uk     float64 // kinetic energy, reduced
	up     float64 // potential energy, reduced
	utot   float64
	virial float64

	step int     // next step to take; 1 selects the Euler bootstrap
	time float64 // elapsed time, reduced

	rc       float64
	rc2      float64
	vrc      float64 // potential shift so V(rc) == 0
	replicas int
	shifts   []Vec3 // precomputed image offsets
	selfIdx  int    // index of the zero shift within shifts

	workers int
	rng     Sampler
}

// NewSystem builds a System from cfg, places the FCC lattice and assigns
// thermal velocities from rng.
func NewSystem(cfg Config, rng Sampler) (*System, error) {
	if cfg.Cells < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCells, cfg.Cells)
	}
	if cfg.Scale <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidScale, cfg.Scale)
	}
	if cfg.Temperature <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidTemperature, cfg.Temperature)
	}
	if cfg.Cutoff < 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidCutoff, cfg.Cutoff)
	}
	if cfg.Replicas < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidReplicas, cfg.Replicas)
	}
	if rng == nil {
		return nil, ErrNilSampler
	}

	rc := cfg.Cutoff
	if rc == 0 {
		rc = units.Cutoff
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	rcm6 := math.Pow(rc, -6.0)
	rcm12 := rcm6 * rcm6

	s := &System{
		cells:    cfg.Cells,
		scale:    cfg.Scale,
		ensemble: cfg.Ensemble,
		tGiven:   units.FromKelvin(cfg.Temperature),
		rc:       rc,
		rc2:      rc * rc,
		vrc:      4.0 * (rcm12 - rcm6),
		replicas: cfg.Replicas,
		workers:  workers,
		rng:      rng,
	}

	s.resize()
	s.modLattice()
	return s, nil
}

// resize reallocates the per-particle arrays for the current cell count.
func (s *System) resize() {
	n := 4 * s.cells * s.cells * s.cells
	s.n = n
	s.pos = make([]Vec3, n)
	s.prev = make([]Vec3, n)
	s.vel = make([]Vec3, n)
	s.force = make([]Vec3, n)
}

// modLattice recomputes the lattice constant and box length and
// reinitializes positions and velocities.
func (s *System) modLattice() {
	s.lat = units.BaseLattice * s.scale
	s.recalc()
	s.boxLen = s.lat * float64(s.cells)
	s.buildShifts()
}

// recalc resets the step counter and clock and re-runs the lattice and
// velocity initializers.
func (s *System) recalc() {
	s.time = 0.0
	s.step = 1
	s.initLattice()
	s.initVelocities()
}

func (s *System) buildShifts() {
	ncp := s.replicas
	s.shifts = s.shifts[:0]
	for i := -ncp; i <= ncp; i++ {
		for j := -ncp; j <= ncp; j++ {
			for k := -ncp; k <= ncp; k++ {
				if i == 0 && j == 0 && k == 0 {
					s.selfIdx = len(s.shifts)
				}
				s.shifts = append(s.shifts, Vec3{
					X: float64(i) * s.boxLen,
					Y: float64(j) * s.boxLen,
					Z: float64(k) * s.boxLen,
				})
			}
		}
	}
}

// Step advances the simulation by one timestep: force evaluation, position
// update with embedded thermostat, then periodic re-imaging. The three
// phases are strictly ordered.
func (s *System) Step() error {
	s.computeForces()

	if err := s.moveAtoms(); err != nil {
		return &StepError{Step: s.step, Time: s.time, Wrapped: err}
	}

	s.wrap()

	s.time = float64(s.step) * units.Dt
	s.step++
	return nil
}

// SetCells changes the number of unit cells per side and reinitializes the
// whole system.
func (s *System) SetCells(cells int) error {
	if cells < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCells, cells)
	}
	s.cells = cells
	s.resize()
	s.modLattice()
	return nil
}

// SetScale changes the lattice scale and reinitializes the whole system.
func (s *System) SetScale(scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidScale, scale)
	}
	s.scale = scale
	s.modLattice()
	return nil
}

// SetTemperature changes the thermostat target, given in kelvin. The
// running state is kept; only subsequent velocity rescaling is affected.
func (s *System) SetTemperature(kelvin float64) error {
	if kelvin <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidTemperature, kelvin)
	}
	s.tGiven = units.FromKelvin(kelvin)
	return nil
}

// SetEnsemble switches the ensemble and reinitializes the whole system.
func (s *System) SetEnsemble(e Ensemble) {
	s.ensemble = e
	s.recalc()
}

// Observables. Quantities are converted from reduced units at the accessor
// boundary; everything internal stays non-dimensional.

func (s *System) ParticleCount() int { return s.n }

func (s *System) Cells() int { return s.cells }

func (s *System) Scale() float64 { return s.scale }

func (s *System) Ensemble() Ensemble { return s.ensemble }

// StepIndex returns the index of the next step to take, starting at 1.
func (s *System) StepIndex() int { return s.step }

// ElapsedTime returns the elapsed simulation time in reduced units.
func (s *System) ElapsedTime() float64 { return s.time }

// ElapsedPicoseconds returns the elapsed simulation time in picoseconds.
func (s *System) ElapsedPicoseconds() float64 { return units.ToPicoseconds(s.time) }

// Temperature returns the instantaneous kinetic temperature in kelvin.
func (s *System) Temperature() float64 { return units.ToKelvin(s.tCalc) }

// TargetTemperature returns the thermostat target in kelvin.
func (s *System) TargetTemperature() float64 { return units.ToKelvin(s.tGiven) }

// KineticEnergy returns the kinetic energy in hartrees.
func (s *System) KineticEnergy() float64 { return units.ToHartree(s.uk) }

// PotentialEnergy returns the potential energy in hartrees.
func (s *System) PotentialEnergy() float64 { return units.ToHartree(s.up) }

// TotalEnergy returns the total energy in hartrees.
func (s *System) TotalEnergy() float64 { return units.ToHartree(s.utot) }

// Pressure returns the instantaneous pressure in atmospheres, from the
// virial accumulated during the last force evaluation.
func (s *System) Pressure() float64 {
	v := math.Pow(units.Sigma*s.boxLen, 3)
	ideal := float64(s.n) * units.Epsilon * s.tCalc
	return (ideal - s.virial*units.Epsilon/3.0) / v * units.AtmPerPascal
}

// LatticeConstant returns the lattice constant in nanometers.
func (s *System) LatticeConstant() float64 { return units.ToNanometers(s.lat) }

// PeriodicLength returns the box side length in nanometers.
func (s *System) PeriodicLength() float64 { return units.ToNanometers(s.boxLen) }

// BoxLength returns the box side length in reduced units.
func (s *System) BoxLength() float64 { return s.boxLen }

// ForceMagnitude returns the magnitude of the force on particle i.
func (s *System) ForceMagnitude(i int) float64 { return s.force[i].Norm() }

// Positions returns a copy of the current particle positions.
func (s *System) Positions() []Vec3 {
	out := make([]Vec3, s.n)
	copy(out, s.pos)
	return out
}

// Velocities returns a copy of the current particle velocities.
func (s *System) Velocities() []Vec3 {
	out := make([]Vec3, s.n)
	copy(out, s.vel)
	return out
}

// Momentum returns the total momentum vector in reduced units.
func (s *System) Momentum() Vec3 {
	var p Vec3
	for i := range s.vel {
		p = p.Add(s.vel[i])
	}
	return p
}
