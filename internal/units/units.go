// Package units holds the fixed physical parameter set for the argon model
// and the conversions between reduced (non-dimensional) and laboratory units.
//
// All engine quantities are expressed in reduced units: lengths in multiples
// of Sigma, energies in multiples of Epsilon, times in multiples of Tau.
package units

import "math"

const (
	// Sigma is the Lennard-Jones length scale for argon, in meters.
	Sigma = 3.405e-10

	// Epsilon is the Lennard-Jones well depth for argon, in joules.
	Epsilon = 1.6540172624e-21

	// Boltzmann is the Boltzmann constant, in J/K.
	Boltzmann = 1.3806488e-23

	// Avogadro is the Avogadro constant, in 1/mol.
	Avogadro = 6.022140857e+23

	// Hartree is the Hartree energy, in joules.
	Hartree = 4.35974465054e-18

	// AtmPerPascal converts pascals to standard atmospheres.
	AtmPerPascal = 9.86923266716013e-6

	// MolarMass is the molar mass of argon, in kg/mol.
	MolarMass = 0.039948

	// Dt is the integration timestep in reduced time units.
	Dt = 0.001

	// Cutoff is the pair-interaction cutoff radius in reduced length units.
	Cutoff = 2.5

	// Woodcock is the thermostat damping coefficient.
	Woodcock = 0.2
)

// BaseLattice is the FCC lattice constant at unit scale, in reduced length
// units (nearest-neighbor distance 2^(1/6)).
var BaseLattice = math.Pow(2.0, 2.0/3.0)

// Tau is the reduced time unit, in seconds.
var Tau = math.Sqrt(MolarMass / Avogadro * Sigma * Sigma / Epsilon)

// ToKelvin converts a reduced temperature to kelvin.
func ToKelvin(t float64) float64 { return t * Epsilon / Boltzmann }

// FromKelvin converts a temperature in kelvin to reduced units.
func FromKelvin(k float64) float64 { return k * Boltzmann / Epsilon }

// ToHartree converts a reduced energy to hartrees.
func ToHartree(e float64) float64 { return e * Epsilon / Hartree }

// ToPicoseconds converts a reduced time to picoseconds.
func ToPicoseconds(t float64) float64 { return Tau * t * 1e12 }

// ToNanometers converts a reduced length to nanometers.
func ToNanometers(l float64) float64 { return Sigma * l * 1e9 }
