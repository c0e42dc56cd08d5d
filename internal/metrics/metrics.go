// Package metrics defines observable samples and running metrics computed
// over a simulation run.
package metrics

import "math"

// Sample is one observation of the system, in physical units.
type Sample struct {
	Time        float64 `json:"time_ps"`        // picoseconds
	Temperature float64 `json:"temperature_k"`  // kelvin
	Kinetic     float64 `json:"kinetic_ha"`     // hartree
	Potential   float64 `json:"potential_ha"`   // hartree
	Total       float64 `json:"total_ha"`       // hartree
	Pressure    float64 `json:"pressure_atm"`   // atm
	Momentum    float64 `json:"momentum"`       // reduced, magnitude
}

// Metric accumulates a scalar over observed samples.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// TemperatureMean tracks the mean kinetic temperature.
type TemperatureMean struct {
	sum     float64
	samples int
}

func NewTemperatureMean() *TemperatureMean { return &TemperatureMean{} }

func (m *TemperatureMean) Name() string { return "temperature_mean" }

func (m *TemperatureMean) Observe(s Sample) {
	m.sum += s.Temperature
	m.samples++
}

func (m *TemperatureMean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *TemperatureMean) Reset() {
	m.sum = 0
	m.samples = 0
}

// PressureMean tracks the mean instantaneous pressure.
type PressureMean struct {
	sum     float64
	samples int
}

func NewPressureMean() *PressureMean { return &PressureMean{} }

func (m *PressureMean) Name() string { return "pressure_mean" }

func (m *PressureMean) Observe(s Sample) {
	m.sum += s.Pressure
	m.samples++
}

func (m *PressureMean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *PressureMean) Reset() {
	m.sum = 0
	m.samples = 0
}

// EnergyDrift tracks the maximum relative drift of the total energy from the
// first observed sample. Useful as a conservation check in NVE runs.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) Observe(s Sample) {
	if m.samples == 0 {
		m.initial = s.Total
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(s.Total-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *EnergyDrift) Value() float64 { return m.maxDrift }

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// MomentumDrift tracks the largest observed net-momentum magnitude. The
// initializer zeroes the center-of-mass momentum; integration keeps it small
// but not exactly zero.
type MomentumDrift struct {
	max float64
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(s Sample) {
	m.max = math.Max(m.max, s.Momentum)
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() { m.max = 0 }
