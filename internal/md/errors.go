package md

import (
	"errors"
	"fmt"
)

// Domain errors for the simulation engine.
var (
	// ErrColdSystem indicates the kinetic temperature is too close to zero
	// for the thermostat scale factor to be formed.
	ErrColdSystem = errors.New("md: kinetic temperature too low for thermostat scaling")

	// ErrInvalidCells indicates a non-positive cells-per-side value.
	ErrInvalidCells = errors.New("md: cells per side must be at least 1")

	// ErrInvalidScale indicates a non-positive lattice scale.
	ErrInvalidScale = errors.New("md: lattice scale must be positive")

	// ErrInvalidTemperature indicates a non-positive target temperature.
	ErrInvalidTemperature = errors.New("md: target temperature must be positive")

	// ErrInvalidCutoff indicates a non-positive cutoff radius.
	ErrInvalidCutoff = errors.New("md: cutoff radius must be positive")

	// ErrInvalidReplicas indicates a negative periodic replica range.
	ErrInvalidReplicas = errors.New("md: replica range must be non-negative")

	// ErrNilSampler indicates no random source was injected.
	ErrNilSampler = errors.New("md: nil random sampler")
)

// StepError wraps an error with the step context it occurred in.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
