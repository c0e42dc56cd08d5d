package md

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/argonmd/internal/units"
)

// freeFlightPair separates the particles beyond the cutoff and gives them
// opposite velocities of magnitude v, so forces vanish and the trajectories
// are analytic. With v = sqrt(3*Tg) the kinetic temperature equals the
// target and the thermostat scale factor is exactly 1.
func freeFlightPair(t *testing.T, e Ensemble) (*System, float64) {
	t.Helper()
	sys := makePair(t, 10.0)
	sys.ensemble = e

	v := math.Sqrt(3.0 * sys.tGiven)
	sys.vel[0] = Vec3{X: v}
	sys.vel[1] = Vec3{X: -v}
	return sys, v
}

func TestFreeFlight(t *testing.T) {
	for _, ens := range []Ensemble{NVE, NVT} {
		sys, v := freeFlightPair(t, ens)
		dt := units.Dt

		steps := 5
		for i := 0; i < steps; i++ {
			if err := sys.Step(); err != nil {
				t.Fatalf("%v step %d: %v", ens, i+1, err)
			}
		}

		wantX := float64(steps) * dt * v
		if math.Abs(sys.pos[0].X-wantX) > 1e-12 {
			t.Errorf("%v: pos[0].X = %g, want %g", ens, sys.pos[0].X, wantX)
		}
		if math.Abs(sys.vel[0].X-v) > 1e-12 {
			t.Errorf("%v: vel[0].X = %g, want %g", ens, sys.vel[0].X, v)
		}

		if sys.StepIndex() != steps+1 {
			t.Errorf("%v: step index = %d, want %d", ens, sys.StepIndex(), steps+1)
		}
		if math.Abs(sys.ElapsedTime()-float64(steps)*dt) > 1e-15 {
			t.Errorf("%v: elapsed = %g, want %g", ens, sys.ElapsedTime(), float64(steps)*dt)
		}
	}
}

func TestBootstrapSavesPreviousPosition(t *testing.T) {
	sys, _ := freeFlightPair(t, NVE)
	before := sys.pos[0]

	if err := sys.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if sys.prev[0] != before {
		t.Errorf("prev = %v, want pre-update position %v", sys.prev[0], before)
	}
}

func TestColdSystemError(t *testing.T) {
	sys := makePair(t, 1.5) // at rest: kinetic temperature is zero

	err := sys.Step()
	if err == nil {
		t.Fatal("expected error for zero kinetic temperature")
	}
	if !errors.Is(err, ErrColdSystem) {
		t.Errorf("error = %v, want ErrColdSystem", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("error %v is not a StepError", err)
	}
	if stepErr.Step != 1 {
		t.Errorf("StepError.Step = %d, want 1", stepErr.Step)
	}

	if sys.StepIndex() != 1 {
		t.Errorf("failed step advanced the counter to %d", sys.StepIndex())
	}
}

func TestNVESkipsThermostatWhenSteady(t *testing.T) {
	// Past the bootstrap, NVE never forms the scale factor, so a cold
	// system integrates without error.
	sys := makePair(t, 10.0)
	sys.ensemble = NVE
	sys.step = 2
	sys.prev[0] = sys.pos[0]
	sys.prev[1] = sys.pos[1]

	if err := sys.Step(); err != nil {
		t.Fatalf("steady NVE step on cold system: %v", err)
	}
}

func TestNVTRescalesTowardTarget(t *testing.T) {
	sys, v := freeFlightPair(t, NVT)

	// Start hotter than the target.
	hot := 2.0 * v
	sys.vel[0] = Vec3{X: hot}
	sys.vel[1] = Vec3{X: -hot}

	dt := units.Dt

	// Bootstrap: velocities scale by s1, then advance.
	tc1 := hot * hot / 3.0
	s1 := math.Sqrt((sys.tGiven + units.Woodcock*(tc1-sys.tGiven)) / tc1)
	v1 := s1 * hot

	if err := sys.Step(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if math.Abs(sys.vel[0].X-v1) > 1e-12 {
		t.Fatalf("after bootstrap vel = %g, want %g", sys.vel[0].X, v1)
	}

	// First Verlet step: displacement scales by s2, reported velocity is
	// the centered difference.
	tc2 := v1 * v1 / 3.0
	s2 := math.Sqrt((sys.tGiven + units.Woodcock*(tc2-sys.tGiven)) / tc2)
	v2 := 0.5 * (v1*dt + s2*v1*dt) / dt

	if err := sys.Step(); err != nil {
		t.Fatalf("verlet: %v", err)
	}
	if math.Abs(sys.vel[0].X-v2) > 1e-12 {
		t.Errorf("after verlet vel = %g, want %g", sys.vel[0].X, v2)
	}

	// The kinetic temperature moved toward the target.
	if math.Abs(v2) >= hot {
		t.Errorf("thermostat failed to cool: %g -> %g", hot, v2)
	}
}

func TestUnknownEnsemblePanics(t *testing.T) {
	sys, _ := freeFlightPair(t, Ensemble(42))
	sys.step = 2
	sys.prev[0] = sys.pos[0]
	sys.prev[1] = sys.pos[1]

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown ensemble")
		}
	}()
	_ = sys.moveAtoms()
}

func TestEnergyAccountingBeforeMove(t *testing.T) {
	sys, v := freeFlightPair(t, NVE)
	if err := sys.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	// uk = 0.5 * sum |v|^2 over the pre-move velocities.
	wantUk := v * v
	if math.Abs(sys.uk-wantUk) > 1e-12 {
		t.Errorf("uk = %g, want %g", sys.uk, wantUk)
	}
	if math.Abs(sys.utot-(sys.uk+sys.up)) > 1e-15 {
		t.Errorf("utot = %g, want uk+up = %g", sys.utot, sys.uk+sys.up)
	}
	wantTc := wantUk / (1.5 * 2.0)
	if math.Abs(sys.tCalc-wantTc) > 1e-12 {
		t.Errorf("tCalc = %g, want %g", sys.tCalc, wantTc)
	}
}
