package md_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/argonmd/internal/md"
	"github.com/san-kum/argonmd/internal/rng"
	"github.com/san-kum/argonmd/internal/units"
)

// newSystem builds the reference 256-particle box with a single periodic
// image per axis, which is enough for the default cutoff and keeps the
// specs fast.
func newSystem(ensemble md.Ensemble) *md.System {
	sys, err := md.NewSystem(md.Config{
		Cells:       4,
		Scale:       1.0,
		Temperature: 50.0,
		Ensemble:    ensemble,
		Replicas:    1,
	}, rng.NewUniform(42))
	Expect(err).NotTo(HaveOccurred())
	return sys
}

var _ = Describe("System lifecycle", func() {
	Describe("construction", func() {
		It("places 4*Nc^3 particles", func() {
			Expect(newSystem(md.NVT).ParticleCount()).To(Equal(256))
		})

		It("centers the configuration on the origin", func() {
			sys := newSystem(md.NVT)

			var c md.Vec3
			for _, p := range sys.Positions() {
				c = c.Add(p)
			}
			c = c.Scale(1.0 / float64(sys.ParticleCount()))
			Expect(c.Norm()).To(BeNumerically("<", 1e-10))
		})

		It("removes the net momentum", func() {
			Expect(newSystem(md.NVT).Momentum().Norm()).To(BeNumerically("<", 1e-11))
		})

		It("starts at step 1 with zero elapsed time", func() {
			sys := newSystem(md.NVT)
			Expect(sys.StepIndex()).To(Equal(1))
			Expect(sys.ElapsedTime()).To(BeZero())
		})
	})

	Describe("stepping", func() {
		It("advances the step counter and the clock", func() {
			sys := newSystem(md.NVT)

			Expect(sys.Step()).To(Succeed())
			Expect(sys.StepIndex()).To(Equal(2))

			for i := 0; i < 9; i++ {
				Expect(sys.Step()).To(Succeed())
			}
			Expect(sys.ElapsedTime()).To(BeNumerically("~", 10*units.Dt, 1e-15))
			Expect(sys.ParticleCount()).To(Equal(256))
		})

		It("keeps the kinetic temperature physical under the thermostat", func() {
			sys := newSystem(md.NVT)

			for i := 0; i < 100; i++ {
				Expect(sys.Step()).To(Succeed())
			}

			Expect(sys.Temperature()).To(BeNumerically(">", 5.0))
			Expect(sys.Temperature()).To(BeNumerically("<", 200.0))
		})
	})

	Describe("NVE energy conservation", func() {
		It("keeps the total energy drift under 1 percent", func() {
			sys := newSystem(md.NVE)

			// The bootstrap step rescales velocities once; measure drift
			// from the first Verlet step onward.
			Expect(sys.Step()).To(Succeed())
			Expect(sys.Step()).To(Succeed())
			initial := sys.TotalEnergy()
			Expect(initial).NotTo(BeZero())

			for i := 0; i < 100; i++ {
				Expect(sys.Step()).To(Succeed())
			}

			drift := math.Abs(sys.TotalEnergy()-initial) / math.Abs(initial)
			Expect(drift).To(BeNumerically("<", 0.01))
		})
	})

	Describe("mutators", func() {
		It("reinitializes on SetCells", func() {
			sys := newSystem(md.NVT)
			Expect(sys.Step()).To(Succeed())

			Expect(sys.SetCells(3)).To(Succeed())
			Expect(sys.ParticleCount()).To(Equal(108))
			Expect(sys.StepIndex()).To(Equal(1))
			Expect(sys.ElapsedTime()).To(BeZero())
			Expect(sys.Momentum().Norm()).To(BeNumerically("<", 1e-11))
		})

		It("reinitializes on SetScale and rebuilds the box", func() {
			sys := newSystem(md.NVT)
			Expect(sys.Step()).To(Succeed())

			Expect(sys.SetScale(1.2)).To(Succeed())
			Expect(sys.StepIndex()).To(Equal(1))
			Expect(sys.LatticeConstant()).To(BeNumerically("~",
				units.ToNanometers(units.BaseLattice*1.2), 1e-12))
			Expect(sys.PeriodicLength()).To(BeNumerically("~",
				4*sys.LatticeConstant(), 1e-12))
		})

		It("reinitializes on SetEnsemble", func() {
			sys := newSystem(md.NVT)
			Expect(sys.Step()).To(Succeed())

			sys.SetEnsemble(md.NVE)
			Expect(sys.Ensemble()).To(Equal(md.NVE))
			Expect(sys.StepIndex()).To(Equal(1))
		})

		It("keeps the trajectory on SetTemperature", func() {
			sys := newSystem(md.NVT)
			Expect(sys.Step()).To(Succeed())

			Expect(sys.SetTemperature(100.0)).To(Succeed())
			Expect(sys.StepIndex()).To(Equal(2))
			Expect(sys.TargetTemperature()).To(BeNumerically("~", 100.0, 1e-9))
		})
	})
})
