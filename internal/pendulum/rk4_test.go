package pendulum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulab/internal/pendulum"
)

func maxDiff(a, b pendulum.State) float64 {
	return math.Max(
		math.Max(math.Abs(a.Theta1-b.Theta1), math.Abs(a.Theta2-b.Theta2)),
		math.Max(math.Abs(a.P1-b.P1), math.Abs(a.P2-b.P2)),
	)
}

var _ = Describe("RK4 stepper", func() {
	var p pendulum.Params

	BeforeEach(func() {
		p = pendulum.DefaultParams()
	})

	It("starts from the horizontal rest configuration", func() {
		s := pendulum.New()
		Expect(s.Theta1).To(Equal(math.Pi / 2))
		Expect(s.Theta2).To(Equal(math.Pi / 2))
		Expect(s.P1).To(Equal(0.0))
		Expect(s.P2).To(Equal(0.0))
	})

	It("reproduces the single-step regression fixture", func() {
		s := pendulum.Step(p, pendulum.New())

		Expect(s.Theta1).To(BeNumerically("~", 1.5703758981389788, 1e-12))
		Expect(s.Theta2).To(BeNumerically("~", 1.5699554698360576, 1e-12))
		Expect(s.P1).To(BeNumerically("~", -0.19620000805079418, 1e-12))
		Expect(s.P2).To(BeNumerically("~", -0.09809997894407557, 1e-12))
	})

	It("moves the momenta by about dt times the initial torque", func() {
		s := pendulum.Step(p, pendulum.New())

		Expect(s.P1).To(BeNumerically("~", -pendulum.DT*2*9.81, 1e-6))
		Expect(s.P2).To(BeNumerically("~", -pendulum.DT*9.81, 1e-6))
		Expect(s.Theta1).To(BeNumerically("~", math.Pi/2, 1e-3))
		Expect(s.Theta2).To(BeNumerically("~", math.Pi/2, 1e-3))
	})

	It("reproduces the 100-step regression fixture", func() {
		s := pendulum.StepN(p, pendulum.New(), 100)

		Expect(s.Theta1).To(BeNumerically("~", -1.5385022645585842, 1e-9))
		Expect(s.Theta2).To(BeNumerically("~", -1.4067323868872414, 1e-9))
		Expect(s.P1).To(BeNumerically("~", -2.2924398444927983, 1e-9))
		Expect(s.P2).To(BeNumerically("~", -1.1208637247883817, 1e-9))
	})

	It("does not modify its input", func() {
		s := pendulum.New()
		_ = pendulum.Advance(p, s, 0.05)
		Expect(s).To(Equal(pendulum.New()))
	})

	It("is deterministic", func() {
		a, b := pendulum.New(), pendulum.New()
		for i := 0; i < 1000; i++ {
			a = pendulum.Step(p, a)
			b = pendulum.Step(p, b)
			Expect(a).To(Equal(b))
		}
	})

	It("stays at rest at the stable equilibrium", func() {
		s := pendulum.StepN(p, pendulum.State{}, 500)
		Expect(s).To(Equal(pendulum.State{}))
	})

	It("converges at fourth order over one simulated second", func() {
		run := func(dt float64, n int) pendulum.State {
			s := pendulum.New()
			for i := 0; i < n; i++ {
				s = pendulum.Advance(p, s, dt)
			}
			return s
		}
		coarse := run(pendulum.DT, 100)
		half := run(pendulum.DT/2, 200)
		quarter := run(pendulum.DT/4, 400)

		e1, e2 := maxDiff(coarse, half), maxDiff(half, quarter)
		Expect(e1).To(BeNumerically("<", 1e-4))
		// halving dt divides the global error by 2^4
		Expect(e1 / e2).To(BeNumerically("~", 16, 4))
	})

	It("keeps energy drift below one percent in the hamiltonian variant", func() {
		p.Variant = pendulum.Hamiltonian
		s := pendulum.New()
		e0 := pendulum.Energy(p, s)
		scale := pendulum.EnergyScale(p)

		worst := 0.0
		for i := 0; i < 1000; i++ {
			s = pendulum.Step(p, s)
			worst = math.Max(worst, math.Abs(pendulum.Energy(p, s)-e0))
		}

		Expect(s.Theta1).NotTo(BeNumerically("~", math.Pi/2, 1e-3))
		Expect(worst / scale).To(BeNumerically("<", 0.01))
	})

	It("propagates non-finite input without panicking", func() {
		s := pendulum.State{Theta1: math.NaN(), Theta2: 0, P1: 0, P2: 0}
		out := pendulum.Step(p, s)
		Expect(math.IsNaN(out.Theta1) || math.IsNaN(out.P1)).To(BeTrue())
	})
})

var _ = Describe("Energy and geometry", func() {
	p := pendulum.DefaultParams()

	It("is purely potential at the initial condition", func() {
		Expect(pendulum.Energy(p, pendulum.New())).To(BeNumerically("~", 0, 1e-12))
	})

	It("is lowest hanging straight down", func() {
		Expect(pendulum.Energy(p, pendulum.State{})).To(BeNumerically("~", -3*9.81, 1e-12))
		Expect(pendulum.EnergyScale(p)).To(BeNumerically("~", 3*9.81, 1e-12))
	})

	It("places the joints below the pivot when hanging", func() {
		x1, y1, x2, y2 := pendulum.JointPositions(p, pendulum.State{})
		Expect(x1).To(Equal(0.0))
		Expect(y1).To(Equal(1.0))
		Expect(x2).To(Equal(0.0))
		Expect(y2).To(Equal(2.0))
	})

	It("places the joints to the side when horizontal", func() {
		x1, y1, x2, y2 := pendulum.JointPositions(p, pendulum.New())
		Expect(x1).To(BeNumerically("~", 1, 1e-12))
		Expect(y1).To(BeNumerically("~", 0, 1e-12))
		Expect(x2).To(BeNumerically("~", 2, 1e-12))
		Expect(y2).To(BeNumerically("~", 0, 1e-12))
	})
})

var _ = Describe("System adapter", func() {
	It("round-trips the vector ordering", func() {
		s := pendulum.State{Theta1: 1, Theta2: 2, P1: 3, P2: 4}
		Expect(s.Vector()).To(HaveLen(4))
		Expect(pendulum.FromVector(s.Vector())).To(Equal(s))
	})

	It("exposes derivatives and energy over vectors", func() {
		p := pendulum.DefaultParams()
		sys := pendulum.NewSystem(p)
		s := pendulum.State{Theta1: 0.3, Theta2: -0.4, P1: 0.2, P2: 0.1}

		Expect(sys.StateDim()).To(Equal(4))
		Expect(pendulum.FromVector(sys.Derive(s.Vector(), 0))).To(Equal(pendulum.Derivs(p, s)))
		Expect(sys.Energy(s.Vector())).To(Equal(pendulum.Energy(p, s)))
	})
})
