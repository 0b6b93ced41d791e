package pendulum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulab/internal/pendulum"
)

var _ = Describe("Derivatives", func() {
	var p pendulum.Params

	BeforeEach(func() {
		p = pendulum.DefaultParams()
	})

	It("keeps the denominator within [7, 16]", func() {
		for a := -10.0; a <= 10.0; a += 0.173 {
			for b := -10.0; b <= 10.0; b += 0.211 {
				d := pendulum.Denom(a, b)
				Expect(d).To(BeNumerically(">=", 7))
				Expect(d).To(BeNumerically("<=", 16))
			}
		}
		Expect(pendulum.Denom(1.2, 1.2)).To(BeNumerically("~", 7, 1e-12))
		Expect(pendulum.Denom(math.Pi/2, 0)).To(BeNumerically("~", 16, 1e-12))
	})

	DescribeTable("aligned links at rest",
		func(theta float64) {
			Expect(pendulum.DTheta1(p, 0, 0, theta, theta)).To(Equal(0.0))
			Expect(pendulum.DTheta2(p, 0, 0, theta, theta)).To(Equal(0.0))

			want1 := -(p.M1 + p.M2) * p.G * p.L1 * math.Sin(theta)
			want2 := -p.M2 * p.G * p.L2 * math.Sin(theta)
			Expect(pendulum.DP1(p, 0, 0, theta, theta)).To(BeNumerically("~", want1, 1e-12))
			Expect(pendulum.DP2(p, 0, 0, theta, theta)).To(BeNumerically("~", want2, 1e-12))
		},
		Entry("hanging", 0.0),
		Entry("tilted", 0.3),
		Entry("horizontal", math.Pi/2),
		Entry("negative", -2.1),
	)

	It("evaluates the coupling term at the given point, not a stored state", func() {
		p1, p2, th1, th2 := 0.7, -0.4, 1.1, -0.6
		w1 := pendulum.DTheta1(p, p1, p2, th1, th2)
		w2 := pendulum.DTheta2(p, p1, p2, th1, th2)
		want := -(p.M1+p.M2)*p.G*p.L1*math.Sin(th1) - w1*w2*math.Sin(th1-th2)
		Expect(pendulum.DP1(p, p1, p2, th1, th2)).To(BeNumerically("~", want, 1e-12))
	})

	It("matches the individual functions when memoised", func() {
		s := pendulum.State{Theta1: 0.9, Theta2: -1.7, P1: 1.3, P2: -0.25}
		d := pendulum.Derivs(p, s)
		Expect(d.Theta1).To(BeNumerically("~", pendulum.DTheta1(p, s.P1, s.P2, s.Theta1, s.Theta2), 1e-12))
		Expect(d.Theta2).To(BeNumerically("~", pendulum.DTheta2(p, s.P1, s.P2, s.Theta1, s.Theta2), 1e-12))
		Expect(d.P1).To(BeNumerically("~", pendulum.DP1(p, s.P1, s.P2, s.Theta1, s.Theta2), 1e-12))
		Expect(d.P2).To(BeNumerically("~", pendulum.DP2(p, s.P1, s.P2, s.Theta1, s.Theta2), 1e-12))
	})

	It("uses each link's own mass and length", func() {
		heavy := pendulum.Params{M1: 2, M2: 0.5, L1: 1.5, L2: 0.8, G: 9.81}
		s := pendulum.State{Theta1: 0.4, Theta2: 0.1, P1: 0.3, P2: 0.2}
		c := math.Cos(s.Theta1 - s.Theta2)
		den := 16 - 9*c*c
		Expect(pendulum.DTheta1(heavy, s.P1, s.P2, s.Theta1, s.Theta2)).
			To(BeNumerically("~", 6/(2*1.5*1.5)*(2*0.3-3*c*0.2)/den, 1e-12))
		Expect(pendulum.DTheta2(heavy, s.P1, s.P2, s.Theta1, s.Theta2)).
			To(BeNumerically("~", 6/(0.5*0.8*0.8)*(8*0.2-3*c*0.3)/den, 1e-12))
	})

	It("halves the coupling term in the hamiltonian variant", func() {
		h := p
		h.Variant = pendulum.Hamiltonian
		s := pendulum.State{Theta1: 0.9, Theta2: -0.2, P1: 0.8, P2: 0.5}
		ref := pendulum.Derivs(p, s)
		ham := pendulum.Derivs(h, s)

		Expect(ham.Theta1).To(BeNumerically("~", ref.Theta1, 1e-12))
		Expect(ham.Theta2).To(BeNumerically("~", ref.Theta2, 1e-12))

		gravity1 := -(p.M1 + p.M2) * p.G * p.L1 * math.Sin(s.Theta1)
		Expect(ham.P1 - gravity1).To(BeNumerically("~", (ref.P1-gravity1)/2, 1e-12))
	})
})

var _ = Describe("Params", func() {
	It("accepts the defaults", func() {
		Expect(pendulum.DefaultParams().Validate()).To(Succeed())
	})

	DescribeTable("rejects non-physical constants",
		func(mutate func(*pendulum.Params)) {
			p := pendulum.DefaultParams()
			mutate(&p)
			Expect(p.Validate()).To(HaveOccurred())
		},
		Entry("zero m1", func(p *pendulum.Params) { p.M1 = 0 }),
		Entry("negative m2", func(p *pendulum.Params) { p.M2 = -1 }),
		Entry("zero l1", func(p *pendulum.Params) { p.L1 = 0 }),
		Entry("NaN l2", func(p *pendulum.Params) { p.L2 = math.NaN() }),
		Entry("infinite g", func(p *pendulum.Params) { p.G = math.Inf(1) }),
		Entry("unknown variant", func(p *pendulum.Params) { p.Variant = 7 }),
	)

	It("parses variant names", func() {
		v, err := pendulum.ParseVariant("hamiltonian")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(pendulum.Hamiltonian))

		v, err = pendulum.ParseVariant("")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(pendulum.Reference))

		_, err = pendulum.ParseVariant("leapfrog")
		Expect(err).To(HaveOccurred())
	})
})
