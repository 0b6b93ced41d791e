package ensemble_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulab/internal/ensemble"
	"github.com/san-kum/pendulab/internal/pendulum"
)

var _ = Describe("Layout", func() {
	It("places pendulums in rows of ten, five pixels apart", func() {
		l := ensemble.DefaultLayout()

		Expect(l.Offset(0)).To(Equal(ensemble.Vec2{X: 0, Y: 0}))
		Expect(l.Offset(3)).To(Equal(ensemble.Vec2{X: 15, Y: 0}))
		Expect(l.Offset(9)).To(Equal(ensemble.Vec2{X: 45, Y: 0}))
		Expect(l.Offset(10)).To(Equal(ensemble.Vec2{X: 0, Y: 5}))
		Expect(l.Offset(23)).To(Equal(ensemble.Vec2{X: 15, Y: 10}))
	})

	It("treats a non-positive column count as a single column", func() {
		l := ensemble.Layout{Columns: 0, Spacing: 2}
		Expect(l.Offset(4)).To(Equal(ensemble.Vec2{X: 0, Y: 8}))
	})
})

var _ = Describe("Collection", func() {
	var (
		p    pendulum.Params
		coll *ensemble.Collection
	)

	BeforeEach(func() {
		p = pendulum.DefaultParams()
		coll = ensemble.New(p, ensemble.DefaultLayout(), 1)
		Expect(coll.Resize(10)).To(Succeed())
	})

	It("starts every pendulum at the initial condition", func() {
		Expect(coll.Len()).To(Equal(10))
		for i := 0; i < coll.Len(); i++ {
			Expect(coll.State(i)).To(Equal(pendulum.New()))
		}
	})

	It("advances each pendulum exactly like Step", func() {
		coll.Tick()
		coll.Tick()

		want := pendulum.Step(p, pendulum.Step(p, pendulum.New()))
		for i := 0; i < coll.Len(); i++ {
			Expect(coll.State(i)).To(Equal(want))
		}
		Expect(coll.Steps()).To(Equal(2))
		Expect(coll.Time()).To(BeNumerically("~", 0.02, 1e-15))
	})

	DescribeTable("resize discards all state and rebuilds offsets",
		func(n int) {
			for i := 0; i < 5; i++ {
				coll.Tick()
			}
			Expect(coll.Resize(n)).To(Succeed())

			Expect(coll.Len()).To(Equal(n))
			Expect(coll.Steps()).To(Equal(0))
			for i := 0; i < n; i++ {
				Expect(coll.State(i)).To(Equal(pendulum.New()))
				Expect(coll.Offset(i)).To(Equal(ensemble.DefaultLayout().Offset(i)))
			}
		},
		Entry("shrinking", 3),
		Entry("growing", 25),
		Entry("same size", 10),
		Entry("to empty", 0),
	)

	It("resets everything when going from three to twenty-five", func() {
		Expect(coll.Resize(3)).To(Succeed())
		for i := 0; i < 7; i++ {
			coll.Tick()
		}
		Expect(coll.State(0)).NotTo(Equal(pendulum.New()))

		Expect(coll.Resize(25)).To(Succeed())
		Expect(coll.Len()).To(Equal(25))
		Expect(coll.Steps()).To(Equal(0))
		for i := 0; i < 25; i++ {
			Expect(coll.State(i)).To(Equal(pendulum.New()))
			Expect(coll.Offset(i)).To(Equal(ensemble.DefaultLayout().Offset(i)))
		}
		Expect(coll.Offset(24)).To(Equal(ensemble.Vec2{X: 20, Y: 10}))
	})

	It("rejects a negative count and keeps the current pendulums", func() {
		Expect(coll.Resize(-1)).To(HaveOccurred())
		Expect(coll.Len()).To(Equal(10))
	})

	It("gives identical results when ticking across workers", func() {
		seq := ensemble.New(p, ensemble.DefaultLayout(), 1)
		par := ensemble.New(p, ensemble.DefaultLayout(), 4)
		Expect(seq.Resize(1000)).To(Succeed())
		Expect(par.Resize(1000)).To(Succeed())

		for i := 0; i < 20; i++ {
			seq.Tick()
			par.Tick()
		}
		for i := 0; i < 1000; i++ {
			Expect(par.State(i)).To(Equal(seq.State(i)))
		}
	})

	It("visits pendulums in index order with their offsets", func() {
		var seen []int
		coll.Each(func(i int, s pendulum.State, off ensemble.Vec2) {
			seen = append(seen, i)
			Expect(off).To(Equal(coll.Offset(i)))
		})
		Expect(seen).To(HaveLen(10))
		Expect(seen[0]).To(Equal(0))
		Expect(seen[9]).To(Equal(9))
	})
})

var _ = Describe("Project", func() {
	It("maps the initial condition to a horizontal line from the anchor", func() {
		line := ensemble.Project(pendulum.DefaultParams(), pendulum.New(), ensemble.Vec2{})

		Expect(line[0]).To(Equal(ensemble.Vec2{X: 200, Y: 200}))
		Expect(line[1].X).To(BeNumerically("~", 300, 1e-9))
		Expect(line[1].Y).To(BeNumerically("~", 200, 1e-9))
		Expect(line[2].X).To(BeNumerically("~", 400, 1e-9))
		Expect(line[2].Y).To(BeNumerically("~", 200, 1e-9))
	})

	It("shifts every point by the layout offset", func() {
		p := pendulum.DefaultParams()
		s := pendulum.State{Theta1: 0, Theta2: 0}
		line := ensemble.Project(p, s, ensemble.Vec2{X: 15, Y: 10})

		Expect(line[0]).To(Equal(ensemble.Vec2{X: 215, Y: 210}))
		Expect(line[1]).To(Equal(ensemble.Vec2{X: 215, Y: 310}))
		Expect(line[2]).To(Equal(ensemble.Vec2{X: 215, Y: 410}))
	})

	It("sizes the surface to hold the whole grid", func() {
		b := ensemble.Bounds(pendulum.DefaultParams(), ensemble.DefaultLayout(), 25)
		Expect(b).To(Equal(ensemble.Vec2{X: 200 + 45 + 200, Y: 200 + 10 + 200}))
	})
})
