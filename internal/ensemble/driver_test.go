package ensemble_test

import (
	"bytes"
	"context"
	"log"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulab/internal/ensemble"
	"github.com/san-kum/pendulab/internal/metrics"
	"github.com/san-kum/pendulab/internal/pendulum"
)

type recorder struct {
	clears  int
	strokes []ensemble.Polyline
	stats   []metrics.FrameStats
}

func (r *recorder) Clear() {
	r.clears++
	r.strokes = r.strokes[:0]
}

func (r *recorder) Stroke(line ensemble.Polyline) {
	r.strokes = append(r.strokes, line)
}

func (r *recorder) ReportStats(st metrics.FrameStats) {
	r.stats = append(r.stats, st)
}

var _ = Describe("Driver", func() {
	var (
		p    pendulum.Params
		coll *ensemble.Collection
		rec  *recorder
		drv  *ensemble.Driver
		t0   time.Time
	)

	BeforeEach(func() {
		p = pendulum.DefaultParams()
		coll = ensemble.New(p, ensemble.DefaultLayout(), 1)
		Expect(coll.Resize(10)).To(Succeed())
		rec = &recorder{}
		drv = ensemble.NewDriver(coll, rec)
		t0 = time.Unix(1000, 0)
		drv.Start(t0)
	})

	It("clears, ticks and strokes every pendulum each frame", func() {
		drv.Frame(t0.Add(10 * time.Millisecond))

		Expect(rec.clears).To(Equal(1))
		Expect(rec.strokes).To(HaveLen(10))
		want := ensemble.Project(p, pendulum.Step(p, pendulum.New()), coll.Offset(7))
		Expect(rec.strokes[7]).To(Equal(want))
	})

	It("applies a requested count only at the start of the next frame", func() {
		Expect(drv.SetCount(3)).To(Succeed())
		Expect(coll.Len()).To(Equal(10))
		Expect(drv.Count()).To(Equal(3))

		drv.Frame(t0.Add(10 * time.Millisecond))

		Expect(coll.Len()).To(Equal(3))
		Expect(rec.strokes).To(HaveLen(3))
		Expect(coll.State(0)).To(Equal(pendulum.Step(p, pendulum.New())))
	})

	It("keeps only the latest of several requests", func() {
		Expect(drv.SetCount(3)).To(Succeed())
		Expect(drv.SetCount(40)).To(Succeed())
		Expect(drv.SetCount(25)).To(Succeed())

		drv.Frame(t0.Add(10 * time.Millisecond))
		Expect(coll.Len()).To(Equal(25))

		drv.Frame(t0.Add(20 * time.Millisecond))
		Expect(coll.Len()).To(Equal(25))
		Expect(coll.Steps()).To(Equal(2))
	})

	It("rejects a negative count", func() {
		Expect(drv.SetCount(-5)).To(HaveOccurred())
		Expect(drv.Count()).To(Equal(10))
	})

	It("restarts all pendulums on reset", func() {
		for i := 1; i <= 5; i++ {
			drv.Frame(t0.Add(time.Duration(i) * 10 * time.Millisecond))
		}
		drv.Reset()
		drv.Frame(t0.Add(60 * time.Millisecond))

		Expect(coll.Len()).To(Equal(10))
		Expect(coll.Steps()).To(Equal(1))
		Expect(coll.State(4)).To(Equal(pendulum.Step(p, pendulum.New())))
	})

	It("reports counters on every 60th frame", func() {
		for i := 1; i <= 59; i++ {
			_, ok := drv.Frame(t0.Add(time.Duration(i) * 10 * time.Millisecond))
			Expect(ok).To(BeFalse())
		}
		Expect(rec.stats).To(BeEmpty())

		st, ok := drv.Frame(t0.Add(600 * time.Millisecond))
		Expect(ok).To(BeTrue())
		Expect(st.Frames).To(Equal(60))
		Expect(st.FPS).To(BeNumerically("~", 100, 1e-9))
		Expect(st.AvgFrame).To(Equal(10 * time.Millisecond))
		Expect(rec.stats).To(HaveLen(1))
		Expect(drv.Stats()).To(Equal(st))
	})

	It("logs resizes and counter reports when given a logger", func() {
		var buf bytes.Buffer
		drv = ensemble.NewDriver(coll, rec, ensemble.WithLogger(log.New(&buf, "", 0)))
		drv.Start(t0)
		Expect(drv.SetCount(2)).To(Succeed())

		for i := 1; i <= metrics.ReportEvery; i++ {
			drv.Frame(t0.Add(time.Duration(i) * time.Millisecond))
		}

		Expect(buf.String()).To(ContainSubstring("resized to 2 pendulums"))
		Expect(buf.String()).To(ContainSubstring("frames 60"))
	})

	It("draws nothing but still ticks with a nil renderer", func() {
		drv = ensemble.NewDriver(coll, nil)
		drv.Frame(t0)
		Expect(coll.Steps()).To(Equal(1))
	})

	Describe("Run", func() {
		It("stops after the frame budget", func() {
			drv = ensemble.NewDriver(coll, rec, ensemble.WithFPS(1000))
			Expect(drv.FPS()).To(Equal(1000))

			Expect(drv.Run(context.Background(), 5)).To(Succeed())
			Expect(coll.Steps()).To(Equal(5))
			Expect(rec.clears).To(Equal(5))
		})

		It("stops when the context is cancelled", func() {
			drv = ensemble.NewDriver(coll, rec, ensemble.WithFPS(1000))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Expect(drv.Run(ctx, 0)).To(MatchError(context.Canceled))
			Expect(coll.Steps()).To(Equal(0))
		})

		It("keeps the default rate for a non-positive fps", func() {
			drv = ensemble.NewDriver(coll, rec, ensemble.WithFPS(0))
			Expect(drv.FPS()).To(Equal(ensemble.DefaultFPS))
		})
	})
})
