package ensemble

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/san-kum/pendulab/internal/metrics"
	"github.com/san-kum/pendulab/internal/pendulum"
)

const DefaultFPS = 60

// Driver runs the frame loop over a Collection. Frame and Run must be called
// from a single goroutine; SetCount and Reset may be called from anywhere.
type Driver struct {
	coll     *Collection
	renderer Renderer
	fps      int
	logger   *log.Logger

	pending chan int
	target  atomic.Int64
	counter *metrics.FrameCounter
}

type Option func(*Driver)

// WithFPS sets the tick rate used by Run. Non-positive values keep the default.
func WithFPS(fps int) Option {
	return func(d *Driver) {
		if fps > 0 {
			d.fps = fps
		}
	}
}

// WithLogger logs resizes and every counter report to l.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

func NewDriver(coll *Collection, r Renderer, opts ...Option) *Driver {
	if r == nil {
		r = Discard{}
	}
	d := &Driver{
		coll:     coll,
		renderer: r,
		fps:      DefaultFPS,
		pending:  make(chan int, 1),
	}
	d.target.Store(int64(coll.Len()))
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Collection() *Collection { return d.coll }

func (d *Driver) FPS() int { return d.fps }

// Count is the most recently requested pendulum count, which may not have
// been applied yet.
func (d *Driver) Count() int { return int(d.target.Load()) }

// SetCount queues a resize to n pendulums. Only the latest request made
// before the next frame is applied.
func (d *Driver) SetCount(n int) error {
	if n < 0 {
		return fmt.Errorf("pendulum count must not be negative, got %d", n)
	}
	d.target.Store(int64(n))
	for {
		select {
		case d.pending <- n:
			return nil
		default:
		}
		select {
		case <-d.pending:
		default:
		}
	}
}

// Reset queues a resize to the current count, restarting every pendulum
// from the initial condition.
func (d *Driver) Reset() {
	_ = d.SetCount(d.Count())
}

// Start restarts the frame counters at now.
func (d *Driver) Start(now time.Time) {
	d.counter = metrics.NewFrameCounter(now)
}

// Stats returns the last reported frame counters.
func (d *Driver) Stats() metrics.FrameStats {
	if d.counter == nil {
		return metrics.FrameStats{}
	}
	return d.counter.Latest()
}

// Frame applies a pending resize, advances and draws every pendulum, and
// records the frame as finishing at now. The returned flag is true when the
// counters produced a new report.
func (d *Driver) Frame(now time.Time) (metrics.FrameStats, bool) {
	if d.counter == nil {
		d.Start(now)
	}

	select {
	case n := <-d.pending:
		if err := d.coll.Resize(n); err == nil && d.logger != nil {
			d.logger.Printf("resized to %d pendulums", n)
		}
	default:
	}

	d.renderer.Clear()
	d.coll.Tick()
	p := d.coll.Params()
	d.coll.Each(func(_ int, s pendulum.State, off Vec2) {
		d.renderer.Stroke(Project(p, s, off))
	})

	st, ok := d.counter.Frame(now)
	if ok {
		if sink, isSink := d.renderer.(StatsSink); isSink {
			sink.ReportStats(st)
		}
		if d.logger != nil {
			d.logger.Printf("%s  pendulums %d", st, d.coll.Len())
		}
	}
	return st, ok
}

// Run drives Frame from a ticker at the configured rate until ctx is done
// or, when frames is positive, that many frames have been drawn.
func (d *Driver) Run(ctx context.Context, frames int) error {
	ticker := time.NewTicker(time.Second / time.Duration(d.fps))
	defer ticker.Stop()

	d.Start(time.Now())
	for drawn := 0; frames <= 0 || drawn < frames; drawn++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			d.Frame(now)
		}
	}
	return nil
}
