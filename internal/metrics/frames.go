package metrics

import (
	"fmt"
	"time"
)

// ReportEvery is the number of frames between two FrameStats reports.
const ReportEvery = 60

// FrameStats is a snapshot of the cumulative frame counters.
type FrameStats struct {
	Frames   int
	FPS      float64
	AvgFrame time.Duration
}

// AvgMillis is the average frame time in milliseconds.
func (s FrameStats) AvgMillis() float64 {
	return float64(s.AvgFrame) / float64(time.Millisecond)
}

func (s FrameStats) String() string {
	return fmt.Sprintf("fps %.2f  avg %.2f ms  frames %d", s.FPS, s.AvgMillis(), s.Frames)
}

// FrameCounter accumulates wall-clock time between frames. Counters are
// cumulative since construction or the last Reset, not windowed.
type FrameCounter struct {
	last   time.Time
	total  time.Duration
	frames int
	latest FrameStats
}

func NewFrameCounter(start time.Time) *FrameCounter {
	return &FrameCounter{last: start}
}

// Frame records a frame finishing at now. It returns the refreshed stats and
// true on every ReportEvery-th frame.
func (c *FrameCounter) Frame(now time.Time) (FrameStats, bool) {
	delta := now.Sub(c.last)
	c.last = now
	c.total += delta
	c.frames++

	if c.frames%ReportEvery != 0 {
		return c.latest, false
	}

	c.latest = c.snapshot()
	return c.latest, true
}

func (c *FrameCounter) snapshot() FrameStats {
	st := FrameStats{Frames: c.frames}
	if c.frames == 0 {
		return st
	}
	st.AvgFrame = c.total / time.Duration(c.frames)
	if c.total > 0 {
		st.FPS = float64(c.frames) / c.total.Seconds()
	}
	return st
}

// Latest returns the last reported stats.
func (c *FrameCounter) Latest() FrameStats { return c.latest }

func (c *FrameCounter) Frames() int { return c.frames }

func (c *FrameCounter) Reset(start time.Time) {
	*c = FrameCounter{last: start}
}
