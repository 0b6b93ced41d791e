package ensemble

import (
	"github.com/san-kum/pendulab/internal/metrics"
	"github.com/san-kum/pendulab/internal/pendulum"
)

const (
	// PixelsPerUnit scales link lengths to surface pixels.
	PixelsPerUnit = 100
	// AnchorX and AnchorY place the pivot of an unshifted pendulum.
	AnchorX = 200
	AnchorY = 200
)

// Polyline is the pivot followed by both joints, in surface pixels.
type Polyline [3]Vec2

// Renderer is the drawing surface the driver paints every frame.
type Renderer interface {
	Clear()
	Stroke(line Polyline)
}

// StatsSink is implemented by renderers that display the frame counters.
type StatsSink interface {
	ReportStats(st metrics.FrameStats)
}

// Project maps a pendulum to surface pixels using the fixed anchor and
// scale, shifted by its layout offset.
func Project(p pendulum.Params, s pendulum.State, off Vec2) Polyline {
	x1, y1, x2, y2 := pendulum.JointPositions(p, s)
	ax, ay := AnchorX+off.X, AnchorY+off.Y
	return Polyline{
		{X: ax, Y: ay},
		{X: ax + x1*PixelsPerUnit, Y: ay + y1*PixelsPerUnit},
		{X: ax + x2*PixelsPerUnit, Y: ay + y2*PixelsPerUnit},
	}
}

// Bounds returns the surface size needed to draw n pendulums of p laid out
// by l, including the full swing radius.
func Bounds(p pendulum.Params, l Layout, n int) Vec2 {
	reach := (p.L1 + p.L2) * PixelsPerUnit
	var maxOff Vec2
	if n > 0 {
		cols := l.Columns
		if cols < 1 {
			cols = 1
		}
		last := n - 1
		if last >= cols {
			maxOff.X = l.Offset(cols - 1).X
		} else {
			maxOff.X = l.Offset(last).X
		}
		maxOff.Y = l.Offset(last).Y
	}
	return Vec2{
		X: AnchorX + maxOff.X + reach,
		Y: AnchorY + maxOff.Y + reach,
	}
}

// Discard is a Renderer that draws nothing.
type Discard struct{}

func (Discard) Clear()          {}
func (Discard) Stroke(Polyline) {}
