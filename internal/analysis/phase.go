package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/pendulab/internal/dynamo"
)

// Point2 is one sample projected onto two state coordinates.
type Point2 struct{ X, Y float64 }

// Axis selects a state coordinate for a plane projection. Angle axes are
// wrapped into (-π, π] so a whirling link stays on a bounded plot.
type Axis struct {
	Index int
	Label string
	Angle bool
}

func (a Axis) value(x dynamo.State) float64 {
	v := x[a.Index]
	if a.Angle {
		return WrapAngle(v)
	}
	return v
}

// Trace is a set of points in the plane spanned by two axes.
type Trace struct {
	X, Y   Axis
	Points []Point2
}

// Bounds returns the extent of the points. Angle axes always span [-π, π].
func (tr *Trace) Bounds() (minX, maxX, minY, maxY float64) {
	minX, maxX = extent(tr.Points, tr.X.Angle, func(p Point2) float64 { return p.X })
	minY, maxY = extent(tr.Points, tr.Y.Angle, func(p Point2) float64 { return p.Y })
	return
}

func extent(pts []Point2, angle bool, get func(Point2) float64) (lo, hi float64) {
	if angle {
		return -math.Pi, math.Pi
	}
	if len(pts) == 0 {
		return -1, 1
	}
	lo, hi = get(pts[0]), get(pts[0])
	for _, p := range pts[1:] {
		lo = math.Min(lo, get(p))
		hi = math.Max(hi, get(p))
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

// WrapAngle maps a to the equivalent angle in (-π, π].
func WrapAngle(a float64) float64 {
	w := math.Mod(a+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}

func checkAxes(x0 dynamo.State, axes ...int) error {
	for _, i := range axes {
		if i < 0 || i >= len(x0) {
			return fmt.Errorf("axis %d for %d-dim state: %w", i, len(x0), dynamo.ErrDimensionMismatch)
		}
	}
	return nil
}

// PhasePortrait integrates from x0 and records every step projected onto
// the x and y axes.
func PhasePortrait(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	x, y Axis,
	dt, duration float64,
) (*Trace, error) {
	if err := checkAxes(x0, x.Index, y.Index); err != nil {
		return nil, err
	}

	steps := int(duration / dt)
	tr := &Trace{X: x, Y: y, Points: make([]Point2, 0, steps)}

	s := x0.Clone()
	for i := 0; i < steps; i++ {
		s = integ.Step(sys, s, float64(i)*dt, dt)
		tr.Points = append(tr.Points, Point2{X: x.value(s), Y: y.value(s)})
	}
	return tr, nil
}

// PoincareSection records x and y each time the cross coordinate passes
// upward through level, interpolated linearly to the crossing. An angle
// cross axis is compared modulo 2π, and the jump at ±π is not a crossing.
func PoincareSection(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	cross Axis,
	level float64,
	x, y Axis,
	dt, duration float64,
) (*Trace, error) {
	if err := checkAxes(x0, cross.Index, x.Index, y.Index); err != nil {
		return nil, err
	}

	tr := &Trace{X: x, Y: y}
	offset := func(s dynamo.State) float64 {
		d := s[cross.Index] - level
		if cross.Angle {
			d = WrapAngle(d)
		}
		return d
	}

	s := x0.Clone()
	steps := int(duration / dt)
	for i := 0; i < steps; i++ {
		prev := s
		s = integ.Step(sys, s, float64(i)*dt, dt)

		d0, d1 := offset(prev), offset(s)
		if d0 >= 0 || d1 < 0 || d1-d0 >= math.Pi {
			continue
		}
		frac := -d0 / (d1 - d0)
		tr.Points = append(tr.Points, Point2{
			X: lerp(x, prev, s, frac),
			Y: lerp(y, prev, s, frac),
		})
	}
	return tr, nil
}

func lerp(a Axis, prev, next dynamo.State, frac float64) float64 {
	v0, v1 := prev[a.Index], next[a.Index]
	v := v0 + frac*(v1-v0)
	if a.Angle {
		return WrapAngle(v)
	}
	return v
}
