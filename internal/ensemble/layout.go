package ensemble

// Vec2 is a point or offset in surface pixels.
type Vec2 struct {
	X, Y float64
}

// Layout arranges pendulums in rows of Columns, Spacing pixels apart.
type Layout struct {
	Columns int
	Spacing float64
}

func DefaultLayout() Layout {
	return Layout{Columns: 10, Spacing: 5}
}

// Offset returns the drawing offset of the i-th pendulum.
func (l Layout) Offset(i int) Vec2 {
	cols := l.Columns
	if cols < 1 {
		cols = 1
	}
	return Vec2{
		X: float64(i%cols) * l.Spacing,
		Y: float64(i/cols) * l.Spacing,
	}
}

// Table builds the offsets of n pendulums.
func (l Layout) Table(n int) []Vec2 {
	t := make([]Vec2, n)
	for i := range t {
		t[i] = l.Offset(i)
	}
	return t
}
