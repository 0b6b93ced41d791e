package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/pendulab/internal/analysis"
)

// PlotTrace draws a phase-plane trace as braille dots on a width x height
// cell canvas, with the axis ranges and labels underneath.
func PlotTrace(tr *analysis.Trace, width, height int) string {
	if tr == nil || len(tr.Points) == 0 {
		return "no points\n"
	}

	c := NewCanvas(width, height)
	minX, maxX, minY, maxY := tr.Bounds()
	sw, sh := float64(c.Width*2-1), float64(c.Height*4-1)
	toSub := func(x, y float64) (int, int) {
		px := (x - minX) / (maxX - minX) * sw
		py := (maxY - y) / (maxY - minY) * sh
		return int(math.Round(px)), int(math.Round(py))
	}

	// zero lines first, dimmer by being sparse
	if minY < 0 && maxY > 0 {
		_, row := toSub(0, 0)
		for x := 0; x <= int(sw); x += 4 {
			c.Set(x, row)
		}
	}
	if minX < 0 && maxX > 0 {
		col, _ := toSub(0, 0)
		for y := 0; y <= int(sh); y += 4 {
			c.Set(col, y)
		}
	}

	for _, p := range tr.Points {
		c.Set(toSub(p.X, p.Y))
	}

	var b strings.Builder
	b.WriteString(c.String())
	fmt.Fprintf(&b, "%s [%.2f, %.2f]  %s [%.2f, %.2f]\n",
		axisName(tr.X, "x"), minX, maxX, axisName(tr.Y, "y"), minY, maxY)
	return b.String()
}

func axisName(a analysis.Axis, fallback string) string {
	if a.Label != "" {
		return a.Label
	}
	return fallback
}
