package viz

import (
	"math"
	"strings"

	"github.com/san-kum/pendulab/internal/ensemble"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Surface pixels passed to Stroke are
// scaled uniformly so that the fitted bounds fill the sub-pixel grid.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	scale float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		scale:  1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Resize reallocates the grid to w x h cells, clearing it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	scale := c.scale
	*c = *NewCanvas(w, h)
	c.scale = scale
}

// Fit chooses the scale at which a surface of the given pixel size fills
// the canvas without distortion.
func (c *Canvas) Fit(bounds ensemble.Vec2) {
	if bounds.X <= 0 || bounds.Y <= 0 {
		c.scale = 1
		return
	}
	sx := float64(c.Width*2-1) / bounds.X
	sy := float64(c.Height*4-1) / bounds.Y
	c.scale = math.Min(sx, sy)
}

// Scale is the number of sub-pixels per surface pixel.
func (c *Canvas) Scale() float64 { return c.scale }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Stroke draws both links of one pendulum.
func (c *Canvas) Stroke(line ensemble.Polyline) {
	for i := 0; i+1 < len(line); i++ {
		x0, y0 := c.toSub(line[i])
		x1, y1 := c.toSub(line[i+1])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) toSub(p ensemble.Vec2) (int, int) {
	return int(math.Round(p.X * c.scale)), int(math.Round(p.Y * c.scale))
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
