// Package export writes ensemble frames as standalone SVG documents.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/pendulab/internal/ensemble"
)

// SVG is an ensemble renderer that keeps the latest frame plus the path
// traced by the tip of the first pendulum across all frames.
type SVG struct {
	Width, Height float64
	Background    string
	LinkColor     string
	TrailColor    string

	lines []ensemble.Polyline
	trail []ensemble.Vec2
	fresh bool
}

func NewSVG(bounds ensemble.Vec2) *SVG {
	return &SVG{
		Width:      bounds.X,
		Height:     bounds.Y,
		Background: "#0a0a0a",
		LinkColor:  "#78c8ff",
		TrailColor: "#ff00ff",
	}
}

func (s *SVG) Clear() {
	s.lines = s.lines[:0]
	s.fresh = true
}

func (s *SVG) Stroke(line ensemble.Polyline) {
	if s.fresh {
		s.trail = append(s.trail, line[len(line)-1])
		s.fresh = false
	}
	s.lines = append(s.lines, line)
}

// Lines returns the polylines of the latest frame.
func (s *SVG) Lines() []ensemble.Polyline { return s.lines }

// Trail returns the tip positions of the first pendulum, one per frame.
func (s *SVG) Trail() []ensemble.Vec2 { return s.trail }

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	fmt.Fprintf(cw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background)

	if len(s.trail) > 1 {
		fmt.Fprintf(cw, `<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.6" d="M`, s.TrailColor)
		for i, p := range s.trail {
			if i == 0 {
				fmt.Fprintf(cw, "%.1f,%.1f", p.X, p.Y)
			} else {
				fmt.Fprintf(cw, " L%.1f,%.1f", p.X, p.Y)
			}
		}
		fmt.Fprint(cw, "\"/>\n")
	}

	fmt.Fprintf(cw, "<g fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\">\n", s.LinkColor)
	for _, line := range s.lines {
		fmt.Fprint(cw, `<polyline points="`)
		for i, p := range line {
			if i > 0 {
				fmt.Fprint(cw, " ")
			}
			fmt.Fprintf(cw, "%.1f,%.1f", p.X, p.Y)
		}
		fmt.Fprint(cw, "\"/>\n")
	}
	fmt.Fprint(cw, "</g>\n</svg>\n")

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// countingWriter remembers the first write error so the document can be
// emitted without checking every Fprintf.
type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
