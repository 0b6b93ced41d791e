package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/pendulab/internal/ensemble"
	"github.com/san-kum/pendulab/internal/metrics"
	"github.com/san-kum/pendulab/internal/pendulum"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColLink    = rl.NewColor(120, 200, 255, 160)
)

const (
	screenW      = 1280
	screenH      = 720
	hudWidth     = 300
	maxTelemetry = 300
)

// Options configures the window.
type Options struct {
	Title    string
	MaxCount int
}

// Window is an ensemble renderer backed by a raylib window. Stroke only
// buffers polylines; they are drawn when the frame is presented.
type Window struct {
	drv  *ensemble.Driver
	opts Options

	lines     []ensemble.Polyline
	stats     string
	font      rl.Font
	running   bool
	telemetry []float64
}

// New creates the window renderer. Attach it to a driver with Bind before Run.
func New(opts Options) *Window {
	if opts.Title == "" {
		opts.Title = "pendulab"
	}
	return &Window{
		opts:      opts,
		running:   true,
		stats:     "fps --  avg -- ms",
		telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Bind attaches the driver that paints onto w.
func (w *Window) Bind(drv *ensemble.Driver) { w.drv = drv }

func (w *Window) Clear() { w.lines = w.lines[:0] }

func (w *Window) Stroke(line ensemble.Polyline) { w.lines = append(w.lines, line) }

func (w *Window) ReportStats(st metrics.FrameStats) {
	w.stats = fmt.Sprintf("fps %.2f  avg %.2f ms", st.FPS, st.AvgMillis())
}

// Run opens the window and blocks until it is closed or Q is pressed.
func (w *Window) Run() {
	rl.InitWindow(screenW, screenH, w.opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(w.drv.FPS()))
	rl.SetExitKey(0)

	w.font = loadFont()
	w.drv.Start(time.Now())

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		w.handleKeys()
		if w.running {
			w.drv.Frame(time.Now())
			w.sample()
		}
		w.draw()
	}
}

// loadFont loads the Liberation Mono font from the system path, falling
// back to the raylib default font when it is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func (w *Window) handleKeys() {
	delta := 0
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		delta = 1
	case rl.IsKeyPressed(rl.KeyDown):
		delta = -1
	case rl.IsKeyPressed(rl.KeyRight):
		delta = 10
	case rl.IsKeyPressed(rl.KeyLeft):
		delta = -10
	}
	if delta != 0 {
		n := max(w.drv.Count()+delta, 0)
		if w.opts.MaxCount > 0 {
			n = min(n, w.opts.MaxCount)
		}
		_ = w.drv.SetCount(n)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		w.running = !w.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		w.drv.Reset()
	}
}

func (w *Window) sample() {
	coll := w.drv.Collection()
	if coll.Steps() == 1 {
		w.telemetry = w.telemetry[:0]
	}
	if coll.Len() == 0 {
		return
	}
	if len(w.telemetry) == maxTelemetry {
		copy(w.telemetry, w.telemetry[1:])
		w.telemetry = w.telemetry[:maxTelemetry-1]
	}
	w.telemetry = append(w.telemetry, pendulum.Energy(coll.Params(), coll.State(0)))
}

// camera scales the ensemble surface into the area left of the HUD.
func (w *Window) camera() rl.Camera2D {
	coll := w.drv.Collection()
	b := ensemble.Bounds(coll.Params(), coll.Layout(), max(coll.Len(), 1))
	zoom := min(float32(screenW-hudWidth)/float32(b.X), float32(screenH)/float32(b.Y))
	return rl.Camera2D{Zoom: zoom}
}

func (w *Window) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode2D(w.camera())
	for _, line := range w.lines {
		for i := 0; i+1 < len(line); i++ {
			a := rl.NewVector2(float32(line[i].X), float32(line[i].Y))
			b := rl.NewVector2(float32(line[i+1].X), float32(line[i+1].Y))
			rl.DrawLineV(a, b, ColLink)
		}
	}
	rl.EndMode2D()

	w.drawHUD()
	rl.EndDrawing()
}

func (w *Window) drawHUD() {
	coll := w.drv.Collection()
	x := screenW - hudWidth + 20

	w.drawText("pendulab", x, 30, 24, ColSelect)
	status, col := "RUNNING", ColSelect
	if !w.running {
		status, col = "PAUSED", ColTextDim
	}
	w.drawText(status, x, 64, 16, col)

	count := fmt.Sprintf("pendulums %d", coll.Len())
	if want := w.drv.Count(); want != coll.Len() {
		count += fmt.Sprintf(" -> %d", want)
	}
	w.drawText(count, x, 110, 16, ColText)
	w.drawText(fmt.Sprintf("variant %s", coll.Params().Variant), x, 134, 16, ColText)
	w.drawText(fmt.Sprintf("time %.2fs", coll.Time()), x, 158, 16, ColText)
	w.drawText(w.stats, x, 182, 16, ColText)

	w.drawTelemetry(x, 240, hudWidth-40, 80)

	w.drawText("[UP/DOWN] +-1  [LEFT/RIGHT] +-10", x, 640, 14, ColTextDim)
	w.drawText("[SPACE] PAUSE  [R] RESET  [Q] QUIT", x, 664, 14, ColTextDim)
}

func (w *Window) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(w.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// drawTelemetry plots the energy history of the first pendulum.
func (w *Window) drawTelemetry(rectX, rectY, width, height int) {
	if len(w.telemetry) < 2 {
		return
	}

	minVal, maxVal := w.telemetry[0], w.telemetry[0]
	for _, v := range w.telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(w.telemetry))
	for i, val := range w.telemetry {
		px := float32(rectX) + (float32(i)/float32(len(w.telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	w.drawText(fmt.Sprintf("E0: %.4f", w.telemetry[len(w.telemetry)-1]), rectX, rectY+height+8, 14, ColText)
}
