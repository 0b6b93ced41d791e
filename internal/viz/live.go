package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendulab/internal/ensemble"
	"github.com/san-kum/pendulab/internal/pendulum"
)

const (
	defaultWidth  = 60
	defaultHeight = 24
	panelWidth    = 46
	energyHistory = 240
)

type TickMsg time.Time

// LiveOptions configures the terminal view.
type LiveOptions struct {
	Width, Height int // canvas size in cells
	MaxCount      int
	Theme         string
}

// Live is a Bubble Tea model that owns the frame loop of a driver whose
// renderer is Canvas.
type Live struct {
	drv    *ensemble.Driver
	canvas *Canvas
	opts   LiveOptions
	theme  Theme
	styles styles

	running bool
	energy  []float64
	e0      float64
	lastErr error
}

// NewLive builds the view. The driver must draw onto canvas.
func NewLive(drv *ensemble.Driver, canvas *Canvas, opts LiveOptions) *Live {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if canvas.Width != opts.Width || canvas.Height != opts.Height {
		canvas.Resize(opts.Width, opts.Height)
	}
	theme := GetTheme(opts.Theme)
	m := &Live{
		drv:     drv,
		canvas:  canvas,
		opts:    opts,
		theme:   theme,
		styles:  newStyles(theme),
		running: true,
		energy:  make([]float64, 0, energyHistory),
	}
	m.fit()
	return m
}

func (m *Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.drv.FPS()), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Live) Init() tea.Cmd {
	m.drv.Start(time.Now())
	return m.tick()
}

// Update handles input events and advances the ensemble on every tick.
func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.drv.Reset()
		case "+", "=":
			m.adjustCount(1)
		case "-", "_":
			m.adjustCount(-1)
		case "]":
			m.adjustCount(10)
		case "[":
			m.adjustCount(-10)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		}
	case tea.WindowSizeMsg:
		w := msg.Width - panelWidth - 6
		h := msg.Height - 2
		if w > 0 && h > 0 {
			m.canvas.Resize(w, h)
			m.fit()
		}
	case TickMsg:
		if m.running {
			m.step(time.Time(msg))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Live) adjustCount(delta int) {
	n := m.drv.Count() + delta
	if n < 0 {
		n = 0
	}
	if m.opts.MaxCount > 0 && n > m.opts.MaxCount {
		n = m.opts.MaxCount
	}
	m.lastErr = m.drv.SetCount(n)
}

func (m *Live) fit() {
	coll := m.drv.Collection()
	n := max(m.drv.Count(), coll.Len())
	m.canvas.Fit(ensemble.Bounds(coll.Params(), coll.Layout(), n))
}

func (m *Live) step(now time.Time) {
	coll := m.drv.Collection()
	before := coll.Len()
	m.fit()
	m.drv.Frame(now)

	if coll.Len() != before || coll.Steps() == 1 {
		m.energy = m.energy[:0]
	}
	if coll.Len() == 0 {
		return
	}
	e := pendulum.Energy(coll.Params(), coll.State(0))
	if len(m.energy) == 0 {
		m.e0 = e
	}
	if len(m.energy) == energyHistory {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:energyHistory-1]
	}
	m.energy = append(m.energy, e)
}

// View renders the canvas next to the stats panel.
func (m *Live) View() string {
	st := m.styles
	coll := m.drv.Collection()

	var s strings.Builder
	s.WriteString(st.header.Render("PENDULAB") + "\n")
	if m.running {
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	count := fmt.Sprintf("%d", coll.Len())
	if want := m.drv.Count(); want != coll.Len() {
		count += fmt.Sprintf(" → %d", want)
	}
	row("Pendulums", count)
	if m.opts.MaxCount > 0 {
		row("", st.bar.Render(ProgressBar(float64(m.drv.Count())/float64(m.opts.MaxCount), 20)))
	}
	row("Variant", coll.Params().Variant.String())
	row("Time", fmt.Sprintf("%.2fs", coll.Time()))

	stats := m.drv.Stats()
	row("FPS", fmt.Sprintf("%.2f", stats.FPS))
	row("Avg frame", fmt.Sprintf("%.2f ms", stats.AvgMillis()))

	if n := len(m.energy); n > 0 {
		e := m.energy[n-1]
		row("Energy", fmt.Sprintf("%.4f", e))
		row("Drift", fmt.Sprintf("%.2e", (e-m.e0)/pendulum.EnergyScale(coll.Params())))
	}
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-14),
			asciigraph.Precision(3),
			asciigraph.Caption("energy of pendulum 0"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if m.lastErr != nil {
		s.WriteString(st.paused.Render(m.lastErr.Error()) + "\n")
	}

	s.WriteString(st.help.Render("+/-: ±1  ]/[: ±10  SP: Pause\nR: Reset  T: Theme  Q: Quit"))

	canvasView := st.canvas.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
}

// Running reports whether ticks advance the ensemble.
func (m *Live) Running() bool { return m.running }

// Energy returns the recorded energy history of the first pendulum.
func (m *Live) Energy() []float64 { return m.energy }

// RunLive starts the full-screen program and blocks until the user quits.
func RunLive(m *Live) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
