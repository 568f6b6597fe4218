package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/particlesim/internal/control"
	"github.com/san-kum/particlesim/internal/metrics"
	"github.com/san-kum/particlesim/internal/particle"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	statsWidth      = 36
	headerLines     = 1
	historyCapacity = 600
)

type TickMsg time.Time

// Model hosts one simulation in the terminal. The canvas is the
// simulation area: one braille sub-pixel per unit.
type Model struct {
	surface  *control.Surface
	canvas   *Canvas
	recorder *metrics.Recorder
	interval time.Duration

	width, height int
	theme         Theme
	paramNames    []string
	selected      int
	showStats     bool
	showHelp      bool
}

// NewModel wraps surface. Ticks fire every interval.
func NewModel(surface *control.Surface, interval time.Duration, theme string) Model {
	rec := metrics.NewRecorder(historyCapacity)
	surface.Loop().AddObserver(rec)

	m := Model{
		surface:    surface,
		recorder:   rec,
		interval:   interval,
		width:      defaultWidth,
		height:     defaultHeight,
		theme:      GetTheme(theme),
		paramNames: control.ParamNames(),
		showStats:  true,
	}
	m.layout()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m.key(msg)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.surface.Close()
		return *m, tea.Quit
	case "c":
		on := m.surface.ToggleCycle()
		log.Debug("colour cycle", "on", on)
	case "x":
		m.surface.Clear()
	case "b":
		m.surface.NextBackground()
	case "p":
		m.surface.NextColor()
	case "f":
		m.surface.ToggleFullscreen()
		m.layout()
	case "tab":
		m.selected = (m.selected + 1) % len(m.paramNames)
	case "up", "k":
		m.surface.Adjust(m.paramNames[m.selected], 1)
	case "down", "j":
		m.surface.Adjust(m.paramNames[m.selected], -1)
	case "t":
		m.theme = NextTheme(m.theme)
	case "s":
		m.showStats = !m.showStats
		m.layout()
	case "?":
		m.showHelp = !m.showHelp
	}
	return *m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	col, row := msg.X, msg.Y-m.top()
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		m.surface.PointerLeave()
		return
	}
	// centre of the cell in sub-pixels
	x, y := float64(col*2+1), float64(row*4+2)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.surface.PointerDown(x, y)
		}
	case tea.MouseActionRelease:
		m.surface.PointerUp()
		m.surface.PointerMove(x, y)
	case tea.MouseActionMotion:
		m.surface.PointerMove(x, y)
	}
}

// step spawns what the held button owes and advances one tick.
func (m *Model) step(now time.Time) {
	m.surface.SpawnDue(now)
	m.canvas.Clear()
	m.surface.Tick(m.canvas)
}

func (m Model) top() int {
	if m.surface.Fullscreen() {
		return 0
	}
	return headerLines
}

func (m Model) statsShown() bool {
	return m.showStats && !m.surface.Fullscreen()
}

// layout sizes the canvas to the terminal and resizes the simulation area
// to match.
func (m *Model) layout() {
	cols, rows := m.width, m.height-m.top()
	if m.statsShown() {
		cols -= statsWidth
	}
	m.canvas = NewCanvas(cols, rows)
	m.surface.Resize(m.canvas.PixelSize())
}

func (m Model) status() string {
	st := newStyles(m.theme)
	return st.running.Render(fmt.Sprintf("tick %d", m.surface.Loop().Ticks()))
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := m.canvas.Render(m.surface.Background())
	if m.surface.Fullscreen() {
		return canvasView
	}

	title := GradientText("PARTICLES", particle.MustHex(string(m.theme.Secondary)), particle.MustHex(string(m.theme.Primary)))
	header := title + "  " + m.status()

	main := canvasView
	if m.statsShown() {
		main = lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.statsView())
	}
	if m.showHelp {
		return header + "\n" + helpText + "\n" + main
	}
	return header + "\n" + main
}

func (m Model) statsView() string {
	st := newStyles(m.theme)
	params := m.surface.Params()
	samples := m.recorder.Samples()

	var s strings.Builder
	s.WriteString(st.header.Render("STATS") + "\n")

	var last metrics.Sample
	if len(samples) > 0 {
		last = samples[len(samples)-1]
	}
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.surface.Loop().Ticks()))
	row("Live", fmt.Sprintf("%d", last.Live))
	row("Collisions", fmt.Sprintf("%d", last.Collisions))
	row("Energy", fmt.Sprintf("%.1f", last.Energy))
	row("Cycle", onOff(params.CycleColors))
	row("Colour", params.Color.Hex())

	live := m.recorder.Series(metrics.SeriesLive)
	if len(live) > 1 {
		chart := asciigraph.Plot(live, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("Live"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.muted.Render(SparklineChart(m.recorder.Series(metrics.SeriesEnergy), statsWidth-4)) + "\n")

	s.WriteString("\n" + st.header.Render("PARAMETERS") + "\n")
	values := m.surface.GetParams()
	for i, name := range m.paramNames {
		r := control.Ranges[name]
		line := fmt.Sprintf("%-8s %s %.2f", name, ProgressBar(values[name], r.Min, r.Max, 10), values[name])
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.muted.Render(line) + "\n")
		}
	}
	s.WriteString(st.muted.Render("\nC:Cycle  X:Clear  P:Colour\nTab/↑↓:Tune  ?:Help  Q:Quit"))

	return st.pane.Height(m.canvas.Height).Render(s.String())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Mouse    - Hold to spawn, move to   ║
║             push particles away      ║
║  C        - Toggle colour cycling    ║
║  P        - Next particle colour     ║
║  B        - Next background          ║
║  X        - Clear all particles      ║
║  F        - Toggle fullscreen        ║
║  Tab      - Select parameter         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  T        - Cycle themes             ║
║  S        - Toggle stats pane        ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts m full-screen with mouse motion reporting.
func Run(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
