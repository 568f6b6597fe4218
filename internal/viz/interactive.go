package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlesim/internal/config"
	"github.com/san-kum/particlesim/internal/control"
)

var presetInfo = map[string]string{
	"default": "the stock settings",
	"calm":    "low gravity, soft pushes",
	"storm":   "strong pushes, fast colours",
	"zero-g":  "no gravity at all",
	"heavy":   "big particles, hard fall",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// Builder turns a configuration into a running live model.
type Builder func(cfg *config.Config) (Model, error)

// menu picks a preset, lets the user tune it, then hands over to the live
// model.
type menu struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	build         Builder
	err           error
	live          Model
	size          *tea.WindowSizeMsg
}

func NewMenu(base *config.Config, build Builder) tea.Model {
	return menu{
		state:   stateMenu,
		presets: append([]string{"default"}, config.ListPresets()...),
		cfg:     base,
		build:   build,
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.size = &size
	}
	if m.state == stateSim {
		live, cmd := m.live.Update(msg)
		m.live = live.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		cfg := *m.cfg
		if m.selected != "default" {
			if err := config.Apply(&cfg, m.selected); err != nil {
				m.err = err
				return m, nil
			}
		}
		m.cfg = &cfg
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m menu) configKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	names := control.ParamNames()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(names)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.nudge(names[m.paramCursor], -1)
	case "right", "l":
		m.nudge(names[m.paramCursor], 1)
	case "enter", "s":
		return m.start()
	}
	return m, nil
}

func (m *menu) nudge(name string, dir float64) {
	r := control.Ranges[name]
	switch name {
	case control.ParamGravity:
		m.cfg.Gravity = r.Clamp(m.cfg.Gravity + dir*r.Step)
	case control.ParamSize:
		m.cfg.Size = r.Clamp(m.cfg.Size + dir*r.Step)
	case control.ParamPush:
		m.cfg.PushForce = r.Clamp(m.cfg.PushForce + dir*r.Step)
	}
}

func (m menu) value(name string) float64 {
	switch name {
	case control.ParamGravity:
		return m.cfg.Gravity
	case control.ParamSize:
		return m.cfg.Size
	default:
		return m.cfg.PushForce
	}
}

func (m menu) start() (menu, tea.Cmd) {
	live, err := m.build(m.cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.size != nil {
		sized, _ := live.Update(*m.size)
		live = sized.(Model)
	}
	m.live = live
	m.state = stateSim
	return m, live.Init()
}

func (m menu) View() string {
	switch m.state {
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return m.viewMenu()
}

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuSub.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("PARTICLESIM") + "\n    " + menuSub.Render("interactive particle physics") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuIdle.Render(presetInfo[name])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuErr.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(presetInfo[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range control.ParamNames() {
		val := fmt.Sprintf("%8.2f", m.value(name))
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuIdle.Render(val)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuErr.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}
