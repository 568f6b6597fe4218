package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/particlesim/internal/config"
	"github.com/san-kum/particlesim/internal/control"
	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

func newModel() Model {
	params := sim.Params{Gravity: 0.05, Size: 2, PushForce: 5, AttractionRadius: 50, Color: particle.White}
	surface := control.New(sim.New(sim.Config{Seed: 1}), params, nil, time.Millisecond)
	return NewModel(surface, 10*time.Millisecond, "cyberpunk")
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLayoutResizesArea(t *testing.T) {
	m := update(newModel(), tea.WindowSizeMsg{Width: 100, Height: 41})

	if m.canvas.Width != 100-statsWidth || m.canvas.Height != 40 {
		t.Fatalf("unexpected canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}
	p := m.surface.Params()
	if p.Width != float64((100-statsWidth)*2) || p.Height != 160 {
		t.Errorf("area not resized: %vx%v", p.Width, p.Height)
	}

	m = update(m, keyMsg("s"))
	if m.canvas.Width != 100 {
		t.Errorf("expected full width without stats, got %d", m.canvas.Width)
	}

	m = update(m, keyMsg("f"))
	if m.canvas.Height != 41 || !m.surface.Fullscreen() {
		t.Errorf("expected fullscreen canvas, got height %d", m.canvas.Height)
	}
}

func TestMouseSpawnsAndTicks(t *testing.T) {
	m := update(newModel(), tea.WindowSizeMsg{Width: 80, Height: 25})

	m = update(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.surface.Loop().Len() != 1 {
		t.Fatalf("expected spawn on press, got %d", m.surface.Loop().Len())
	}
	pos := m.surface.Loop().Particles()[0].Pos
	if pos != particle.V(21, 18) {
		t.Errorf("expected spawn at cell centre (21,18), got %v", pos)
	}

	m = update(m, tea.MouseMsg{X: 11, Y: 5, Action: tea.MouseActionMotion})
	if m.surface.Loop().Len() != 2 {
		t.Errorf("expected spawn on drag, got %d", m.surface.Loop().Len())
	}

	m = update(m, tea.MouseMsg{X: 11, Y: 5, Action: tea.MouseActionRelease})
	if m.surface.Spawning() {
		t.Error("expected spawning to stop on release")
	}

	m = update(m, TickMsg(time.Now()))
	if m.surface.Loop().Ticks() != 1 || m.recorder.Len() != 1 {
		t.Errorf("expected one recorded tick, got %d", m.recorder.Len())
	}
	if m.canvas.Lit() == 0 {
		t.Error("expected particles drawn on the canvas")
	}

	m = update(m, tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionMotion})
	if m.surface.Params().MouseActive {
		t.Error("pointer over the header must be inactive")
	}
}

func TestEveryTickMsgAdvances(t *testing.T) {
	m := newModel()
	for _, k := range []string{" ", "c", "?"} {
		m = update(m, keyMsg(k))
	}
	m.surface.Close()
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	if got := m.surface.Loop().Ticks(); got != 5 {
		t.Errorf("expected 5 ticks, got %d", got)
	}
	if !strings.Contains(m.View(), "tick 5") {
		t.Error("expected tick count in header")
	}
}

func TestKeysTuneParams(t *testing.T) {
	m := newModel()

	// params sort as gravity, push, size
	m = update(m, keyMsg("k"))
	if got := m.surface.Params().Gravity; got < 0.0599 || got > 0.0601 {
		t.Errorf("expected gravity 0.06, got %v", got)
	}

	m = update(m, keyMsg("tab"))
	m = update(m, keyMsg("tab"))
	m = update(m, keyMsg("j"))
	if m.surface.Params().Size != 1 {
		t.Errorf("expected size 1, got %v", m.surface.Params().Size)
	}

	m = update(m, keyMsg("p"))
	if m.surface.Params().Color == particle.White {
		t.Error("expected next palette colour")
	}
	m = update(m, keyMsg("t"))
	if m.theme.Name != "retro" {
		t.Errorf("expected retro theme, got %s", m.theme.Name)
	}
}

func TestViewShowsStats(t *testing.T) {
	m := update(newModel(), TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	view := m.View()
	for _, want := range []string{"STATS", "PARAMETERS", "gravity"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenuStartsLiveModel(t *testing.T) {
	built := 0
	build := func(cfg *config.Config) (Model, error) {
		built++
		if cfg.Gravity != 0.01 {
			t.Errorf("expected tuned zero-g gravity 0.01, got %v", cfg.Gravity)
		}
		return newModel(), nil
	}

	var tm tea.Model = NewMenu(config.DefaultConfig(), build)
	send := func(msg tea.Msg) {
		tm, _ = tm.Update(msg)
	}

	// default, calm, heavy, storm, zero-g
	for i := 0; i < 4; i++ {
		send(keyMsg("j"))
	}
	send(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(tm.View(), "ZERO-G") {
		t.Fatalf("expected config screen, got %q", tm.View())
	}

	send(keyMsg("l"))
	send(keyMsg("s"))
	if built != 1 {
		t.Fatalf("expected one build, got %d", built)
	}
	if !strings.Contains(tm.View(), "STATS") {
		t.Error("expected live view after start")
	}
}
