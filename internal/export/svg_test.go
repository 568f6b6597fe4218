package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

var _ sim.Renderer = (*Frame)(nil)

func TestFrameCircles(t *testing.T) {
	f := NewFrame(200, 100, particle.Black)
	f.DrawCircle(5, 5, 15, 15, particle.MustHex("#ff0000"))

	svg := f.String()
	if !strings.Contains(svg, `<circle cx="10.0" cy="10.0" r="5.0" fill="#ff0000"/>`) {
		t.Errorf("missing circle in:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("missing background")
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("malformed document")
	}

	f.Reset()
	if f.Count() != 0 || strings.Contains(f.String(), "<circle") {
		t.Error("expected empty frame after reset")
	}
}

func TestFrameFromLoop(t *testing.T) {
	loop := sim.New(sim.Config{Seed: 1})
	for i := 0; i < 5; i++ {
		loop.Spawn(particle.V(float64(20+i*30), 50), 5, particle.White)
	}

	f := NewFrame(200, 100, particle.Black)
	params := sim.Params{Size: 5, Width: 200, Height: 100}
	loop.Tick(&params, f)

	if f.Count() != 5 {
		t.Errorf("expected 5 circles, got %d", f.Count())
	}

	path := filepath.Join(t.TempDir(), "frame.svg")
	if err := f.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Count(string(data), "<circle") != 5 {
		t.Error("written file lost circles")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	svg := SeriesToSVG([]float64{0, 1, 2}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke colour")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments in:\n%s", svg)
	}
	if !strings.Contains(svg, "d=\"M0.0,") {
		t.Error("path should start at x=0")
	}
}
