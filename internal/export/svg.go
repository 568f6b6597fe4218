// Package export writes simulation frames and telemetry as SVG.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/particlesim/internal/particle"
)

// Frame is a Renderer that collects one tick's circles into an SVG
// document. Reset it between ticks to draw a fresh frame.
type Frame struct {
	width, height float64
	background    particle.RGB
	circles       strings.Builder
	count         int
}

func NewFrame(width, height float64, background particle.RGB) *Frame {
	return &Frame{width: width, height: height, background: background}
}

func (f *Frame) DrawCircle(x0, y0, x1, y1 float64, c particle.RGB) {
	cx := (x0 + x1) / 2
	cy := (y0 + y1) / 2
	r := (x1 - x0) / 2
	fmt.Fprintf(&f.circles, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, c.Hex())
	f.count++
}

// Count is the number of circles drawn since the last Reset.
func (f *Frame) Count() int { return f.count }

func (f *Frame) Reset() {
	f.circles.Reset()
	f.count = 0
}

func (f *Frame) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, f.width, f.height, f.width, f.height, f.background.Hex())
	sb.WriteString(f.circles.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (f *Frame) WriteFile(path string) error {
	return os.WriteFile(path, []byte(f.String()), 0644)
}

// SeriesToSVG draws values as a polyline scaled to fill width x height.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
