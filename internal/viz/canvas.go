package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlesim/internal/particle"
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

// Canvas is a braille pixel grid. Each cell holds 2x4 sub-pixels and one
// colour, the last one drawn into it. Sub-pixel coordinates double as
// simulation coordinates, so the canvas is a sim.Renderer.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]particle.RGB
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]particle.RGB, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]particle.RGB, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas extent in sub-pixels.
func (c *Canvas) PixelSize() (float64, float64) {
	return float64(c.Width * 2), float64(c.Height * 4)
}

// Set lights the sub-pixel at (x, y). The canvas size in sub-pixels is
// (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, color particle.RGB) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = color
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawCircle fills the disc inscribed in the bounding box. A disc smaller
// than one sub-pixel still lights its centre.
func (c *Canvas) DrawCircle(x0, y0, x1, y1 float64, color particle.RGB) {
	cx, cy := (x0+x1)/2, (y0+y1)/2
	r := (x1 - x0) / 2

	c.Set(int(math.Floor(cx)), int(math.Floor(cy)), color)
	for y := int(math.Floor(y0)); y <= int(math.Ceil(y1)); y++ {
		for x := int(math.Floor(x0)); x <= int(math.Ceil(x1)); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, color)
			}
		}
	}
}

// Lit counts the sub-pixels currently set.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - blank); bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the grid with per-cell colours on bg. Runs of cells sharing
// a colour are styled together.
func (c *Canvas) Render(bg particle.RGB) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))

	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.sameRun(row, start, col) {
				continue
			}
			run := string(c.Grid[row][start:col])
			if c.Grid[row][start] == blank {
				b.WriteString(base.Render(run))
			} else {
				fg := lipgloss.Color(c.Colors[row][start].Hex())
				b.WriteString(base.Foreground(fg).Render(run))
			}
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) sameRun(row, a, b int) bool {
	ea, eb := c.Grid[row][a] == blank, c.Grid[row][b] == blank
	if ea || eb {
		return ea == eb
	}
	return c.Colors[row][a] == c.Colors[row][b]
}
