package gui

import "github.com/san-kum/particlesim/internal/particle"

type circle struct {
	x, y, r float32
	color   particle.RGB
}

// circleBuffer is the Renderer handed to Tick. It keeps the circles of the
// most recent tick so frames can be drawn at their own rate.
type circleBuffer struct {
	circles []circle
}

func (b *circleBuffer) DrawCircle(x0, y0, x1, y1 float64, c particle.RGB) {
	b.circles = append(b.circles, circle{
		x:     float32((x0 + x1) / 2),
		y:     float32((y0 + y1) / 2),
		r:     float32((x1 - x0) / 2),
		color: c,
	})
}

func (b *circleBuffer) Reset() { b.circles = b.circles[:0] }
