package physics

import "github.com/san-kum/particlesim/internal/particle"

// Enforce clamps each velocity component to [-MaxSpeed, MaxSpeed], then
// pushes a particle whose edge crossed the area back inside and flips that
// axis of its velocity.
func Enforce(p *particle.Particle, width, height float64) {
	p.Vel.X = clamp(p.Vel.X, -MaxSpeed, MaxSpeed)
	p.Vel.Y = clamp(p.Vel.Y, -MaxSpeed, MaxSpeed)

	if p.Pos.X-p.Size < 0 {
		p.Pos.X = p.Size
		p.Vel.X = -p.Vel.X
	} else if p.Pos.X+p.Size > width {
		p.Pos.X = width - p.Size
		p.Vel.X = -p.Vel.X
	}

	if p.Pos.Y-p.Size < 0 {
		p.Pos.Y = p.Size
		p.Vel.Y = -p.Vel.Y
	} else if p.Pos.Y+p.Size > height {
		p.Pos.Y = height - p.Size
		p.Vel.Y = -p.Vel.Y
	}
}

// Inside reports whether the centre lies in [0,width]x[0,height].
func Inside(p *particle.Particle, width, height float64) bool {
	return p.Pos.X >= 0 && p.Pos.X <= width && p.Pos.Y >= 0 && p.Pos.Y <= height
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
