package physics

import "github.com/san-kum/particlesim/internal/particle"

// Integrate applies friction, then gravity, then moves the particle by its
// velocity. A particle whose new centre is closer than attractionRadius to
// mouse (and not exactly on it) is pushed away along the unit direction
// from the pointer, scaled linearly by pushForce.
func Integrate(p *particle.Particle, gravity float64, mouse particle.Vec2, pushForce, attractionRadius float64) {
	p.Vel = p.Vel.Scale(Friction)
	p.Vel.Y += gravity
	p.Pos = p.Pos.Add(p.Vel)

	d := p.Pos.Sub(mouse)
	dist := d.Len()
	if dist < attractionRadius && dist != 0 {
		p.Vel = p.Vel.Add(d.Scale(pushForce / dist))
	}
}
