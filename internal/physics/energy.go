package physics

import "github.com/san-kum/particlesim/internal/particle"

// KineticEnergy treats size as mass, matching the impulse weighting.
func KineticEnergy(p *particle.Particle) float64 {
	return 0.5 * p.Size * p.Vel.Dot(p.Vel)
}

func TotalKineticEnergy(ps []particle.Particle) float64 {
	e := 0.0
	for i := range ps {
		e += KineticEnergy(&ps[i])
	}
	return e
}

// Momentum is the size-weighted velocity sum.
func Momentum(ps []particle.Particle) particle.Vec2 {
	var m particle.Vec2
	for i := range ps {
		m = m.Add(ps[i].Vel.Scale(ps[i].Size))
	}
	return m
}
