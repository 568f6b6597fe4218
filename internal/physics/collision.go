package physics

import "github.com/san-kum/particlesim/internal/particle"

// Resolve exchanges an impulse between two overlapping, approaching
// particles. Sizes act as inertial mass. Positions are never changed.
func Resolve(p1, p2 *particle.Particle) {
	resolve(p1, p2)
}

// ResolvePairs runs Resolve once for every pair (i, j), i < j, in order
// and returns how many pairs exchanged an impulse.
func ResolvePairs(ps []particle.Particle) int {
	n := 0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if resolve(&ps[i], &ps[j]) {
				n++
			}
		}
	}
	return n
}

func resolve(p1, p2 *particle.Particle) bool {
	delta := p1.Pos.Sub(p2.Pos)
	dist := delta.Len()
	if dist >= p1.Size+p2.Size || dist == 0 {
		return false
	}

	normal := delta.Scale(1 / dist)
	velAlongNormal := p1.Vel.Sub(p2.Vel).Dot(normal)
	if velAlongNormal > 0 {
		return false
	}

	impulse := -(1 + Restitution) * velAlongNormal
	impulse /= 1/p1.Size + 1/p2.Size

	// normal points from p2 to p1, so p1 is pushed along it and p2 against.
	p1.Vel = p1.Vel.Add(normal.Scale(impulse / p1.Size))
	p2.Vel = p2.Vel.Sub(normal.Scale(impulse / p2.Size))
	return true
}
