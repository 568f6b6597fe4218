package particle

// Particle is a circle of radius Size moving in simulation-area
// coordinates. Velocity is the displacement applied per tick.
type Particle struct {
	Pos   Vec2
	Vel   Vec2
	Size  float64
	Color RGB
}

func New(pos Vec2, size float64, color RGB) Particle {
	return Particle{Pos: pos, Size: size, Color: color}
}

// Bounds returns the bounding box of the circle.
func (p *Particle) Bounds() (x0, y0, x1, y1 float64) {
	return p.Pos.X - p.Size, p.Pos.Y - p.Size, p.Pos.X + p.Size, p.Pos.Y + p.Size
}

// Set is the ordered live set. Pointers returned by At stay valid until the
// next Add or Retain.
type Set struct {
	items []Particle
}

func NewSet(capacity int) *Set {
	return &Set{items: make([]Particle, 0, capacity)}
}

func (s *Set) Add(p Particle) { s.items = append(s.items, p) }

func (s *Set) Len() int { return len(s.items) }

func (s *Set) At(i int) *Particle { return &s.items[i] }

// Items exposes the backing slice for in-place iteration.
func (s *Set) Items() []Particle { return s.items }

func (s *Set) Clear() { s.items = s.items[:0] }

// Retain keeps the particles for which keep returns true, preserving
// order, and reports how many were dropped.
func (s *Set) Retain(keep func(*Particle) bool) int {
	n := 0
	for i := range s.items {
		if keep(&s.items[i]) {
			s.items[n] = s.items[i]
			n++
		}
	}
	removed := len(s.items) - n
	s.items = s.items[:n]
	return removed
}

// Snapshot copies the live set.
func (s *Set) Snapshot() []Particle {
	c := make([]Particle, len(s.items))
	copy(c, s.items)
	return c
}
