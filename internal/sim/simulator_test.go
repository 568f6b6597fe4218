package sim_test

import (
	"context"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

type circle struct {
	x0, y0, x1, y1 float64
	c              particle.RGB
}

type recorder struct {
	circles []circle
}

func (r *recorder) DrawCircle(x0, y0, x1, y1 float64, c particle.RGB) {
	r.circles = append(r.circles, circle{x0, y0, x1, y1, c})
}

type fixedColor struct {
	c  particle.RGB
	ok bool
}

func (f fixedColor) Latest() (particle.RGB, bool) { return f.c, f.ok }

type statsLog struct {
	stats []sim.TickStats
}

func (s *statsLog) OnTick(st sim.TickStats, _ []particle.Particle) { s.stats = append(s.stats, st) }

func defaultParams() sim.Params {
	return sim.Params{
		Gravity:          0.05,
		Size:             5,
		PushForce:        5,
		AttractionRadius: 50,
		Color:            particle.White,
		Width:            800,
		Height:           600,
	}
}

func still(x, y, size float64) particle.Particle {
	return particle.Particle{Pos: particle.V(x, y), Size: size, Color: particle.White}
}

var _ = Describe("Loop", func() {
	var (
		loop   *sim.Loop
		params sim.Params
	)

	BeforeEach(func() {
		loop = sim.New(sim.Config{Seed: 7})
		params = defaultParams()
	})

	It("starts idle and runs after the first tick", func() {
		Expect(loop.State()).To(Equal(sim.Idle))
		loop.Tick(&params, nil)
		Expect(loop.State()).To(Equal(sim.Running))
		Expect(loop.Ticks()).To(BeEquivalentTo(1))
	})

	It("spawns particles with a bounded random velocity", func() {
		for i := 0; i < 100; i++ {
			loop.Spawn(particle.V(400, 300), 5, particle.White)
		}
		Expect(loop.Len()).To(Equal(100))
		for _, p := range loop.Particles() {
			Expect(p.Vel.X).To(BeNumerically(">=", -1))
			Expect(p.Vel.X).To(BeNumerically("<", 1))
			Expect(p.Vel.Y).To(BeNumerically(">=", -1))
			Expect(p.Vel.Y).To(BeNumerically("<", 1))
			Expect(p.Size).To(Equal(5.0))
		}
	})

	It("scatters particles inside the area", func() {
		params.Width, params.Height = 50, 40
		params.Size = 3
		loop.Scatter(200, &params)

		Expect(loop.Len()).To(Equal(200))
		for _, p := range loop.Particles() {
			Expect(p.Pos.X).To(BeNumerically(">=", 0))
			Expect(p.Pos.X).To(BeNumerically("<", 50))
			Expect(p.Pos.Y).To(BeNumerically(">=", 0))
			Expect(p.Pos.Y).To(BeNumerically("<", 40))
			Expect(p.Size).To(Equal(3.0))
		}
	})

	It("is deterministic for a given seed", func() {
		other := sim.New(sim.Config{Seed: 7})
		for i := 0; i < 20; i++ {
			loop.Spawn(particle.V(400, 300), 5, particle.White)
			other.Spawn(particle.V(400, 300), 5, particle.White)
		}
		loop.Run(&params, 50)
		other.Run(&params, 50)
		Expect(loop.Snapshot()).To(Equal(other.Snapshot()))
	})

	It("renders every live particle with its bounding box", func() {
		loop.Add(still(100, 100, 5))
		loop.Add(still(300, 200, 10))
		params.Gravity = 0

		r := &recorder{}
		loop.Tick(&params, r)

		Expect(r.circles).To(HaveLen(2))
		Expect(r.circles[1].x0).To(BeNumerically("~", 290, 1e-9))
		Expect(r.circles[1].y1).To(BeNumerically("~", 210, 1e-9))
		Expect(r.circles[0].c).To(Equal(particle.White))
	})

	It("enforces the boundary before integrating", func() {
		p := still(800-5+1, 300, 5)
		p.Vel = particle.V(5, 0)
		loop.Add(p)
		params.Gravity = 0

		loop.Tick(&params, nil)

		got := loop.Particles()[0]
		Expect(got.Vel.X).To(BeNumerically("~", -5*0.99, 1e-12))
		Expect(got.Pos.X).To(BeNumerically("~", 795-5*0.99, 1e-9))
	})

	It("resolves collisions before moving", func() {
		a, b := still(100, 100, 5), still(108, 100, 5)
		a.Vel, b.Vel = particle.V(1, 0), particle.V(-1, 0)
		loop.Add(a)
		loop.Add(b)
		params.Gravity = 0

		st := loop.Tick(&params, nil)

		Expect(st.Collisions).To(Equal(1))
		ps := loop.Particles()
		Expect(ps[0].Vel.X).To(BeNumerically("<", 0))
		Expect(ps[1].Vel.X).To(BeNumerically(">", 0))
	})

	Describe("removal", func() {
		It("drops particles whose centre left the area after the tick", func() {
			loop.Add(still(400, 300, 5))
			loop.Tick(&params, nil)
			Expect(loop.Len()).To(Equal(1))

			// an area smaller than the particle pins its centre outside
			params.Width, params.Height = 2, 2
			st := loop.Tick(&params, nil)

			Expect(st.Removed).To(Equal(1))
			Expect(st.Live).To(BeZero())
			Expect(loop.Len()).To(BeZero())
		})

		It("keeps a particle whose centre lands exactly on the boundary", func() {
			p := still(2, 300, 2)
			p.Vel = particle.V(-2.0202020202020203, 0)
			loop.Add(p)
			params.Gravity = 0

			loop.Tick(&params, nil)

			Expect(loop.Len()).To(Equal(1))
			Expect(loop.Particles()[0].Pos.X).To(Equal(0.0))
		})

		It("reports live and removed counts to observers", func() {
			obs := &statsLog{}
			loop.AddObserver(obs)
			loop.Spawn(particle.V(400, 300), 5, particle.White)
			loop.Spawn(particle.V(410, 300), 5, particle.White)

			loop.Tick(&params, nil)
			loop.Tick(&params, nil)

			Expect(obs.stats).To(HaveLen(2))
			Expect(obs.stats[0].Spawned).To(Equal(2))
			Expect(obs.stats[1].Spawned).To(BeZero())
			Expect(obs.stats[1].Live).To(Equal(2))
			Expect(obs.stats[1].Tick).To(BeEquivalentTo(1))
		})
	})

	Describe("pointer push", func() {
		It("only acts while the pointer is active", func() {
			p := still(410, 300, 5)
			loop.Add(p)
			params.Gravity = 0
			params.Mouse = particle.V(400, 300)

			loop.Tick(&params, nil)
			Expect(loop.Particles()[0].Vel.X).To(BeZero())

			params.MouseActive = true
			loop.Tick(&params, nil)
			Expect(loop.Particles()[0].Vel.X).To(BeNumerically("~", 5, 1e-9))
		})
	})

	Describe("colour cycling", func() {
		cycled := particle.RGB{R: 10, G: 20, B: 30}

		It("overwrites the spawn colour when enabled", func() {
			loop = sim.New(sim.Config{Colors: fixedColor{cycled, true}})
			loop.Add(still(400, 300, 5))

			loop.Tick(&params, nil)
			Expect(params.Color).To(Equal(particle.White))

			params.CycleColors = true
			loop.Tick(&params, nil)
			Expect(params.Color).To(Equal(cycled))
			Expect(loop.Particles()[0].Color).To(Equal(particle.White))
		})

		It("leaves the colour alone before the first published value", func() {
			loop = sim.New(sim.Config{Colors: fixedColor{}})
			params.CycleColors = true
			loop.Tick(&params, nil)
			Expect(params.Color).To(Equal(particle.White))
		})

		It("repaints live particles when configured to", func() {
			loop = sim.New(sim.Config{Colors: fixedColor{cycled, true}, RecolorLive: true})
			loop.Add(still(400, 300, 5))
			params.CycleColors = true

			r := &recorder{}
			loop.Tick(&params, r)

			Expect(loop.Particles()[0].Color).To(Equal(cycled))
			Expect(r.circles[0].c).To(Equal(cycled))
		})
	})

	It("keeps survivors inside the area with bounded vertical speed", func() {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 50; i++ {
			loop.Spawn(particle.V(rng.Float64()*800, rng.Float64()*600), 1+rng.Float64()*19, particle.White)
		}

		loop.Run(&params, 1000)

		for _, p := range loop.Particles() {
			Expect(p.Pos.Y).To(BeNumerically(">=", 0))
			Expect(p.Pos.Y).To(BeNumerically("<=", 600))
			Expect(math.Abs(p.Vel.Y)).To(BeNumerically("<=", 10))
		}
	})
})

var _ = Describe("Pacer", func() {
	It("owes one step immediately and then one per interval", func() {
		p := sim.NewPacer(10*time.Millisecond, 0)
		t0 := time.Unix(0, 0)

		Expect(p.Due(t0)).To(Equal(1))
		Expect(p.Due(t0.Add(5 * time.Millisecond))).To(Equal(0))
		Expect(p.Due(t0.Add(25 * time.Millisecond))).To(Equal(2))
		Expect(p.Due(t0.Add(30 * time.Millisecond))).To(Equal(1))
	})

	It("drops backlog beyond the cap", func() {
		p := sim.NewPacer(time.Millisecond, 16)
		t0 := time.Unix(0, 0)
		p.Due(t0)

		Expect(p.Due(t0.Add(time.Second))).To(Equal(16))
		Expect(p.Due(t0.Add(time.Second + time.Millisecond))).To(Equal(1))
	})

	It("restarts after reset", func() {
		p := sim.NewPacer(time.Millisecond, 0)
		p.Due(time.Unix(0, 0))
		p.Reset()
		Expect(p.Due(time.Unix(100, 0))).To(Equal(1))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs independent seeded sessions", func() {
		e := sim.NewEnsemble(4, 100)
		setup := func(l *sim.Loop, p *sim.Params) {
			for i := 0; i < 10; i++ {
				l.Spawn(particle.V(400, 300), 5, particle.White)
			}
		}

		results, err := e.Run(context.Background(), sim.Config{}, defaultParams(), 20, setup)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for i, r := range results {
			Expect(r.Seed).To(BeEquivalentTo(100 + i))
			Expect(r.Last.Tick).To(BeEquivalentTo(19))
		}
		Expect(results[0].Particles).NotTo(Equal(results[1].Particles))
	})

	It("stops on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := sim.NewEnsemble(2, 0).Run(ctx, sim.Config{}, defaultParams(), 10, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})
