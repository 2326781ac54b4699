package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/minigames/internal/core"
)

// Particle is a cosmetic spark. It never collides.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Life  float64 // Seconds remaining
	Color core.Color
}

// Particles is a pool of cosmetic particles with its own seeded RNG,
// so effects never disturb gameplay randomness.
type Particles struct {
	list []Particle
	rng  *rand.Rand
	drag float64
}

// NewParticles creates an empty particle pool.
func NewParticles(seed int64) *Particles {
	return &Particles{
		list: make([]Particle, 0, 64),
		rng:  rand.New(rand.NewSource(seed)),
		drag: 2.0,
	}
}

// Reset clears every particle and reseeds.
func (p *Particles) Reset(seed int64) {
	p.list = p.list[:0]
	p.rng = rand.New(rand.NewSource(seed))
}

// Burst spawns n particles radiating from at.
func (p *Particles) Burst(at core.Vec2, n int, speed, life float64, color core.Color) {
	for range n {
		angle := p.rng.Float64() * 2 * math.Pi
		s := speed * (0.5 + p.rng.Float64()*0.5)
		p.list = append(p.list, Particle{
			Pos:   at,
			Vel:   core.V(math.Cos(angle)*s, math.Sin(angle)*s),
			Life:  life * (0.5 + p.rng.Float64()*0.5),
			Color: color,
		})
	}
}

// Update moves particles, applies drag and drops expired ones.
func (p *Particles) Update(dt float64) {
	alive := p.list[:0]
	damp := math.Max(0, 1-p.drag*dt)
	for _, pt := range p.list {
		pt.Life -= dt
		if pt.Life <= 0 {
			continue
		}
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(dt))
		pt.Vel = pt.Vel.Scale(damp)
		alive = append(alive, pt)
	}
	p.list = alive
}

// All returns the live particles.
func (p *Particles) All() []Particle {
	return p.list
}

// Len returns the number of live particles.
func (p *Particles) Len() int {
	return len(p.list)
}
