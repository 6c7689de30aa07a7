package fireworks

import (
	"image/color"

	"github.com/iburimskiy/fireworks/internal/config"
)

// Explosion describes a projectile that burst during a step.
type Explosion struct {
	At        Point
	Color     color.NRGBA
	Particles int
}

// World owns the live entities of one display.
// Both containers are kept in insertion order.
type World struct {
	Projectiles []Projectile
	Particles   []Particle

	tuning  config.Tuning
	evicted uint64
}

// NewWorld returns an empty world using the given tuning.
func NewWorld(t config.Tuning) *World {
	return &World{tuning: t}
}

// AddProjectile appends a projectile to the live set.
func (w *World) AddProjectile(p Projectile) {
	w.Projectiles = append(w.Projectiles, p)
}

// Step advances every live entity by one tick and returns the explosions
// that happened. Projectiles are processed before particles so particles
// spawned this tick also move this tick. The particle cap is enforced
// last, evicting the oldest particles first.
func (w *World) Step() []Explosion {
	var explosions []Explosion

	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		next, outcome := p.Advance()
		switch outcome {
		case Continue:
			kept = append(kept, next)
		case Explode:
			explosions = append(explosions, Explosion{
				At:        next.Pos,
				Color:     next.Color,
				Particles: w.burst(next.Pos, next.Color),
			})
		}
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept

	live := w.Particles[:0]
	for _, p := range w.Particles {
		if next, outcome := p.Advance(); outcome == Continue {
			live = append(live, next)
		}
	}
	w.Particles = live

	if limit := w.tuning.ParticleCap; limit > 0 && len(w.Particles) > limit {
		n := len(w.Particles) - limit
		copy(w.Particles, w.Particles[n:])
		w.Particles = w.Particles[:limit]
		w.evicted += uint64(n)
		Logger().Debug("particle cap reached", "evicted", n)
	}

	return explosions
}

// burst spawns the particles of one explosion and returns how many.
func (w *World) burst(at Point, c color.NRGBA) int {
	n := particleCount(w.tuning)
	for i := 0; i < n; i++ {
		w.Particles = append(w.Particles, NewParticle(at, c, w.tuning))
	}
	return n
}

// Evicted returns the number of particles dropped by the cap so far.
func (w *World) Evicted() uint64 { return w.evicted }
