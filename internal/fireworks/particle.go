package fireworks

import (
	"image/color"
	"math"

	"github.com/iburimskiy/fireworks/internal/config"
)

// Particle is one decaying point of light from an explosion.
type Particle struct {
	Pos      Point
	Vel      Point
	Gravity  float64
	Friction float64
	Alpha    float64
	Decay    float64
	Size     float64
	Color    color.NRGBA
}

// NewParticle creates a particle at pos moving in a random direction.
func NewParticle(pos Point, c color.NRGBA, t config.Tuning) Particle {
	angle := randomBetween(0, math.Pi*2)
	force := randomIn(t.ParticleForce)

	return Particle{
		Pos:      pos,
		Vel:      Point{math.Cos(angle) * force, math.Sin(angle) * force},
		Gravity:  t.Gravity,
		Friction: t.Friction,
		Alpha:    1,
		Decay:    randomIn(t.Decay),
		Size:     randomIn(t.ParticleSize),
		Color:    c,
	}
}

// Advance applies friction, gravity and fade for one tick.
// Remove is returned on the tick opacity reaches zero.
func (p Particle) Advance() (Particle, Outcome) {
	p.Vel = p.Vel.Mul(p.Friction)
	p.Vel.Y += p.Gravity
	p.Pos = p.Pos.Add(p.Vel)
	p.Alpha -= p.Decay

	if p.Alpha <= 0 {
		return p, Remove
	}
	return p, Continue
}

// particleCount picks how many particles one explosion produces.
func particleCount(t config.Tuning) int {
	if t.FixedParticles > 0 {
		return t.FixedParticles
	}
	return int(math.Floor(randomIn(t.ParticleCount)))
}
