package fireworks

import (
	"image/color"

	"github.com/iburimskiy/fireworks/internal/config"
)

// Outcome tells the simulation what to do with an entity after an update.
type Outcome int

const (
	Continue Outcome = iota
	Explode
	Remove
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Explode:
		return "explode"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Projectile is a firework rising toward its burst point.
type Projectile struct {
	Origin Point
	Pos    Point
	Target Point
	Speed  float64
	Color  color.NRGBA
	Trail  Trail

	exploded bool
}

// NewProjectile launches a projectile from below the bottom edge of a
// width x height surface toward a random point in the upper-middle band.
func NewProjectile(width, height float64, t config.Tuning, c color.NRGBA) Projectile {
	x := randomBetween(width*t.OriginBand.Min, width*t.OriginBand.Max)
	origin := Point{x, height + t.SpawnOffset}
	return Projectile{
		Origin: origin,
		Pos:    origin,
		Target: Point{
			X: x + randomBetween(-t.TargetSpread, t.TargetSpread),
			Y: randomBetween(height*t.TargetBand.Min, height*t.TargetBand.Max),
		},
		Speed: randomIn(t.ProjectileSpeed),
		Color: c,
		Trail: NewTrail(t.TrailLength),
	}
}

// Advance returns the projectile one tick later. The current position is
// recorded in the trail first; if the target is closer than one step the
// projectile explodes where it stands. An exploded projectile only ever
// reports Remove afterwards.
func (p Projectile) Advance() (Projectile, Outcome) {
	if p.exploded {
		return p, Remove
	}

	p.Trail = p.Trail.Push(p.Pos)

	delta := p.Target.Sub(p.Pos)
	distance := delta.Len()
	if distance < p.Speed {
		p.exploded = true
		return p, Explode
	}

	p.Pos = p.Pos.Add(delta.Mul(p.Speed / distance))
	return p, Continue
}

// Exploded reports whether the projectile has reached its target.
func (p Projectile) Exploded() bool { return p.exploded }
