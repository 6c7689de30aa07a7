package fireworks

import (
	"testing"

	"github.com/iburimskiy/fireworks/internal/config"
)

func TestWorldExplosionSpawnsParticles(t *testing.T) {
	w := NewWorld(config.Normal())
	w.AddProjectile(Projectile{
		Origin: Point{100, 500},
		Pos:    Point{100, 500},
		Target: Point{120, 50},
		Speed:  5,
		Color:  gold,
		Trail:  NewTrail(7),
	})

	var explosions []Explosion
	for tick := 0; tick < 91 && len(explosions) == 0; tick++ {
		explosions = w.Step()
	}

	if len(explosions) != 1 {
		t.Fatalf("Expected one explosion within 91 ticks, got %d", len(explosions))
	}
	e := explosions[0]
	if e.Particles < 44 || e.Particles > 82 {
		t.Errorf("Expected 44-82 particles, got %d", e.Particles)
	}
	if len(w.Particles) != e.Particles {
		t.Errorf("Expected %d live particles, got %d", e.Particles, len(w.Particles))
	}
	for _, p := range w.Particles {
		if p.Color != gold {
			t.Fatalf("Particle color %v differs from projectile color", p.Color)
		}
	}
	if len(w.Projectiles) != 0 {
		t.Errorf("Expected exploded projectile removed, %d remain", len(w.Projectiles))
	}

	// Never explodes again
	for i := 0; i < 200; i++ {
		if got := w.Step(); len(got) != 0 {
			t.Fatalf("Unexpected second explosion: %v", got)
		}
	}
}

func TestWorldReducedMotionParticles(t *testing.T) {
	w := NewWorld(config.ReducedMotion())
	w.AddProjectile(Projectile{Pos: Point{0, 0}, Target: Point{1, 0}, Speed: 5, Trail: NewTrail(7)})

	ex := w.Step()
	if len(ex) != 1 || ex[0].Particles != 18 {
		t.Fatalf("Expected one explosion with 18 particles, got %v", ex)
	}
}

func TestWorldPreservesInsertionOrder(t *testing.T) {
	w := NewWorld(config.Normal())
	for i := 0; i < 5; i++ {
		w.AddProjectile(Projectile{
			Pos:    Point{float64(i * 100), 500},
			Target: Point{float64(i * 100), 0},
			Speed:  4,
			Trail:  NewTrail(7),
		})
	}
	// Middle one is about to burst
	w.Projectiles[2].Target = w.Projectiles[2].Pos

	w.Step()

	if len(w.Projectiles) != 4 {
		t.Fatalf("Expected 4 projectiles, got %d", len(w.Projectiles))
	}
	want := []float64{0, 100, 300, 400}
	for i, p := range w.Projectiles {
		if p.Pos.X != want[i] {
			t.Errorf("Projectile %d: expected x=%v, got %v", i, want[i], p.Pos.X)
		}
	}
}

func TestWorldParticleCapEvictsOldest(t *testing.T) {
	tu := config.Normal()
	tu.Decay = config.Range{Min: 0.001, Max: 0.001}
	w := NewWorld(tu)

	for i := 0; i < 1500; i++ {
		p := NewParticle(Point{}, gold, tu)
		p.Size = float64(i)
		w.Particles = append(w.Particles, p)
	}

	w.Step()

	if len(w.Particles) != 1400 {
		t.Fatalf("Expected 1400 particles, got %d", len(w.Particles))
	}
	if w.Particles[0].Size != 100 {
		t.Errorf("Expected oldest 100 evicted, first remaining size %v", w.Particles[0].Size)
	}
	if w.Evicted() != 100 {
		t.Errorf("Expected 100 evictions, got %d", w.Evicted())
	}
}

// Long random run checking the per-tick invariants.
func TestWorldInvariants(t *testing.T) {
	tu := config.Normal()
	w := NewWorld(tu)

	for tick := 0; tick < 2000; tick++ {
		w.AddProjectile(NewProjectile(1280, 720, tu, gold))
		w.Step()

		if len(w.Particles) > tu.ParticleCap {
			t.Fatalf("Tick %d: %d particles exceed cap", tick, len(w.Particles))
		}
		for _, p := range w.Particles {
			if p.Alpha <= 0 {
				t.Fatalf("Tick %d: particle with alpha %v survived", tick, p.Alpha)
			}
			if p.Alpha > 1 {
				t.Fatalf("Tick %d: particle alpha %v above 1", tick, p.Alpha)
			}
		}
		for _, p := range w.Projectiles {
			if p.Trail.Len() > tu.TrailLength {
				t.Fatalf("Tick %d: trail length %d", tick, p.Trail.Len())
			}
			if p.Exploded() {
				t.Fatalf("Tick %d: exploded projectile still live", tick)
			}
		}
	}

	if w.Evicted() == 0 {
		t.Error("Expected sustained launches to hit the particle cap")
	}
}
