package config

import (
	"errors"
	"testing"
	"time"
)

func TestNormalTuning(t *testing.T) {
	tu := Normal()

	if tu.LaunchInterval.Min != 680*time.Millisecond || tu.LaunchInterval.Max != 1400*time.Millisecond {
		t.Errorf("Expected launch interval 680-1400ms, got %v-%v", tu.LaunchInterval.Min, tu.LaunchInterval.Max)
	}
	if tu.CompoundChance != 0.4 {
		t.Errorf("Expected compound chance 0.4, got %f", tu.CompoundChance)
	}
	if tu.FixedParticles != 0 {
		t.Errorf("Expected random particle count, got fixed %d", tu.FixedParticles)
	}
	if tu.ParticleCap != 1400 {
		t.Errorf("Expected particle cap 1400, got %d", tu.ParticleCap)
	}
	if tu.TrailLength != 7 {
		t.Errorf("Expected trail length 7, got %d", tu.TrailLength)
	}
	if tu.Friction >= 1 {
		t.Errorf("Friction must be below 1, got %f", tu.Friction)
	}
	if !tu.Crackle {
		t.Error("Expected crackle enabled in normal motion")
	}
}

func TestReducedMotionTuning(t *testing.T) {
	tu := ReducedMotion()

	if tu.LaunchInterval.Min != 1800*time.Millisecond || tu.LaunchInterval.Max != 2800*time.Millisecond {
		t.Errorf("Expected launch interval 1800-2800ms, got %v-%v", tu.LaunchInterval.Min, tu.LaunchInterval.Max)
	}
	if tu.CompoundChance != 0 {
		t.Errorf("Expected no compound launches, got chance %f", tu.CompoundChance)
	}
	if tu.FixedParticles != 18 {
		t.Errorf("Expected 18 particles, got %d", tu.FixedParticles)
	}
	if tu.Crackle {
		t.Error("Expected crackle disabled under reduced motion")
	}
	// Shared constants are untouched
	if tu.ParticleCap != Normal().ParticleCap {
		t.Errorf("Expected shared particle cap, got %d", tu.ParticleCap)
	}
}

func TestConfigTuningSelection(t *testing.T) {
	cfg := Default()
	if cfg.Tuning().FixedParticles != 0 {
		t.Error("Default config should select normal tuning")
	}
	cfg.ReducedMotion = true
	if cfg.Tuning().FixedParticles != 18 {
		t.Error("Reduced motion config should select reduced tuning")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FIREWORKS_REDUCED_MOTION", "true")
	t.Setenv("FIREWORKS_MASTER_VOLUME", "150")
	t.Setenv("FIREWORKS_SAMPLE_RATE", "48000")
	t.Setenv("FIREWORKS_PALETTE", " #ffffff, #000000 ,")

	cfg := Load()

	if !cfg.ReducedMotion {
		t.Error("Expected reduced motion from env")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("Expected sample rate 48000, got %d", cfg.SampleRate)
	}
	if len(cfg.Palette) != 2 || cfg.Palette[0] != "#ffffff" || cfg.Palette[1] != "#000000" {
		t.Errorf("Unexpected palette: %v", cfg.Palette)
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("FIREWORKS_REDUCED_MOTION", "maybe")
	t.Setenv("FIREWORKS_SAMPLE_RATE", "-5")

	cfg := Load()
	if cfg.ReducedMotion {
		t.Error("Unparseable bool should leave default")
	}
	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("Expected default sample rate, got %d", cfg.SampleRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"empty palette", func(c *Config) { c.Palette = nil }, false},
		{"bad color", func(c *Config) { c.Palette = []string{"#zzzzzz"} }, false},
		{"loud", func(c *Config) { c.MasterVolume = 1.5 }, false},
		{"no sample rate", func(c *Config) { c.SampleRate = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}
