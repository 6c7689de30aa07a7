package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	WindowWidth  = 1600
	WindowHeight = 900

	// Launcher background, also used to clear the drawing surface
	Background = "#03112f"

	// Audio output
	DefaultSampleRate   = 44100
	DefaultMasterVolume = 1.0
	SpeakerBufferWindow = time.Second / 20

	// Debug HUD level meter
	LevelWindow    = 2048
	LevelSmoothing = 0.6
)

// ErrInvalid is returned by Validate for out-of-range or malformed settings.
var ErrInvalid = errors.New("invalid config")

// DefaultPalette is the set of firework colors.
var DefaultPalette = []string{"#f4d77b", "#8be9ff", "#ff91d0", "#7eb6ff", "#c2ff9a", "#ffd1a8"}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// DurationRange is a closed interval of durations sampled uniformly.
type DurationRange struct {
	Min, Max time.Duration
}

// Tuning holds every simulation constant that shapes how the show feels.
type Tuning struct {
	LaunchInterval DurationRange

	// Chance of a delayed second projectile per launch; zero disables it
	CompoundChance float64
	CompoundDelay  DurationRange

	// ParticleCount is used when FixedParticles is zero
	ParticleCount  Range
	FixedParticles int
	ParticleCap    int
	TrailLength    int

	ProjectileSpeed Range
	OriginBand      Range // fraction of surface width
	TargetSpread    float64
	TargetBand      Range // fraction of surface height
	SpawnOffset     float64

	ParticleForce Range
	Gravity       float64
	Friction      float64
	Decay         Range
	ParticleSize  Range

	// Audio crackle layers on explosions
	Crackle bool

	ResumeOffset   time.Duration
	ResizeDebounce time.Duration
	MaxDensity     float64
}

// Normal returns the full-motion tuning.
func Normal() Tuning {
	return Tuning{
		LaunchInterval:  DurationRange{680 * time.Millisecond, 1400 * time.Millisecond},
		CompoundChance:  0.4,
		CompoundDelay:   DurationRange{120 * time.Millisecond, 260 * time.Millisecond},
		ParticleCount:   Range{44, 82},
		ParticleCap:     1400,
		TrailLength:     7,
		ProjectileSpeed: Range{3.6, 5.1},
		OriginBand:      Range{0.1, 0.9},
		TargetSpread:    80,
		TargetBand:      Range{0.1, 0.55},
		SpawnOffset:     10,
		ParticleForce:   Range{1.3, 5.8},
		Gravity:         0.045,
		Friction:        0.985,
		Decay:           Range{0.012, 0.022},
		ParticleSize:    Range{1.5, 3.1},
		Crackle:         true,
		ResumeOffset:    250 * time.Millisecond,
		ResizeDebounce:  120 * time.Millisecond,
		MaxDensity:      2,
	}
}

// ReducedMotion returns the tuning used when the viewer prefers less motion:
// fewer particles, slower launches, no salvos and no crackle.
func ReducedMotion() Tuning {
	t := Normal()
	t.LaunchInterval = DurationRange{1800 * time.Millisecond, 2800 * time.Millisecond}
	t.CompoundChance = 0
	t.FixedParticles = 18
	t.Crackle = false
	return t
}

// Config is the full runtime configuration of a display.
type Config struct {
	ReducedMotion bool
	Kiosk         bool
	Debug         bool

	Width   int
	Height  int
	Palette []string

	MasterVolume float64
	SampleRate   int
	// Open the audio output at startup instead of waiting for input
	Autoplay bool
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Width:        WindowWidth,
		Height:       WindowHeight,
		Palette:      append([]string(nil), DefaultPalette...),
		MasterVolume: DefaultMasterVolume,
		SampleRate:   DefaultSampleRate,
		Autoplay:     true,
	}
}

// Tuning returns the preset selected by the reduced-motion preference.
func (c *Config) Tuning() Tuning {
	if c.ReducedMotion {
		return ReducedMotion()
	}
	return Normal()
}

// Load loads configuration from environment variables on top of Default
func Load() *Config {
	cfg := Default()

	if v := os.Getenv("FIREWORKS_REDUCED_MOTION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ReducedMotion = b
		}
	}

	// 0-100 converted to 0.0-1.0
	if v := os.Getenv("FIREWORKS_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MasterVolume = clamp(float64(n)/100.0, 0, 1)
		}
	}

	if v := os.Getenv("FIREWORKS_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleRate = n
		}
	}

	if v := os.Getenv("FIREWORKS_PALETTE"); v != "" {
		var palette []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				palette = append(palette, p)
			}
		}
		if len(palette) > 0 {
			cfg.Palette = palette
		}
	}

	return cfg
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalid)
	}
	for _, p := range c.Palette {
		if _, err := colorful.Hex(p); err != nil {
			return fmt.Errorf("%w: palette color %q: %v", ErrInvalid, p, err)
		}
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("%w: master volume %.2f", ErrInvalid, c.MasterVolume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.SampleRate)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
