// Command fireworks-snapshot runs the display headless for a number of
// simulated frames, writing PNG frames and a WAV of the synthesized audio.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/iburimskiy/fireworks/internal/canvas"
	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
	"github.com/iburimskiy/fireworks/internal/sound"
)

const frameDuration = time.Second / 60

// stepTime is a time source advanced by whole frames.
type stepTime struct{ now time.Duration }

func (t *stepTime) Now() time.Duration { return t.now }

type options struct {
	frames  int
	every   int
	outDir  string
	wavPath string
	density float64
}

func main() {
	cfg := config.Load()
	var opts options

	flag.IntVar(&opts.frames, "frames", 600, "number of frames to simulate")
	flag.IntVar(&opts.every, "every", 30, "write a PNG every n frames, 0 for none")
	flag.StringVar(&opts.outDir, "out", "snapshots", "PNG output directory")
	flag.StringVar(&opts.wavPath, "wav", "", "write the audio to this WAV file")
	flag.Float64Var(&opts.density, "density", 1, "pixel density")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "logical width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "logical height")
	flag.BoolVar(&cfg.ReducedMotion, "reduced-motion", cfg.ReducedMotion, "fewer particles, slower launches, no crackle")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fireworks.SetLogger(logger)
	sound.SetLogger(logger)

	if err := run(cfg, opts, logger); err != nil {
		logger.Error("snapshot failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, opts options, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.frames <= 0 {
		return fmt.Errorf("%w: frames %d", config.ErrInvalid, opts.frames)
	}
	if opts.every > 0 {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return err
		}
	}

	surface := canvas.New(config.Background)
	defer surface.Close()

	tuning := cfg.Tuning()
	rec := sound.NewRecorder(beep.SampleRate(cfg.SampleRate))
	engine := sound.NewEngine(rec, sound.Config{Crackle: tuning.Crackle, MasterVolume: cfg.MasterVolume})
	defer engine.Close()
	engine.Unlock()

	clock := fireworks.NewStepClock()
	now := &stepTime{}
	display, err := fireworks.New(fireworks.Options{
		Surface: surface,
		Clock:   clock,
		Time:    now,
		Sound:   engine,
		Tuning:  tuning,
		Palette: cfg.Palette,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Density: opts.density,
	})
	if err != nil {
		return err
	}

	capture := beep.NewBuffer(rec.Format())
	display.Start()
	for i := 1; i <= opts.frames; i++ {
		now.now += frameDuration
		clock.Advance(now.now)
		capture.Append(beep.Take(rec.SampleRate().N(frameDuration), rec))

		if opts.every > 0 && i%opts.every == 0 {
			path := filepath.Join(opts.outDir, fmt.Sprintf("frame-%05d.png", i))
			if err := surface.SavePNG(path); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
		}
	}
	display.Stop()

	st := display.Stats()
	logger.Info("simulation done", "frames", opts.frames, "launches", st.Launches, "explosions", st.Explosions, "particles", st.Particles)

	if opts.wavPath == "" {
		return nil
	}
	return writeWAV(opts.wavPath, capture)
}

func writeWAV(path string, capture *beep.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wav.Encode(f, capture.Streamer(0, capture.Len()), capture.Format()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
