package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
	"github.com/iburimskiy/fireworks/internal/game"
	"github.com/iburimskiy/fireworks/internal/sound"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"
)

const windowTitle = "Fireworks"

func main() {
	cfg := config.Load()

	flag.BoolVar(&cfg.Kiosk, "kiosk", cfg.Kiosk, "run fullscreen")
	flag.BoolVar(&cfg.ReducedMotion, "reduced-motion", cfg.ReducedMotion, "fewer particles, slower launches, no crackle")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging and HUD")
	flag.BoolVar(&cfg.Autoplay, "autoplay", cfg.Autoplay, "open audio at startup instead of on first input")
	volume := flag.Int("volume", -1, "master volume 0-100")
	muted := flag.Bool("muted", false, "disable audio")
	flag.Parse()

	if *volume >= 0 {
		cfg.MasterVolume = float64(*volume) / 100
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fireworks.SetLogger(logger)
	sound.SetLogger(logger)

	if err := run(cfg, *muted, logger); err != nil {
		logger.Error("fireworks failed", "err", err)
		_ = zenity.Error(err.Error(), zenity.Title(windowTitle), zenity.ErrorIcon)
		os.Exit(1)
	}
}

func run(cfg *config.Config, muted bool, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	bg, err := colorful.Hex(config.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	r, g, b := bg.RGB255()

	tap := game.NewLevelTap(config.LevelWindow)
	var device sound.Device = sound.Unavailable
	if !muted {
		device = sound.SpeakerDevice{
			SampleRate: beep.SampleRate(cfg.SampleRate),
			BufferSize: config.SpeakerBufferWindow,
			Wrap:       tap.Wrap,
		}
	}
	tuning := cfg.Tuning()
	engine := sound.NewEngine(device, sound.Config{Crackle: tuning.Crackle, MasterVolume: cfg.MasterVolume})
	defer engine.Close()
	if cfg.Autoplay {
		engine.Unlock()
	}

	surface := game.NewSurface(color.NRGBA{R: r, G: g, B: b, A: 0xff})
	clock := fireworks.NewStepClock()
	timeSource := fireworks.NewMonotonicClock()

	display, err := fireworks.New(fireworks.Options{
		Surface: surface,
		Clock:   clock,
		Time:    timeSource,
		Sound:   engine,
		Tuning:  tuning,
		Palette: cfg.Palette,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Density: 1,
	})
	if err != nil {
		return err
	}

	gm, err := game.New(game.Options{
		Display: display,
		Surface: surface,
		Clock:   clock,
		Time:    timeSource,
		Audio:   engine,
		Level:   tap,
		Debug:   cfg.Debug,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	if cfg.Kiosk {
		ebiten.SetFullscreen(true)
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	logger.Info("starting", "reduced_motion", cfg.ReducedMotion, "kiosk", cfg.Kiosk, "muted", muted)
	if err := ebiten.RunGame(gm); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
