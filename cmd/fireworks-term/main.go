// Command fireworks-term runs the display in a terminal using half-block
// cells, with audio through the system speaker.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
	"github.com/iburimskiy/fireworks/internal/sound"
	"github.com/iburimskiy/fireworks/internal/term"
)

const frameInterval = 16 * time.Millisecond

type app struct {
	screen  tcell.Screen
	surface *term.Surface
	display *fireworks.Display
	clock   *fireworks.StepClock
	time    fireworks.TimeSource
	engine  *sound.Engine
}

func main() {
	cfg := config.Load()
	muted := flag.Bool("muted", false, "disable audio")
	logPath := flag.String("log", "", "write logs to this file")
	flag.BoolVar(&cfg.ReducedMotion, "reduced-motion", cfg.ReducedMotion, "fewer particles, slower launches, no crackle")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")
	flag.Parse()

	// The terminal owns stdout and stderr while running
	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}
	fireworks.SetLogger(logger)
	sound.SetLogger(logger)

	if err := run(cfg, *muted); err != nil {
		logger.Error("fireworks-term failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, muted bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableFocus()
	screen.EnableMouse()
	screen.HideCursor()

	a, err := newApp(screen, cfg, muted)
	if err != nil {
		return err
	}
	defer a.engine.Close()
	if cfg.Autoplay {
		a.engine.Unlock()
	}
	a.loop()
	return nil
}

func newApp(screen tcell.Screen, cfg *config.Config, muted bool) (*app, error) {
	surface, err := term.New(screen, config.Background)
	if err != nil {
		return nil, err
	}

	var device sound.Device = sound.Unavailable
	if !muted {
		device = sound.SpeakerDevice{
			SampleRate: beep.SampleRate(cfg.SampleRate),
			BufferSize: config.SpeakerBufferWindow,
		}
	}
	tuning := cfg.Tuning()
	engine := sound.NewEngine(device, sound.Config{Crackle: tuning.Crackle, MasterVolume: cfg.MasterVolume})

	cols, rows := screen.Size()
	width, height := term.LogicalSize(cols, rows)
	clock := fireworks.NewStepClock()
	timeSource := fireworks.NewMonotonicClock()

	display, err := fireworks.New(fireworks.Options{
		Surface: surface,
		Clock:   clock,
		Time:    timeSource,
		Sound:   engine,
		Tuning:  tuning,
		Palette: cfg.Palette,
		Width:   width,
		Height:  height,
		Density: term.Density,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		screen:  screen,
		surface: surface,
		display: display,
		clock:   clock,
		time:    timeSource,
		engine:  engine,
	}, nil
}

func (a *app) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.display.Start()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handle(ev) {
				a.display.Stop()
				return
			}
		case <-ticker.C:
			if a.clock.Advance(a.time.Now()) {
				a.surface.Show()
			}
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return false
		}
		a.engine.Unlock()
		if ev.Rune() == ' ' {
			a.togglePause()
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			a.engine.Unlock()
		}
	case *tcell.EventFocus:
		if ev.Focused {
			a.display.Resume()
		} else {
			a.display.Pause()
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		width, height := term.LogicalSize(cols, rows)
		a.display.Resize(width, height, term.Density)
		if a.display.State() == fireworks.StatePaused {
			a.surface.Show()
		}
		a.screen.Sync()
	}
	return true
}

func (a *app) togglePause() {
	switch a.display.State() {
	case fireworks.StateRunning:
		a.display.Pause()
	case fireworks.StatePaused:
		a.display.Resume()
		a.surface.Show()
	}
}
