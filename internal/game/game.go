// Package game runs a fireworks display inside an ebiten window. The ebiten
// update loop is the frame clock; minimizing the window pauses the display.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
)

const (
	hudX = 12
	hudY = 12

	levelBarWidth  = 160
	levelBarHeight = 6
)

// Unlocker is the audio unlock gesture target, normally a *sound.Engine.
type Unlocker interface {
	Unlock() bool
}

// Options wires a Game.
type Options struct {
	Display *fireworks.Display
	Surface *Surface
	Clock   *fireworks.StepClock
	Time    fireworks.TimeSource

	// Audio is unlocked on the first key, click or touch
	Audio Unlocker
	// Level feeds the HUD level meter, optional
	Level *LevelTap

	Debug bool
	// Density reports the device scale factor; defaults to the monitor's
	Density func() float64
}

// Game implements ebiten.Game.
type Game struct {
	display *fireworks.Display
	surface *Surface
	clock   *fireworks.StepClock
	time    fireworks.TimeSource
	audio   Unlocker
	level   *LevelTap
	density func() float64

	debug    bool
	meter    float64
	unlocked bool
	hidden   bool
	started  time.Duration

	// paused with Space; un-hiding leaves it paused
	userPaused bool
}

// input is what Update read from ebiten this tick.
type input struct {
	gesture     bool
	quit        bool
	toggleDebug bool
	togglePause bool
}

func New(opts Options) (*Game, error) {
	if opts.Display == nil || opts.Surface == nil || opts.Clock == nil {
		return nil, errors.New("game: display, surface and clock are required")
	}
	g := &Game{
		display: opts.Display,
		surface: opts.Surface,
		clock:   opts.Clock,
		time:    opts.Time,
		audio:   opts.Audio,
		level:   opts.Level,
		density: opts.Density,
		debug:   opts.Debug,
	}
	if g.time == nil {
		g.time = fireworks.NewMonotonicClock()
	}
	if g.density == nil {
		g.density = func() float64 { return ebiten.Monitor().DeviceScaleFactor() }
	}
	return g, nil
}

func (g *Game) Update() error {
	in := input{
		gesture: len(inpututil.AppendJustPressedKeys(nil)) > 0 ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			len(inpututil.AppendJustPressedTouchIDs(nil)) > 0,
		quit:        inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
		toggleDebug: inpututil.IsKeyJustPressed(ebiten.KeyF3),
		togglePause: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	return g.update(in, ebiten.IsWindowMinimized())
}

func (g *Game) update(in input, hidden bool) error {
	if in.quit {
		g.display.Stop()
		return ebiten.Termination
	}
	if in.gesture {
		g.unlock()
	}
	if in.toggleDebug {
		g.debug = !g.debug
	}

	now := g.time.Now()
	if g.display.State() == fireworks.StateIdle {
		g.started = now
		g.display.Start()
	}

	if hidden != g.hidden {
		g.hidden = hidden
		if hidden {
			g.display.Pause()
		} else if !g.userPaused {
			g.display.Resume()
		}
	}
	if in.togglePause && !g.hidden {
		switch g.display.State() {
		case fireworks.StateRunning:
			g.display.Pause()
			g.userPaused = true
		case fireworks.StatePaused:
			g.display.Resume()
			g.userPaused = false
		}
	}

	g.clock.Advance(now)
	return nil
}

func (g *Game) unlock() {
	if g.audio == nil || g.unlocked {
		return
	}
	g.unlocked = g.audio.Unlock()
}

// Unlocked reports whether audio has been unlocked.
func (g *Game) Unlocked() bool { return g.unlocked }

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Present(screen)

	if g.debug {
		g.drawHUD(screen)
	} else if g.audio != nil && !g.unlocked {
		ebitenutil.DebugPrintAt(screen, "Click or press any key for sound", hudX, hudY)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.display.Stats()
	lines := fmt.Sprintf("%s  %s\nprojectiles %d  particles %d\nlaunches %d  explosions %d  evicted %d",
		st.State, formatDuration(g.time.Now()-g.started),
		st.Projectiles, st.Particles,
		st.Launches, st.Explosions, st.Evicted)
	ebitenutil.DebugPrintAt(screen, lines, hudX, hudY)

	if g.level == nil {
		return
	}
	g.meter = config.LevelSmoothing*g.meter + (1-config.LevelSmoothing)*g.level.Level()
	level := min(max(g.meter*4, 0), 1)
	y := float32(hudY + 52)
	vector.DrawFilledRect(screen, hudX, y, levelBarWidth, levelBarHeight, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.DrawFilledRect(screen, hudX, y, float32(level*levelBarWidth), levelBarHeight, meterColor(level), false)
}

// Layout sizes the display to the window and returns the pixel buffer the
// display currently draws at. While a resize is debounced the previous
// buffer is kept and ebiten scales it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.display.Resize(outsideWidth, outsideHeight, g.density())

	w, h := g.surface.BufferSize()
	if w <= 0 || h <= 0 {
		return outsideWidth, outsideHeight
	}
	return w, h
}
