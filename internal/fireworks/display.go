package fireworks

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrNoSurface    = errors.New("fireworks: no rendering surface")
	ErrNoFrameClock = errors.New("fireworks: no frame clock")
)

// intensityScale is the particle count of an explosion at unit loudness.
const intensityScale = 60.0

// State is the lifecycle state of a Display.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sound receives launch and explosion events. Implementations must not
// block; the return value reports whether anything was played.
type Sound interface {
	Launch(x, width float64) bool
	Explosion(x, width, intensity float64) bool
}

type silence struct{}

func (silence) Launch(float64, float64) bool             { return false }
func (silence) Explosion(float64, float64, float64) bool { return false }

// Options configures a Display.
type Options struct {
	Surface Surface
	Clock   FrameClock
	// Defaults to a MonotonicClock
	Time TimeSource
	// Nil plays nothing
	Sound Sound

	Tuning  config.Tuning
	Palette []string

	Width   int
	Height  int
	Density float64
}

// Stats is a snapshot of display counters.
type Stats struct {
	State       State
	Projectiles int
	Particles   int
	Launches    uint64
	Explosions  uint64
	Evicted     uint64
}

type viewport struct {
	width, height int
	density       float64
}

// Display runs the show: it owns the entities, drives the tick loop on a
// FrameClock and forwards launch/explosion events to Sound.
// All methods must be called from the goroutine that drives the clock.
type Display struct {
	state State

	world     *World
	renderer  *Renderer
	scheduler Scheduler
	deferred  Deferred

	clock FrameClock
	frame FrameHandle
	time  TimeSource
	sound Sound

	tuning  config.Tuning
	palette []color.NRGBA

	requested viewport
	resizeGen uint64

	launches   uint64
	explosions uint64
}

// New creates an idle display. A missing surface or frame clock is fatal.
func New(opts Options) (*Display, error) {
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Clock == nil {
		return nil, ErrNoFrameClock
	}

	palette, err := parsePalette(opts.Palette)
	if err != nil {
		return nil, err
	}

	d := &Display{
		world:     NewWorld(opts.Tuning),
		renderer:  NewRenderer(opts.Surface, opts.Tuning.MaxDensity),
		scheduler: NewScheduler(opts.Tuning.LaunchInterval),
		clock:     opts.Clock,
		time:      opts.Time,
		sound:     opts.Sound,
		tuning:    opts.Tuning,
		palette:   palette,
	}
	if d.time == nil {
		d.time = NewMonotonicClock()
	}
	if d.sound == nil {
		d.sound = silence{}
	}

	d.requested = viewport{opts.Width, opts.Height, opts.Density}
	d.applyResize(d.requested)
	return d, nil
}

func parsePalette(hexes []string) ([]color.NRGBA, error) {
	if len(hexes) == 0 {
		hexes = config.DefaultPalette
	}
	palette := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("fireworks: palette color %q: %w", h, err)
		}
		r, g, b := c.Clamped().RGB255()
		palette = append(palette, color.NRGBA{R: r, G: g, B: b, A: 0xff})
	}
	return palette, nil
}

// Start moves an idle display to running: it performs the initial launch
// and begins ticking.
func (d *Display) Start() {
	if d.state != StateIdle {
		return
	}
	d.setState(StateRunning)

	now := d.time.Now()
	d.scheduler.Reset()
	d.maybeLaunch(now)
	d.requestFrame()
}

// Pause stops ticking without touching entity state.
func (d *Display) Pause() {
	if d.state != StateRunning {
		return
	}
	d.setState(StatePaused)
	d.clock.CancelFrame(d.frame)
	d.frame = 0
}

// Resume continues a paused display from its current entities. The next
// autonomous launch is pushed a short offset into the future so no
// backlog of launches is released at once.
func (d *Display) Resume() {
	if d.state != StatePaused {
		return
	}
	d.setState(StateRunning)
	d.scheduler.DelayUntil(d.time.Now() + d.tuning.ResumeOffset)
	d.requestFrame()
}

// Stop ends the show for good.
func (d *Display) Stop() {
	if d.state == StateStopped {
		return
	}
	d.setState(StateStopped)
	d.clock.CancelFrame(d.frame)
	d.frame = 0
}

// Resize requests a new logical size and pixel density. While running,
// requests are debounced; otherwise they apply immediately.
func (d *Display) Resize(width, height int, density float64) {
	req := viewport{width, height, density}
	if req == d.requested {
		return
	}
	d.requested = req
	// Any pending debounced resize is now stale.
	d.resizeGen++

	if d.state != StateRunning || d.tuning.ResizeDebounce <= 0 {
		d.applyResize(req)
		if d.state == StatePaused {
			d.Render()
		}
		return
	}

	gen := d.resizeGen
	d.deferred.Schedule(d.time.Now()+d.tuning.ResizeDebounce, func(time.Duration) {
		if gen == d.resizeGen {
			d.applyResize(req)
		}
	})
}

func (d *Display) applyResize(v viewport) {
	if !d.renderer.Resize(v.width, v.height, v.density) {
		Logger().Debug("ignoring resize", "width", v.width, "height", v.height)
		return
	}
	Logger().Debug("surface resized", "width", v.width, "height", v.height, "density", d.renderer.Density())
}

// Launch fires one projectile now, possibly followed by a delayed second
// one.
func (d *Display) Launch() {
	d.launch(d.time.Now())
}

// Render redraws the current state without advancing it.
func (d *Display) Render() {
	d.renderer.Draw(d.world)
}

// State returns the lifecycle state.
func (d *Display) State() State { return d.state }

// Stats returns a snapshot of the display counters.
func (d *Display) Stats() Stats {
	return Stats{
		State:       d.state,
		Projectiles: len(d.world.Projectiles),
		Particles:   len(d.world.Particles),
		Launches:    d.launches,
		Explosions:  d.explosions,
		Evicted:     d.world.Evicted(),
	}
}

func (d *Display) setState(s State) {
	Logger().Info("display state", "from", d.state, "to", s)
	d.state = s
}

func (d *Display) requestFrame() {
	d.frame = d.clock.RequestFrame(d.tick)
}

// tick is one simulation and render pass.
func (d *Display) tick(now time.Duration) {
	d.frame = 0
	if d.state != StateRunning {
		return
	}

	d.deferred.Drain(now)
	d.maybeLaunch(now)

	width, _ := d.renderer.Size()
	for _, e := range d.world.Step() {
		d.explosions++
		Logger().Debug("explosion", "x", e.At.X, "y", e.At.Y, "particles", e.Particles)
		d.sound.Explosion(e.At.X, float64(width), float64(e.Particles)/intensityScale)
	}

	d.renderer.Draw(d.world)
	d.requestFrame()
}

func (d *Display) maybeLaunch(now time.Duration) {
	if !d.scheduler.ShouldLaunch(now) {
		return
	}
	d.launch(now)
	d.scheduler.ScheduleNext(now)
}

func (d *Display) launch(now time.Duration) {
	d.spawn()

	if d.tuning.CompoundChance > 0 && rand.Float64() < d.tuning.CompoundChance {
		d.deferred.Schedule(now+randomDuration(d.tuning.CompoundDelay), func(time.Duration) {
			d.spawn()
		})
	}
}

func (d *Display) spawn() {
	width, height := d.renderer.Size()
	c := d.palette[rand.IntN(len(d.palette))]
	p := NewProjectile(float64(width), float64(height), d.tuning, c)

	d.world.AddProjectile(p)
	d.launches++
	Logger().Debug("launch", "x", p.Pos.X, "target_x", p.Target.X, "target_y", p.Target.Y)
	d.sound.Launch(p.Pos.X, float64(width))
}
