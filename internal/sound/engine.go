package sound

import (
	"sync"
	"sync/atomic"

	"github.com/faiface/beep"
)

// Config configures an Engine.
type Config struct {
	// Crackle enables the crackle layer of explosions
	Crackle bool
	// MasterVolume is a linear gain applied to every graph, 0 mutes
	MasterVolume float64
}

// Engine builds a short synthesis graph per sound event and hands it to
// the output. Every failure degrades to silence; nothing is returned to
// the caller but whether a graph was played.
type Engine struct {
	mu          sync.Mutex
	device      Device
	out         Output
	unavailable bool
	cfg         Config
	noise       noiseCache

	active atomic.Int64
}

// NewEngine returns an engine that opens device on the first Unlock.
// A nil device behaves like Unavailable.
func NewEngine(device Device, cfg Config) *Engine {
	if device == nil {
		device = Unavailable
	}
	return &Engine{device: device, cfg: cfg}
}

// Unlock opens the output if needed and resumes it when suspended. Call it
// from a user gesture. It reports whether the output is running.
func (e *Engine) Unlock() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out == nil {
		if e.unavailable {
			return false
		}
		out, err := e.device.Open()
		if err != nil {
			e.unavailable = true
			Logger().Warn("audio output unavailable", "err", err)
			return false
		}
		e.out = out
		Logger().Info("audio output opened", "rate", int(out.SampleRate()))
	}

	if e.out.State() == OutputSuspended {
		if err := e.out.Resume(); err != nil {
			Logger().Warn("audio output resume failed", "err", err)
			return false
		}
		Logger().Info("audio output resumed")
	}
	return e.out.State() == OutputRunning
}

// Launch plays the launch whistle panned by x across width.
func (e *Engine) Launch(x, width float64) bool {
	return e.play("launch", func(rate beep.SampleRate) beep.Streamer {
		return buildLaunch(rate, positionToPan(x, width))
	})
}

// Explosion plays a burst at x whose loudness follows intensity.
func (e *Engine) Explosion(x, width, intensity float64) bool {
	return e.play("explosion", func(rate beep.SampleRate) beep.Streamer {
		p := newExplosionParams(positionToPan(x, width), intensity, e.cfg.Crackle)
		return buildExplosion(rate, e.noise.get(rate), p)
	})
}

// Active returns the number of graphs still playing.
func (e *Engine) Active() int {
	return int(e.active.Load())
}

// Close closes the output and drops any graphs still playing. Later calls
// play nothing.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out == nil {
		return nil
	}
	out := e.out
	e.out = nil
	e.unavailable = true
	e.active.Store(0)
	return out.Close()
}

func (e *Engine) play(kind string, build func(beep.SampleRate) beep.Streamer) (played bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out == nil || e.out.State() != OutputRunning {
		return false
	}

	queued := false
	defer func() {
		if r := recover(); r != nil {
			if queued {
				e.active.Add(-1)
			}
			Logger().Warn("sound graph failed", "kind", kind, "panic", r)
			played = false
		}
	}()

	graph := build(e.out.SampleRate())
	if e.cfg.MasterVolume != 1 {
		graph = newVolume(graph, e.cfg.MasterVolume)
	}

	e.active.Add(1)
	queued = true
	e.out.Play(beep.Seq(graph, beep.Callback(func() {
		e.active.Add(-1)
	})))
	Logger().Debug("sound graph built", "kind", kind, "active", e.active.Load())
	return true
}
