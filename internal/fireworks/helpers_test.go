package fireworks

import (
	"image/color"
	"time"
)

type drawOp struct {
	kind    string
	points  []Point
	center  Point
	radius  float64
	color   color.NRGBA
	width   float64
	opacity float64
}

// recordingSurface keeps the operations of the last frame.
type recordingSurface struct {
	width, height int
	scale         float64
	clears        int
	ops           []drawOp
}

func (s *recordingSurface) Resize(width, height int) { s.width, s.height = width, height }
func (s *recordingSurface) SetScale(scale float64)   { s.scale = scale }

func (s *recordingSurface) Clear() {
	s.clears++
	s.ops = s.ops[:0]
}

func (s *recordingSurface) DrawPolyline(points []Point, c color.NRGBA, width, opacity float64) {
	s.ops = append(s.ops, drawOp{
		kind:    "polyline",
		points:  append([]Point(nil), points...),
		color:   c,
		width:   width,
		opacity: opacity,
	})
}

func (s *recordingSurface) DrawDisc(center Point, radius float64, c color.NRGBA, opacity float64) {
	s.ops = append(s.ops, drawOp{kind: "disc", center: center, radius: radius, color: c, opacity: opacity})
}

// toPixel maps a logical point through the surface transform.
func (s *recordingSurface) toPixel(p Point) Point { return p.Mul(s.scale) }

type fakeTime struct {
	now time.Duration
}

func (t *fakeTime) Now() time.Duration { return t.now }

type launchEvent struct{ x, width float64 }

type explosionEvent struct{ x, width, intensity float64 }

type recordingSound struct {
	launches   []launchEvent
	explosions []explosionEvent
}

func (s *recordingSound) Launch(x, width float64) bool {
	s.launches = append(s.launches, launchEvent{x, width})
	return true
}

func (s *recordingSound) Explosion(x, width, intensity float64) bool {
	s.explosions = append(s.explosions, explosionEvent{x, width, intensity})
	return true
}

// harness drives a Display with a manual clock.
type harness struct {
	display *Display
	surface *recordingSurface
	clock   *StepClock
	time    *fakeTime
	sound   *recordingSound
}

func newHarness(t interface{ Fatalf(string, ...any) }, opts Options) *harness {
	h := &harness{
		surface: &recordingSurface{},
		clock:   NewStepClock(),
		time:    &fakeTime{now: time.Second},
		sound:   &recordingSound{},
	}
	opts.Surface = h.surface
	opts.Clock = h.clock
	opts.Time = h.time
	opts.Sound = h.sound
	if opts.Width == 0 {
		opts.Width, opts.Height, opts.Density = 800, 600, 1
	}

	d, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.display = d
	return h
}

// frame advances time by dt and delivers one frame if requested.
func (h *harness) frame(dt time.Duration) bool {
	h.time.now += dt
	return h.clock.Advance(h.time.now)
}

func (h *harness) run(frames int, dt time.Duration) {
	for i := 0; i < frames; i++ {
		h.frame(dt)
	}
}

const frameTime = time.Second / 60
