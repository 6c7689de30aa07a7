package fireworks

import "time"

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// FrameClock delivers one callback per available display frame.
type FrameClock interface {
	RequestFrame(fn func(now time.Duration)) FrameHandle
	CancelFrame(h FrameHandle)
}

// TimeSource is a monotonic clock.
type TimeSource interface {
	Now() time.Duration
}

// MonotonicClock measures time since its creation.
type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// StepClock is a FrameClock fed by an outer loop: the loop calls Advance
// once per frame and the pending callback, if any, runs there.
// It holds at most one request, like a browser animation frame.
type StepClock struct {
	pending func(now time.Duration)
	handle  FrameHandle
	seq     FrameHandle
}

func NewStepClock() *StepClock {
	return &StepClock{}
}

func (c *StepClock) RequestFrame(fn func(now time.Duration)) FrameHandle {
	c.seq++
	c.pending = fn
	c.handle = c.seq
	return c.handle
}

func (c *StepClock) CancelFrame(h FrameHandle) {
	if h == c.handle {
		c.pending = nil
		c.handle = 0
	}
}

// Pending reports whether a frame has been requested.
func (c *StepClock) Pending() bool { return c.pending != nil }

// Advance runs the pending callback with now. It reports whether one ran.
func (c *StepClock) Advance(now time.Duration) bool {
	fn := c.pending
	if fn == nil {
		return false
	}
	c.pending = nil
	c.handle = 0
	fn(now)
	return true
}
