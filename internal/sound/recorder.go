package sound

import (
	"sync"

	"github.com/faiface/beep"
)

// Recorder is an in-memory Device and Output. Nothing plays until the
// owner pulls samples through Stream or Render, which makes it usable for
// offline capture and tests.
type Recorder struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  beep.Mixer
	ctrl   beep.Ctrl
	state  OutputState
	played int
}

// NewRecorder returns a suspended recorder at rate.
func NewRecorder(rate beep.SampleRate) *Recorder {
	r := &Recorder{rate: rate, state: OutputSuspended}
	r.ctrl = beep.Ctrl{Streamer: &r.mixer, Paused: true}
	return r
}

// Open returns the recorder itself until it is closed.
func (r *Recorder) Open() (Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == OutputClosed {
		return nil, ErrUnavailable
	}
	return r, nil
}

func (r *Recorder) SampleRate() beep.SampleRate { return r.rate }

// Format is the stream format for encoders.
func (r *Recorder) Format() beep.Format {
	return beep.Format{SampleRate: r.rate, NumChannels: 2, Precision: 2}
}

func (r *Recorder) State() OutputState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Recorder) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == OutputClosed {
		return ErrUnavailable
	}
	r.state = OutputRunning
	r.ctrl.Paused = false
	return nil
}

func (r *Recorder) Play(s beep.Streamer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == OutputClosed {
		return
	}
	r.mixer.Add(s)
	r.played++
}

// Played returns how many graphs were handed to the recorder.
func (r *Recorder) Played() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.played
}

// Pending returns how many graphs have not finished streaming.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mixer.Len()
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = OutputClosed
	r.mixer.Clear()
	return nil
}

// Stream mixes every playing graph. It never runs out; a suspended or
// closed recorder streams silence.
func (r *Recorder) Stream(samples [][2]float64) (n int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrl.Stream(samples)
}

func (r *Recorder) Err() error { return nil }

// Render pulls the next n samples.
func (r *Recorder) Render(n int) [][2]float64 {
	out := make([][2]float64, n)
	r.Stream(out)
	return out
}
