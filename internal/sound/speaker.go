package sound

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// SpeakerDevice plays through the system speaker. All graphs are added to
// one master mixer held behind a Ctrl, so suspending pauses the whole bus.
type SpeakerDevice struct {
	SampleRate beep.SampleRate
	// BufferSize is the speaker latency window
	BufferSize time.Duration
	// Wrap, if set, wraps the master bus before it reaches the speaker
	Wrap func(beep.Streamer) beep.Streamer
}

func (d SpeakerDevice) Open() (Output, error) {
	if d.SampleRate <= 0 || d.BufferSize <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d, buffer %v", ErrUnavailable, d.SampleRate, d.BufferSize)
	}

	mixer := &beep.Mixer{}
	ctrl := &beep.Ctrl{Streamer: mixer, Paused: true}
	var master beep.Streamer = ctrl
	if d.Wrap != nil {
		master = d.Wrap(master)
	}

	if err := speaker.Init(d.SampleRate, d.SampleRate.N(d.BufferSize)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	speaker.Play(master)

	return &speakerOutput{rate: d.SampleRate, mixer: mixer, ctrl: ctrl}, nil
}

type speakerOutput struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	ctrl   *beep.Ctrl
	closed bool
}

func (o *speakerOutput) SampleRate() beep.SampleRate { return o.rate }

func (o *speakerOutput) State() OutputState {
	speaker.Lock()
	defer speaker.Unlock()
	switch {
	case o.closed:
		return OutputClosed
	case o.ctrl.Paused:
		return OutputSuspended
	default:
		return OutputRunning
	}
}

func (o *speakerOutput) Resume() error {
	speaker.Lock()
	defer speaker.Unlock()
	if o.closed {
		return ErrUnavailable
	}
	o.ctrl.Paused = false
	return nil
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	if !o.closed {
		o.mixer.Add(s)
	}
	speaker.Unlock()
}

func (o *speakerOutput) Close() error {
	speaker.Lock()
	o.closed = true
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	return nil
}
