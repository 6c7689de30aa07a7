package sound

import (
	"errors"
	"fmt"

	"github.com/faiface/beep"
)

// ErrUnavailable is returned by a Device that cannot produce an output.
var ErrUnavailable = errors.New("sound: audio output unavailable")

// OutputState is the playback state of an Output.
type OutputState int

const (
	OutputSuspended OutputState = iota
	OutputRunning
	OutputClosed
)

func (s OutputState) String() string {
	switch s {
	case OutputSuspended:
		return "suspended"
	case OutputRunning:
		return "running"
	case OutputClosed:
		return "closed"
	default:
		return fmt.Sprintf("OutputState(%d)", int(s))
	}
}

// Output is an opened audio context. Play must not block.
type Output interface {
	SampleRate() beep.SampleRate
	State() OutputState
	// Resume moves a suspended output to running
	Resume() error
	Play(s beep.Streamer)
	Close() error
}

// Device opens an Output. Open may fail with ErrUnavailable.
type Device interface {
	Open() (Output, error)
}

type unavailable struct{}

func (unavailable) Open() (Output, error) { return nil, ErrUnavailable }

// Unavailable is a Device without any audio hardware behind it.
var Unavailable Device = unavailable{}
