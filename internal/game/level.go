package game

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// LevelTap passes the master bus through to the speaker and tracks its
// recent loudness for the HUD meter. It keeps the mean-square power of the
// last window samples rather than the samples themselves.
type LevelTap struct {
	src beep.Streamer

	mu     sync.Mutex
	power  []float64
	next   int
	filled int
	sum    float64
}

func NewLevelTap(window int) *LevelTap {
	return &LevelTap{power: make([]float64, max(window, 0))}
}

// Wrap makes the tap pass src through. It fits sound.SpeakerDevice.Wrap.
func (t *LevelTap) Wrap(src beep.Streamer) beep.Streamer {
	t.mu.Lock()
	t.src = src
	t.mu.Unlock()
	return t
}

func (t *LevelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.src.Stream(samples)
	if n == 0 || len(t.power) == 0 {
		return n, ok
	}

	t.mu.Lock()
	for _, s := range samples[:n] {
		p := (s[0]*s[0] + s[1]*s[1]) / 2
		t.sum += p - t.power[t.next]
		t.power[t.next] = p
		t.next = (t.next + 1) % len(t.power)
		t.filled = min(t.filled+1, len(t.power))
	}
	// Rounding drift from the running sum
	if t.next == 0 {
		t.sum = 0
		for _, p := range t.power {
			t.sum += p
		}
	}
	t.mu.Unlock()
	return n, ok
}

func (t *LevelTap) Err() error { return t.src.Err() }

// Level returns the RMS over the tap window, counting only samples seen so
// far.
func (t *LevelTap) Level() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.filled == 0 {
		return 0
	}
	return math.Sqrt(max(t.sum, 0) / float64(t.filled))
}
