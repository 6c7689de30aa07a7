package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Wave defines oscillator wave shapes
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

func (w Wave) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// oscillator generates a wave whose frequency follows an automation and
// stops after a fixed number of samples.
type oscillator struct {
	wave  Wave
	freq  *automation
	rate  beep.SampleRate
	phase float64
	pos   int
	stop  int
}

func newOscillator(wave Wave, freq *automation, rate beep.SampleRate, duration time.Duration) beep.Streamer {
	return &oscillator{wave: wave, freq: freq, rate: rate, stop: rate.N(duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	step := 1 / float64(o.rate)
	for i := range samples {
		if o.pos >= o.stop {
			return i, i > 0
		}
		v := o.wave.sample(o.phase)
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq.valueAt(float64(o.pos)*step) * step
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// gain multiplies a stream by an automated level.
type gain struct {
	streamer beep.Streamer
	level    *automation
	rate     beep.SampleRate
	pos      int
}

func newGain(s beep.Streamer, level *automation, rate beep.SampleRate) beep.Streamer {
	return &gain{streamer: s, level: level, rate: rate}
}

func (g *gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	step := 1 / float64(g.rate)
	for i := 0; i < n; i++ {
		v := g.level.valueAt(float64(g.pos) * step)
		samples[i][0] *= v
		samples[i][1] *= v
		g.pos++
	}
	return n, ok
}

func (g *gain) Err() error { return g.streamer.Err() }

// butterworthQ gives a flat passband for the two-pole high-pass.
const butterworthQ = math.Sqrt2 / 2

// biquad is a two-pole filter from the RBJ audio EQ cookbook, run
// independently on each channel.
type biquad struct {
	streamer           beep.Streamer
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func newHighpass(s beep.Streamer, rate beep.SampleRate, freq, q float64) beep.Streamer {
	cos, alpha := biquadTerms(rate, freq, q)
	return newBiquad(s, (1+cos)/2, -(1 + cos), (1+cos)/2, 1+alpha, -2*cos, 1-alpha)
}

// newBandpass has 0 dB gain at the center frequency.
func newBandpass(s beep.Streamer, rate beep.SampleRate, freq, q float64) beep.Streamer {
	cos, alpha := biquadTerms(rate, freq, q)
	return newBiquad(s, alpha, 0, -alpha, 1+alpha, -2*cos, 1-alpha)
}

func biquadTerms(rate beep.SampleRate, freq, q float64) (cos, alpha float64) {
	nyquist := float64(rate) / 2
	freq = clamp(freq, 1, nyquist*0.99)
	if q <= 0 {
		q = butterworthQ
	}
	w0 := 2 * math.Pi * freq / float64(rate)
	return math.Cos(w0), math.Sin(w0) / (2 * q)
}

func newBiquad(s beep.Streamer, b0, b1, b2, a0, a1, a2 float64) *biquad {
	return &biquad{
		streamer: s,
		b0:       b0 / a0,
		b1:       b1 / a0,
		b2:       b2 / a0,
		a1:       a1 / a0,
		a2:       a2 / a0,
	}
}

func (f *biquad) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			x := samples[i][c]
			y := f.b0*x + f.b1*f.x1[c] + f.b2*f.x2[c] - f.a1*f.y1[c] - f.a2*f.y2[c]
			f.x2[c], f.x1[c] = f.x1[c], x
			f.y2[c], f.y1[c] = f.y1[c], y
			samples[i][c] = y
		}
	}
	return n, ok
}

func (f *biquad) Err() error { return f.streamer.Err() }

// newPan places a stream between the left (-1) and right (+1) speaker.
func newPan(s beep.Streamer, pan float64) beep.Streamer {
	return &effects.Pan{Streamer: s, Pan: clamp(pan, -1, 1)}
}

// newVolume scales a stream linearly.
// math.Log2(0) is -Inf, so 0 volume is handled by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
