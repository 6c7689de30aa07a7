package sound

import (
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
)

// noiseLength is the length of the shared explosion noise buffer.
const noiseLength = 500 * time.Millisecond

// noiseCache holds linearly decaying white noise for one sample rate.
type noiseCache struct {
	rate       beep.SampleRate
	buf        *beep.Buffer
	generation int
}

// get returns the buffer for rate, regenerating it only when the rate changes.
func (c *noiseCache) get(rate beep.SampleRate) *beep.Buffer {
	if c.buf != nil && c.rate == rate {
		return c.buf
	}

	length := rate.N(noiseLength)
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(length, decayingNoise(length)))

	c.rate = rate
	c.buf = buf
	c.generation++
	Logger().Debug("noise buffer generated", "rate", int(rate), "samples", length, "generation", c.generation)
	return buf
}

func decayingNoise(length int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if pos >= length {
				return i, i > 0
			}
			decay := 1 - float64(pos)/float64(length)
			v := (rand.Float64()*2 - 1) * decay
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}
