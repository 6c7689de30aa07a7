package sound

import (
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
)

const (
	launchPeak     = 0.07
	launchFloor    = 72.0  // Hz at the end of the sweep
	launchHighpass = 130.0 // Hz
	launchSweep    = 0.28
	launchAttack   = 0.02
	launchRelease  = 0.3
	launchLength   = 320 * time.Millisecond

	noisePeak    = 0.2
	noiseQ       = 0.8
	noiseAttack  = 0.012
	noiseRelease = 0.42
	noiseStop    = 450 * time.Millisecond

	boomPeak    = 0.11
	boomFloor   = 42.0
	boomSweep   = 0.36
	boomAttack  = 0.02
	boomRelease = 0.38
	boomLength  = 400 * time.Millisecond

	cracklePeak    = 0.035
	crackleAttack  = 0.003
	crackleRelease = 0.045
	crackleLength  = 50 * time.Millisecond

	minIntensity = 0.45
	maxIntensity = 1.2
)

// explosionParams are the randomized inputs of one explosion graph.
type explosionParams struct {
	pan       float64
	volume    float64
	bandpass  float64
	boomStart float64
	crackles  []crackle
}

type crackle struct {
	delay time.Duration
	pitch float64
}

func newExplosionParams(pan, intensity float64, withCrackle bool) explosionParams {
	p := explosionParams{
		pan:       pan,
		volume:    clamp(intensity, minIntensity, maxIntensity),
		bandpass:  randomBetween(650, 1400),
		boomStart: randomBetween(120, 170),
	}
	if withCrackle {
		for i := 1 + rand.IntN(2); i > 0; i-- {
			p.crackles = append(p.crackles, crackle{
				delay: time.Duration(randomBetween(30, 180) * float64(time.Millisecond)),
				pitch: randomBetween(900, 2100),
			})
		}
	}
	return p
}

// buildLaunch returns the rising whistle of a launched projectile.
func buildLaunch(rate beep.SampleRate, pan float64) beep.Streamer {
	freq := newAutomation().
		setAt(randomBetween(180, 260), 0).
		expRampTo(launchFloor, launchSweep)
	env := newAutomation().
		setAt(silentLevel, 0).
		expRampTo(launchPeak, launchAttack).
		expRampTo(silentLevel, launchRelease)

	osc := newOscillator(WaveTriangle, freq, rate, launchLength)
	return newPan(newGain(newHighpass(osc, rate, launchHighpass, butterworthQ), env, rate), pan)
}

// buildExplosion layers filtered noise, a low boom and optional crackles
// behind one pan node.
func buildExplosion(rate beep.SampleRate, noise *beep.Buffer, p explosionParams) beep.Streamer {
	layers := []beep.Streamer{
		noiseLayer(rate, noise, p),
		boomLayer(rate, p),
	}
	for _, c := range p.crackles {
		layers = append(layers, crackleLayer(rate, c, p.volume))
	}
	return newPan(beep.Mix(layers...), p.pan)
}

func noiseLayer(rate beep.SampleRate, noise *beep.Buffer, p explosionParams) beep.Streamer {
	src := beep.Take(min(rate.N(noiseStop), noise.Len()), noise.Streamer(0, noise.Len()))
	env := newAutomation().
		setAt(silentLevel, 0).
		expRampTo(noisePeak*p.volume, noiseAttack).
		expRampTo(silentLevel, noiseRelease)
	return newGain(newBandpass(src, rate, p.bandpass, noiseQ), env, rate)
}

func boomLayer(rate beep.SampleRate, p explosionParams) beep.Streamer {
	freq := newAutomation().
		setAt(p.boomStart, 0).
		expRampTo(boomFloor, boomSweep)
	env := newAutomation().
		setAt(silentLevel, 0).
		expRampTo(boomPeak*p.volume, boomAttack).
		expRampTo(silentLevel, boomRelease)
	return newGain(newOscillator(WaveSine, freq, rate, boomLength), env, rate)
}

func crackleLayer(rate beep.SampleRate, c crackle, volume float64) beep.Streamer {
	freq := newAutomation().setAt(c.pitch, 0)
	env := newAutomation().
		setAt(silentLevel, 0).
		expRampTo(cracklePeak*volume, crackleAttack).
		expRampTo(silentLevel, crackleRelease)
	return beep.Seq(
		beep.Silence(rate.N(c.delay)),
		newGain(newOscillator(WaveSquare, freq, rate, crackleLength), env, rate),
	)
}

// positionToPan maps x across width onto [-0.9, 0.9]. Zero width is centre.
func positionToPan(x, width float64) float64 {
	if width == 0 {
		return 0
	}
	return clamp(x/width*2-1, -0.9, 0.9)
}

func randomBetween(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}
