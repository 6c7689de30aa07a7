package sound

import "math"

// silentLevel stands in for zero on exponential ramps, which cannot reach it.
const silentLevel = 0.0001

type automationEvent struct {
	at    float64 // seconds from graph start
	value float64
	exp   bool // exponential ramp ending at this event
}

// automation is a time-varying parameter: a list of set points and
// exponential ramps between them, evaluated per sample.
type automation struct {
	events []automationEvent
	cursor int
}

func newAutomation() *automation {
	return &automation{}
}

// setAt jumps to v at time at.
func (a *automation) setAt(v, at float64) *automation {
	a.events = append(a.events, automationEvent{at: at, value: v})
	return a
}

// expRampTo ramps exponentially from the previous event to v, arriving at
// time at. Both values must be positive.
func (a *automation) expRampTo(v, at float64) *automation {
	a.events = append(a.events, automationEvent{at: at, value: v, exp: true})
	return a
}

// valueAt evaluates the parameter at t. Calls must use non-decreasing t.
func (a *automation) valueAt(t float64) float64 {
	if len(a.events) == 0 {
		return 0
	}
	for a.cursor+1 < len(a.events) && a.events[a.cursor+1].at <= t {
		a.cursor++
	}

	cur := a.events[a.cursor]
	if t < cur.at {
		return cur.value
	}
	if a.cursor+1 == len(a.events) {
		return cur.value
	}

	next := a.events[a.cursor+1]
	if !next.exp || cur.value <= 0 || next.value <= 0 || next.at <= cur.at {
		return cur.value
	}
	frac := (t - cur.at) / (next.at - cur.at)
	return cur.value * math.Pow(next.value/cur.value, frac)
}
