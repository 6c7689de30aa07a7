package fireworks

import (
	"time"

	"github.com/iburimskiy/fireworks/internal/config"
)

// Scheduler decides when the next autonomous launch happens.
// A zero next-launch time means unset: the next check always launches.
type Scheduler struct {
	interval config.DurationRange
	next     time.Duration
}

// NewScheduler returns a scheduler drawing intervals from r.
func NewScheduler(r config.DurationRange) Scheduler {
	return Scheduler{interval: r}
}

// ShouldLaunch reports whether a launch is due at now.
func (s *Scheduler) ShouldLaunch(now time.Duration) bool {
	return s.next == 0 || now >= s.next
}

// ScheduleNext sets the next launch to now plus a random interval and
// returns it.
func (s *Scheduler) ScheduleNext(now time.Duration) time.Duration {
	s.next = now + randomDuration(s.interval)
	return s.next
}

// DelayUntil pushes the next launch to at.
func (s *Scheduler) DelayUntil(at time.Duration) {
	if at <= 0 {
		at = 1
	}
	s.next = at
}

// Reset clears the next launch time.
func (s *Scheduler) Reset() { s.next = 0 }

// Next returns the next launch time, zero when unset.
func (s *Scheduler) Next() time.Duration { return s.next }
