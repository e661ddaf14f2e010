package link

import "time"

// DefaultThrottleInterval caps live handle-drag recomputation at roughly 60Hz
const DefaultThrottleInterval = 16670 * time.Microsecond

// Throttle rate-limits live drag updates. Commits at drag end bypass it.
type Throttle struct {
	Interval time.Duration
	last     time.Time
}

// NewThrottle returns a throttle with the default interval
func NewThrottle() *Throttle {
	return &Throttle{Interval: DefaultThrottleInterval}
}

// Allow reports whether an update at now may run and records it when it may
func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}

// Reset forgets the last update so the next call is always allowed
func (t *Throttle) Reset() {
	t.last = time.Time{}
}
