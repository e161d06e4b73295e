package limiter

import (
	"sync"
	"time"
)

// DefaultWait is used when a non-positive interval is requested.
const DefaultWait = 300 * time.Millisecond

// Policy names the coalescing strategy of a Limited function.
type Policy string

// Coalescing policies.
const (
	PolicyDebounce Policy = "debounce"
	PolicyThrottle Policy = "throttle"
)

// Limited is a rate-limited wrapper around a callback.
type Limited struct {
	policy Policy
	wait   time.Duration
	clock  Clock
	fn     func()

	mu      sync.Mutex
	timer   Timer
	last    time.Time
	hasLast bool
	stopped bool
}

// Debounce returns a wrapper that calls fn once wait has elapsed without another Call.
// Every Call restarts the timer; there is no leading-edge call.
func Debounce(clock Clock, fn func(), wait time.Duration) *Limited {
	return newLimited(PolicyDebounce, clock, fn, wait)
}

// Throttle returns a wrapper that calls fn at most once per wait. The first Call of a
// window runs fn synchronously; later calls in the same window are dropped.
func Throttle(clock Clock, fn func(), wait time.Duration) *Limited {
	return newLimited(PolicyThrottle, clock, fn, wait)
}

func newLimited(policy Policy, clock Clock, fn func(), wait time.Duration) *Limited {
	if clock == nil {
		clock = RealClock{}
	}
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Limited{policy: policy, wait: wait, clock: clock, fn: fn}
}

// Policy returns the coalescing policy.
func (l *Limited) Policy() Policy {
	return l.policy
}

// Wait returns the interval.
func (l *Limited) Wait() time.Duration {
	return l.wait
}

// Call feeds one event into the limiter.
func (l *Limited) Call() {
	switch l.policy {
	case PolicyDebounce:
		l.debounce()
	case PolicyThrottle:
		l.throttle()
	}
}

// Stop cancels a pending trailing call and makes future calls no-ops.
func (l *Limited) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopped = true
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *Limited) debounce() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	if l.timer != nil {
		l.timer.Stop()
	}

	var fired Timer
	fired = l.clock.AfterFunc(l.wait, func() {
		l.mu.Lock()
		if l.stopped || l.timer != fired {
			l.mu.Unlock()
			return
		}
		l.timer = nil
		l.mu.Unlock()

		l.fn()
	})
	l.timer = fired
}

func (l *Limited) throttle() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	now := l.clock.Now()
	if l.hasLast && now.Before(l.last.Add(l.wait)) {
		l.mu.Unlock()
		return
	}
	l.last = now
	l.hasLast = true
	l.mu.Unlock()

	l.fn()
}
