package dom

import "sync"

// Event names dispatched by hosts.
const (
	EventScroll = "scroll"
	EventResize = "resize"
)

// Options mirrors the addEventListener options bag.
type Options struct {
	// Capture registers the listener for the capture phase. Removal must match it.
	Capture bool

	// Passive promises the listener never blocks the default action.
	Passive bool
}

// PassiveOptions is the option set used for scroll and resize listeners.
//
//nolint:gochecknoglobals // Read-only option preset.
var PassiveOptions = Options{Capture: false, Passive: true}

// Listener is a comparable handle around a callback. Two listeners are the same
// registration only if they are the same pointer.
type Listener struct {
	fn func()
}

// NewListener wraps fn in a Listener handle.
func NewListener(fn func()) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the wrapped callback.
func (l *Listener) Handle() {
	if l != nil && l.fn != nil {
		l.fn()
	}
}

// Target is anything that accepts event listeners.
type Target interface {
	AddEventListener(event string, l *Listener, opts Options)
	RemoveEventListener(event string, l *Listener, opts Options)
	DispatchEvent(event string) int
}

// On registers l on target. A nil target or listener is ignored.
func On(target Target, event string, l *Listener, opts Options) {
	if target == nil || l == nil {
		return
	}
	target.AddEventListener(event, l, opts)
}

// Off removes l from target. A nil target or listener is ignored.
func Off(target Target, event string, l *Listener, opts Options) {
	if target == nil || l == nil {
		return
	}
	target.RemoveEventListener(event, l, opts)
}

type registration struct {
	event    string
	listener *Listener
	opts     Options
}

// eventTarget is embedded by Node and Window.
type eventTarget struct {
	mu            sync.Mutex
	registrations []registration
}

// AddEventListener registers l for event. Registering the same listener for the same
// event and capture phase twice is a no-op.
func (t *eventTarget) AddEventListener(event string, l *Listener, opts Options) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, reg := range t.registrations {
		if reg.event == event && reg.listener == l && reg.opts.Capture == opts.Capture {
			return
		}
	}
	t.registrations = append(t.registrations, registration{event: event, listener: l, opts: opts})
}

// RemoveEventListener removes the registration matching event, l and the capture flag.
func (t *eventTarget) RemoveEventListener(event string, l *Listener, opts Options) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, reg := range t.registrations {
		if reg.event == event && reg.listener == l && reg.opts.Capture == opts.Capture {
			t.registrations = append(t.registrations[:i], t.registrations[i+1:]...)
			return
		}
	}
}

// DispatchEvent calls every listener registered for event and returns how many ran.
// Listeners are snapshotted first so handlers may add or remove registrations.
func (t *eventTarget) DispatchEvent(event string) int {
	t.mu.Lock()
	var snapshot []*Listener
	for _, reg := range t.registrations {
		if reg.event == event {
			snapshot = append(snapshot, reg.listener)
		}
	}
	t.mu.Unlock()

	for _, l := range snapshot {
		l.Handle()
	}
	return len(snapshot)
}

// ListenerCount returns the number of listeners registered for event.
func (t *eventTarget) ListenerCount(event string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, reg := range t.registrations {
		if reg.event == event {
			n++
		}
	}
	return n
}

// HasListener reports whether l is registered for event.
func (t *eventTarget) HasListener(event string, l *Listener) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, reg := range t.registrations {
		if reg.event == event && reg.listener == l {
			return true
		}
	}
	return false
}

// Window is the event target for viewport-level scroll and resize events.
type Window struct {
	eventTarget
}
