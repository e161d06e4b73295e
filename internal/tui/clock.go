package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/lazyview/internal/limiter"
)

// clockMsg carries a timer callback into the Bubble Tea update loop.
type clockMsg struct {
	fn func()
}

// TeaClock is a limiter.Clock whose callbacks run inside a Bubble Tea program's update
// loop, so debounced sweeps never race with View. Before Attach it calls back directly
// from the timer goroutine.
type TeaClock struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewTeaClock creates an unattached clock.
func NewTeaClock() *TeaClock {
	return &TeaClock{}
}

// Attach routes callbacks through p.
func (c *TeaClock) Attach(p *tea.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = p.Send
}

// Now returns time.Now.
func (c *TeaClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn after d.
func (c *TeaClock) AfterFunc(d time.Duration, fn func()) limiter.Timer {
	return time.AfterFunc(d, func() {
		c.mu.Lock()
		send := c.send
		c.mu.Unlock()

		if send == nil {
			fn()
			return
		}
		send(clockMsg{fn: fn})
	})
}
