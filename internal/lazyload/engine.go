package lazyload

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/lazyview/internal/dom"
	"github.com/rshade/lazyview/internal/limiter"
)

// Viewport is the host surface regions are measured against. *dom.Document implements it.
type Viewport interface {
	// Rect measures n in viewport coordinates. It fails for detached nodes.
	Rect(n *dom.Node) (dom.Rect, error)

	// Size returns the viewport width and height.
	Size() (float64, float64)

	// Hidden reports whether n has no size and no client rects.
	Hidden(n *dom.Node) bool

	// Root returns the document element.
	Root() *dom.Node

	// Window returns the target for viewport-level scroll and resize events.
	Window() dom.Target

	// Lookup finds a node by ID, or returns nil.
	Lookup(id string) *dom.Node
}

// Engine tracks mounted regions and sweeps them on scroll and resize.
// It is safe for use from multiple goroutines, but render callbacks should hand work
// back to the host's event loop.
type Engine struct {
	viewport Viewport
	clock    limiter.Clock
	logger   zerolog.Logger

	mu      sync.Mutex
	regions []*Region
	pending []*Region
	renders []*Region

	handler      *dom.Listener
	limited      *limiter.Limited
	policy       Policy
	attachments  []attachment
	globalsBound bool

	sweeps int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock sets the clock used by debounced and throttled handlers.
func WithClock(clock limiter.Clock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine over viewport.
func NewEngine(viewport Viewport, opts ...EngineOption) *Engine {
	e := &Engine{
		viewport: viewport,
		clock:    limiter.RealClock{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mount registers r, binds listeners and runs the first visibility check.
func (e *Engine) Mount(r *Region) {
	e.mu.Lock()
	e.mountLocked(r)
	queued := e.takeRendersLocked()
	e.mu.Unlock()

	flushRenders(queued)
}

func (e *Engine) mountLocked(r *Region) {
	if r.engine != e {
		e.logger.Warn().Str("region", r.id).Msg("region belongs to another engine; mount ignored")
		return
	}
	if r.mounted {
		e.logger.Warn().Str("region", r.id).Msg("region is already mounted")
		return
	}

	rebuilt := e.reconcileHandlerLocked(r.opts)

	if r.opts.Overflow {
		e.retainOverflowParentLocked(r)
	}
	if !e.globalsBound || rebuilt {
		e.bindGlobalsLocked(r.opts)
	}

	r.mounted = true
	e.regions = append(e.regions, r)

	e.logger.Debug().
		Str("region", r.id).
		Str("policy", string(e.policy)).
		Int("registered", len(e.regions)).
		Msg("region mounted")

	e.checkVisibleLocked(r)
}

// Unmount releases r's listeners and removes it from the registry and pending list.
func (e *Engine) Unmount(r *Region) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if r.engine != e {
		e.logger.Warn().Str("region", r.id).Msg("region belongs to another engine; unmount ignored")
		return
	}
	if !r.mounted {
		return
	}
	r.mounted = false

	if r.overflowParent != nil {
		e.releaseOverflowParentLocked(r)
	}

	e.regions = removeRegion(e.regions, r)
	e.pending = removeRegion(e.pending, r)
	e.renders = removeRegion(e.renders, r)

	if len(e.regions) == 0 {
		e.unbindGlobalsLocked()
	}

	e.logger.Debug().
		Str("region", r.id).
		Int("registered", len(e.regions)).
		Msg("region unmounted")
}

// CheckVisible recomputes one region's visibility.
func (e *Engine) CheckVisible(r *Region) {
	e.mu.Lock()
	e.checkVisibleLocked(r)
	queued := e.takeRendersLocked()
	e.mu.Unlock()

	flushRenders(queued)
}

// LazyLoadHandler sweeps every registered region and then purges completed one-shots.
// It is the callback wrapped by the active limiter.
func (e *Engine) LazyLoadHandler() {
	e.mu.Lock()
	e.sweepLocked()
	queued := e.takeRendersLocked()
	e.mu.Unlock()

	flushRenders(queued)
}

// ForceCheck runs a synchronous full sweep, bypassing the limiter.
func (e *Engine) ForceCheck() {
	e.LazyLoadHandler()
}

// ForceVisible marks every registered region visible and drops one-shot regions.
func (e *Engine) ForceVisible() {
	e.mu.Lock()
	for _, r := range e.regions {
		if r.visible {
			continue
		}
		r.visible = true
		e.queueRenderLocked(r)
		if r.opts.Once {
			e.pending = append(e.pending, r)
		}
	}
	e.purgePendingLocked()
	queued := e.takeRendersLocked()
	e.mu.Unlock()

	flushRenders(queued)
}

// PurgePending removes pending one-shot regions from the registry.
func (e *Engine) PurgePending() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.purgePendingLocked()
}

func (e *Engine) sweepLocked() {
	e.sweeps++
	for _, r := range e.regions {
		e.checkVisibleLocked(r)
	}
	e.purgePendingLocked()
}

func (e *Engine) purgePendingLocked() {
	for _, r := range e.pending {
		e.regions = removeRegion(e.regions, r)
	}
	e.pending = e.pending[:0]
}

func (e *Engine) queueRenderLocked(r *Region) {
	if !slices.Contains(e.renders, r) {
		e.renders = append(e.renders, r)
	}
}

func (e *Engine) takeRendersLocked() []*Region {
	if len(e.renders) == 0 {
		return nil
	}
	queued := e.renders
	e.renders = nil
	return queued
}

func flushRenders(queued []*Region) {
	for _, r := range queued {
		if r.invalidate != nil {
			r.invalidate()
		}
	}
}

func removeRegion(list []*Region, r *Region) []*Region {
	idx := slices.Index(list, r)
	if idx < 0 {
		return list
	}
	return slices.Delete(list, idx, idx+1)
}

// Stats is a snapshot of engine state for status displays.
type Stats struct {
	Registered int
	Pending    int
	Sweeps     int
	Policy     Policy
}

// Stats returns a snapshot of the registry and handler.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Registered: len(e.regions),
		Pending:    len(e.pending),
		Sweeps:     e.sweeps,
		Policy:     e.policy,
	}
}

// Registered reports whether r is in the active registry.
func (e *Engine) Registered(r *Region) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Contains(e.regions, r)
}
