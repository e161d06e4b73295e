package lazyload

import (
	"github.com/oklog/ulid/v2"

	"github.com/rshade/lazyview/internal/dom"
)

// Region is one lazy-load subject tracked by an Engine.
//
// All fields are guarded by the owning engine's mutex.
type Region struct {
	id         string
	engine     *Engine
	node       *dom.Node
	opts       Options
	offsets    [4]float64
	invalidate func()

	visible         bool
	renderedVisible bool
	mounted         bool

	// overflowParent is the scroll container whose listener count this region holds.
	overflowParent *dom.Node
}

// NewRegion creates an unmounted region for node. invalidate is called, outside the
// engine lock, whenever the region must re-render; it may be nil.
func (e *Engine) NewRegion(node *dom.Node, opts Options, invalidate func()) *Region {
	r := &Region{
		id:         ulid.Make().String(),
		engine:     e,
		node:       node,
		opts:       opts,
		invalidate: invalidate,
	}
	log := e.logger.With().Str("region", r.id).Logger()
	r.offsets = normalizeOffset(opts, log)
	validateOptions(opts, log)
	return r
}

// ID returns the region's unique identifier.
func (r *Region) ID() string {
	return r.id
}

// Node returns the measured node.
func (r *Region) Node() *dom.Node {
	return r.node
}

// Options returns the options the region was created with.
func (r *Region) Options() Options {
	return r.opts
}

// Offsets returns the normalized top, bottom, left and right offsets.
func (r *Region) Offsets() [4]float64 {
	return r.offsets
}

// Visible reports the engine-computed visibility.
func (r *Region) Visible() bool {
	r.engine.mu.Lock()
	defer r.engine.mu.Unlock()
	return r.visible
}

// Mounted reports whether the region is between Mount and Unmount.
func (r *Region) Mounted() bool {
	r.engine.mu.Lock()
	defer r.engine.mu.Unlock()
	return r.mounted
}

// ShouldRender reports whether the host must re-render since the last MarkRendered.
// Regions without UnmountIfInvisible keep their content once shown.
func (r *Region) ShouldRender() bool {
	r.engine.mu.Lock()
	defer r.engine.mu.Unlock()
	return r.targetLocked() != r.renderedVisible
}

// MarkRendered records the visibility the host just rendered and returns it.
func (r *Region) MarkRendered() bool {
	r.engine.mu.Lock()
	defer r.engine.mu.Unlock()
	r.renderedVisible = r.targetLocked()
	return r.renderedVisible
}

// targetLocked is the visibility the host should present.
func (r *Region) targetLocked() bool {
	if r.renderedVisible && !r.opts.UnmountIfInvisible {
		return true
	}
	return r.visible
}
