package lazyload

import (
	"github.com/rshade/lazyview/internal/dom"
)

// checkVisibleLocked updates r.visible and queues a render when it changes.
// A panic while measuring is logged and leaves the region untouched.
func (e *Engine) checkVisibleLocked(r *Region) {
	if r == nil || r.node == nil {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error().
				Str("region", r.id).
				Interface("panic", rec).
				Msg("visibility check failed; region skipped")
		}
	}()

	parent := dom.ScrollParent(r.node)
	overflow := r.opts.Overflow && parent != nil && parent != e.viewport.Root()

	var visible bool
	if overflow {
		visible = e.checkOverflowVisible(r, parent)
	} else {
		visible = e.checkNormalVisible(r)
	}

	if visible {
		if !r.visible {
			if r.opts.Once {
				e.pending = append(e.pending, r)
			}
			r.visible = true
			e.queueRenderLocked(r)
		}
		return
	}

	if r.opts.Once && r.visible {
		return
	}
	wasVisible := r.visible
	r.visible = false
	if wasVisible && r.opts.UnmountIfInvisible {
		e.queueRenderLocked(r)
	}
}

// checkNormalVisible tests r against the viewport.
func (e *Engine) checkNormalVisible(r *Region) bool {
	if e.viewport.Hidden(r.node) {
		return false
	}

	rect := e.measure(r.node)
	width, height := e.viewport.Size()
	return inside(rect.Top, rect.Height, height, r.offsets[offsetTop], r.offsets[offsetBottom]) &&
		(!r.opts.CheckHorizontal ||
			inside(rect.Left, rect.Width, width, r.offsets[offsetLeft], r.offsets[offsetRight]))
}

// checkOverflowVisible tests r against the part of parent that lies inside the viewport.
func (e *Engine) checkOverflowVisible(r *Region, parent *dom.Node) bool {
	width, height := e.viewport.Size()
	clip := e.measure(parent).ClampToViewport(width, height)

	rect := e.measure(r.node)
	top := rect.Top - clip.Top
	left := rect.Left - clip.Left

	return inside(top, rect.Height, clip.Height, r.offsets[offsetTop], r.offsets[offsetBottom]) &&
		(!r.opts.CheckHorizontal ||
			inside(left, rect.Width, clip.Width, r.offsets[offsetLeft], r.offsets[offsetRight]))
}

// inside is the one-axis inclusion test: the box starts no later than the far edge
// (widened by before) and ends no earlier than the near edge (widened by after).
func inside(start, size, extent, before, after float64) bool {
	return start-before <= extent && start+size+after >= 0
}

// measure returns the node's rectangle, or ZeroRect when measurement fails.
func (e *Engine) measure(n *dom.Node) dom.Rect {
	rect, err := e.viewport.Rect(n)
	if err != nil {
		e.logger.Debug().Err(err).Str("node", n.ID).Msg("measurement failed; using zero rect")
		return dom.ZeroRect
	}
	return rect
}
