package lazyload

import (
	"strconv"

	"github.com/rshade/lazyview/internal/dom"
	"github.com/rshade/lazyview/internal/limiter"
)

// ListenFlag is the attribute carrying a scroll container's listener count.
const ListenFlag = "data-lazyload-listened"

// Policy is the coalescing policy of the shared handler.
type Policy string

// Handler policies. PolicyNone means no handler has been built yet.
const (
	PolicyNone     Policy = ""
	PolicyPlain    Policy = "plain"
	PolicyDebounce Policy = Policy(limiter.PolicyDebounce)
	PolicyThrottle Policy = Policy(limiter.PolicyThrottle)
)

type attachment struct {
	target dom.Target
	event  string
	global bool
}

// Policy returns the active handler policy.
func (e *Engine) Policy() Policy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.policy
}

// needsRebuildLocked reports whether opts conflict with the active handler: a debounced
// mount while throttling, or a mount without debounce while debouncing.
func (e *Engine) needsRebuildLocked(opts Options) bool {
	if e.handler == nil {
		return false
	}
	if opts.Debounce.Set() && e.policy == PolicyThrottle {
		return true
	}
	return e.policy == PolicyDebounce && !opts.Debounce.Set()
}

// reconcileHandlerLocked makes sure a handler compatible with opts is bound everywhere the
// previous one was. It reports whether the handler was rebuilt.
func (e *Engine) reconcileHandlerLocked(opts Options) bool {
	rebuild := e.needsRebuildLocked(opts)
	var previous []attachment

	if rebuild {
		e.logger.Warn().
			Str("active_policy", string(e.policy)).
			Bool("debounce", opts.Debounce.Set()).
			Bool("throttle", opts.Throttle.Set()).
			Msg("conflicting timing policy; rebuilding shared scroll handler")

		previous = e.attachments
		for _, a := range previous {
			dom.Off(a.target, a.event, e.handler, dom.PassiveOptions)
		}
		e.attachments = nil
		if e.limited != nil {
			e.limited.Stop()
		}
		e.handler = nil
		e.limited = nil
	}

	if e.handler == nil {
		e.buildHandlerLocked(opts)
	}

	for _, a := range previous {
		e.attachLocked(a.target, a.event, a.global)
	}
	return rebuild
}

func (e *Engine) buildHandlerLocked(opts Options) {
	var limited *limiter.Limited
	switch {
	case opts.Debounce.Set():
		limited = limiter.Debounce(e.clock, e.LazyLoadHandler, opts.Debounce.Wait())
		e.policy = PolicyDebounce
	case opts.Throttle.Set():
		limited = limiter.Throttle(e.clock, e.LazyLoadHandler, opts.Throttle.Wait())
		e.policy = PolicyThrottle
	default:
		e.policy = PolicyPlain
	}

	e.limited = limited
	e.handler = dom.NewListener(func() {
		if limited != nil {
			limited.Call()
			return
		}
		e.LazyLoadHandler()
	})
}

func (e *Engine) attachLocked(target dom.Target, event string, global bool) {
	if target == nil {
		return
	}
	dom.On(target, event, e.handler, dom.PassiveOptions)
	e.attachments = append(e.attachments, attachment{target: target, event: event, global: global})
}

// detachLocked drops one attachment of target/event. The listener itself stays bound
// while another attachment still uses the same target and event.
func (e *Engine) detachLocked(target dom.Target, event string, global bool) {
	for i, a := range e.attachments {
		if a.target == target && a.event == event && a.global == global {
			e.attachments = append(e.attachments[:i], e.attachments[i+1:]...)
			break
		}
	}
	if e.attachedLocked(target, event) == 0 {
		dom.Off(target, event, e.handler, dom.PassiveOptions)
	}
}

func (e *Engine) attachedLocked(target dom.Target, event string) int {
	n := 0
	for _, a := range e.attachments {
		if a.target == target && a.event == event {
			n++
		}
	}
	return n
}

// bindGlobalsLocked binds the shared handler to the window (or the configured scroll
// container) according to the mounting region's scroll and resize flags. Targets already
// bound are skipped.
func (e *Engine) bindGlobalsLocked(opts Options) {
	e.globalsBound = true

	if opts.Scroll {
		e.bindOnceLocked(e.scrollTargetLocked(opts), dom.EventScroll)
	}
	if opts.Resize {
		e.bindOnceLocked(e.viewport.Window(), dom.EventResize)
	}
}

func (e *Engine) bindOnceLocked(target dom.Target, event string) {
	for _, a := range e.attachments {
		if a.global && a.target == target && a.event == event {
			return
		}
	}
	e.attachLocked(target, event, true)
}

func (e *Engine) scrollTargetLocked(opts Options) dom.Target {
	if opts.ScrollContainer == "" {
		return e.viewport.Window()
	}
	if n := e.viewport.Lookup(opts.ScrollContainer); n != nil {
		return n
	}
	e.logger.Warn().
		Str("scroll_container", opts.ScrollContainer).
		Msg("scroll container not found; listening on the window")
	return e.viewport.Window()
}

func (e *Engine) unbindGlobalsLocked() {
	var globals []attachment
	kept := e.attachments[:0]
	for _, a := range e.attachments {
		if a.global {
			globals = append(globals, a)
			continue
		}
		kept = append(kept, a)
	}
	e.attachments = kept
	for _, a := range globals {
		if e.attachedLocked(a.target, a.event) == 0 {
			dom.Off(a.target, a.event, e.handler, dom.PassiveOptions)
		}
	}
	e.globalsBound = false
}

// retainOverflowParentLocked increments the listener count on r's scroll container and
// binds the handler when the count becomes one.
func (e *Engine) retainOverflowParentLocked(r *Region) {
	parent := dom.ScrollParent(r.node)
	if parent == nil || parent == e.viewport.Root() {
		return
	}

	count := listenerCount(parent) + 1
	if count == 1 {
		e.attachLocked(parent, dom.EventScroll, false)
	}
	parent.SetAttr(ListenFlag, strconv.Itoa(count))
	r.overflowParent = parent
}

// releaseOverflowParentLocked reverses retainOverflowParentLocked.
func (e *Engine) releaseOverflowParentLocked(r *Region) {
	parent := r.overflowParent
	r.overflowParent = nil

	count := listenerCount(parent) - 1
	if count <= 0 {
		e.detachLocked(parent, dom.EventScroll, false)
		parent.RemoveAttr(ListenFlag)
		return
	}
	parent.SetAttr(ListenFlag, strconv.Itoa(count))
}

func listenerCount(n *dom.Node) int {
	v, ok := n.Attr(ListenFlag)
	if !ok {
		return 0
	}
	count, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return count
}
