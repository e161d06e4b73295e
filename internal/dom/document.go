package dom

import (
	"errors"
	"sync"
)

// ErrDetached is returned when measuring a node that is not in its document.
var ErrDetached = errors.New("node is not attached to the document")

// Document owns the root element, the viewport and the window target.
type Document struct {
	root   *Node
	window *Window

	mu      sync.RWMutex
	width   float64
	height  float64
	scrollX float64
	scrollY float64
}

// NewDocument creates an empty document with the given viewport size.
func NewDocument(width, height float64) *Document {
	d := &Document{
		window: &Window{},
		width:  width,
		height: height,
	}
	d.root = d.CreateElement("root")
	return d
}

// CreateElement creates a detached node owned by d.
func (d *Document) CreateElement(id string) *Node {
	return &Node{ID: id, doc: d}
}

// Root returns the document element.
func (d *Document) Root() *Node {
	return d.root
}

// Window returns the window event target.
func (d *Document) Window() Target {
	return d.window
}

// Size returns the viewport width and height.
func (d *Document) Size() (float64, float64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.width, d.height
}

// SetSize updates the viewport and dispatches a resize event on the window.
func (d *Document) SetSize(width, height float64) {
	d.mu.Lock()
	d.width, d.height = width, height
	d.mu.Unlock()

	d.window.DispatchEvent(EventResize)
}

// ScrollOffset returns the window scroll position.
func (d *Document) ScrollOffset() (float64, float64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scrollX, d.scrollY
}

// ScrollTo moves the window and dispatches a scroll event on it.
func (d *Document) ScrollTo(x, y float64) {
	d.mu.Lock()
	d.scrollX, d.scrollY = x, y
	d.mu.Unlock()

	d.window.DispatchEvent(EventScroll)
}

// ScrollNode moves a scroll container's content and dispatches a scroll event on it.
func (d *Document) ScrollNode(n *Node, left, top float64) {
	n.ScrollLeft, n.ScrollTop = left, top
	n.DispatchEvent(EventScroll)
}

// Lookup finds a connected node by ID. It returns nil when none matches.
func (d *Document) Lookup(id string) *Node {
	var walk func(n *Node) *Node
	walk = func(n *Node) *Node {
		if n.ID == id {
			return n
		}
		for _, c := range n.children {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(d.root)
}

// Rect returns the bounding rectangle of n in viewport coordinates.
// Nodes that are not displayed measure as ZeroRect.
func (d *Document) Rect(n *Node) (Rect, error) {
	if n == nil || n.doc != d || !n.Connected() {
		return ZeroRect, ErrDetached
	}
	if !n.displayed() {
		return ZeroRect, nil
	}

	left, top := n.X, n.Y
	for p := n.parent; p != nil; p = p.parent {
		left += p.X - p.ScrollLeft
		top += p.Y - p.ScrollTop
	}

	sx, sy := d.ScrollOffset()
	return NewRect(left-sx, top-sy, n.Width, n.Height), nil
}

// ClientRectCount returns the number of layout boxes n generates: zero when it or an
// ancestor is display: none or when it is detached, one otherwise.
func (d *Document) ClientRectCount(n *Node) int {
	if n == nil || !n.Connected() || !n.displayed() {
		return 0
	}
	return 1
}

// Hidden reports whether n has no size and generates no boxes.
func (d *Document) Hidden(n *Node) bool {
	if n == nil {
		return true
	}
	offsetWidth, offsetHeight := n.Width, n.Height
	if !n.displayed() {
		offsetWidth, offsetHeight = 0, 0
	}
	return offsetWidth <= 0 && offsetHeight <= 0 && d.ClientRectCount(n) == 0
}
