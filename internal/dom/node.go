package dom

import (
	"slices"
	"sync"
)

// Overflow is the computed overflow keyword of one axis.
type Overflow string

// Overflow keywords.
const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowScroll  Overflow = "scroll"
	OverflowAuto    Overflow = "auto"
)

// Scrolls reports whether the keyword makes a box a scroll container by itself.
func (o Overflow) Scrolls() bool {
	return o == OverflowScroll || o == OverflowAuto
}

// Position is the computed position keyword.
type Position string

// Position keywords.
const (
	PositionStatic   Position = "static"
	PositionRelative Position = "relative"
	PositionAbsolute Position = "absolute"
)

// Style is the computed style subset relevant to layout and scrolling.
// Zero values read as visible overflow, static position and displayed.
type Style struct {
	OverflowX Overflow
	OverflowY Overflow
	Position  Position
	Hidden    bool // display: none
}

func (s Style) overflowX() Overflow {
	if s.OverflowX == "" {
		return OverflowVisible
	}
	return s.OverflowX
}

func (s Style) overflowY() Overflow {
	if s.OverflowY == "" {
		return OverflowVisible
	}
	return s.OverflowY
}

func (s Style) position() Position {
	if s.Position == "" {
		return PositionStatic
	}
	return s.Position
}

// Node is one element of the layout tree.
type Node struct {
	eventTarget

	// ID identifies the node for lookups.
	ID string

	// Style is the computed style.
	Style Style

	// X and Y place the box relative to the parent's content origin.
	X, Y float64

	// Width and Height are the box size (client extent).
	Width, Height float64

	// ScrollWidth and ScrollHeight are the content extent. Zero means "same as the box".
	ScrollWidth, ScrollHeight float64

	// ScrollLeft and ScrollTop are the content scroll offsets.
	ScrollLeft, ScrollTop float64

	doc      *Document
	parent   *Node
	children []*Node

	attrMu sync.RWMutex
	attrs  map[string]string
}

// Document returns the owner document.
func (n *Node) Document() *Document {
	return n.doc
}

// Parent returns the parent node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// AppendChild moves child under n.
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. Unknown children are ignored.
func (n *Node) RemoveChild(child *Node) {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
}

// Connected reports whether n is reachable from its document root.
func (n *Node) Connected() bool {
	if n.doc == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.doc.root {
			return true
		}
	}
	return false
}

// ClientWidth returns the visible horizontal extent.
func (n *Node) ClientWidth() float64 { return n.Width }

// ClientHeight returns the visible vertical extent.
func (n *Node) ClientHeight() float64 { return n.Height }

// ContentWidth returns the scrollable horizontal extent.
func (n *Node) ContentWidth() float64 {
	if n.ScrollWidth == 0 {
		return n.Width
	}
	return n.ScrollWidth
}

// ContentHeight returns the scrollable vertical extent.
func (n *Node) ContentHeight() float64 {
	if n.ScrollHeight == 0 {
		return n.Height
	}
	return n.ScrollHeight
}

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	n.attrMu.RLock()
	defer n.attrMu.RUnlock()
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute.
func (n *Node) SetAttr(name, value string) {
	n.attrMu.Lock()
	defer n.attrMu.Unlock()
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttr deletes the named attribute.
func (n *Node) RemoveAttr(name string) {
	n.attrMu.Lock()
	defer n.attrMu.Unlock()
	delete(n.attrs, name)
}

// displayed reports whether neither n nor an ancestor is display: none.
func (n *Node) displayed() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Style.Hidden {
			return false
		}
	}
	return true
}
