package dom

// ScrollParent returns the nearest ancestor of n that scrolls its content, or the
// document root when there is none. Detached nodes resolve to their document root;
// nodes without a document resolve to nil.
//
// An ancestor qualifies when both axes use a scrolling keyword (auto, scroll), or when an
// axis clips (not visible) and its content overflows the box on that axis. Absolutely
// positioned nodes skip statically positioned ancestors.
func ScrollParent(n *Node) *Node {
	if n == nil || n.doc == nil {
		return nil
	}
	root := n.doc.root
	if !n.Connected() {
		return root
	}

	excludeStatic := n.Style.position() == PositionAbsolute

	for p := n.parent; p != nil && p != root; p = p.parent {
		if excludeStatic && p.Style.position() == PositionStatic {
			continue
		}
		if isScrollContainer(p) {
			return p
		}
	}
	return root
}

func isScrollContainer(n *Node) bool {
	ox, oy := n.Style.overflowX(), n.Style.overflowY()
	if ox.Scrolls() && oy.Scrolls() {
		return true
	}
	if oy != OverflowVisible && n.ContentHeight() > n.ClientHeight() {
		return true
	}
	if ox != OverflowVisible && n.ContentWidth() > n.ClientWidth() {
		return true
	}
	return false
}
