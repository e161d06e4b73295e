package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T) (*Document, *Node, *Node) {
	t.Helper()
	doc := NewDocument(80, 24)
	pane := doc.CreateElement("pane")
	pane.Y = 10
	pane.Width, pane.Height = 40, 5
	pane.ScrollHeight = 50
	pane.Style = Style{OverflowX: OverflowAuto, OverflowY: OverflowAuto}
	doc.Root().AppendChild(pane)

	item := doc.CreateElement("item")
	item.Y = 12
	item.Width, item.Height = 40, 3
	pane.AppendChild(item)
	return doc, pane, item
}

// TestDocument_Rect verifies ancestor offsets, container scroll and window scroll.
func TestDocument_Rect(t *testing.T) {
	doc, pane, item := newTree(t)

	rect, err := doc.Rect(item)
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 22, 40, 3), rect)

	pane.ScrollTop = 4
	doc.ScrollTo(0, 2)
	rect, err = doc.Rect(item)
	require.NoError(t, err)
	assert.Equal(t, 16.0, rect.Top)
	assert.Equal(t, 19.0, rect.Bottom)
}

// TestDocument_RectDetached verifies measurement of removed nodes fails.
func TestDocument_RectDetached(t *testing.T) {
	doc, pane, item := newTree(t)
	pane.RemoveChild(item)

	rect, err := doc.Rect(item)
	require.ErrorIs(t, err, ErrDetached)
	assert.True(t, rect.IsZero())

	_, err = doc.Rect(nil)
	require.ErrorIs(t, err, ErrDetached)
}

// TestDocument_Hidden covers display: none and zero-sized boxes.
func TestDocument_Hidden(t *testing.T) {
	doc, pane, item := newTree(t)
	assert.False(t, doc.Hidden(item))

	pane.Style.Hidden = true
	assert.True(t, doc.Hidden(item))
	rect, err := doc.Rect(item)
	require.NoError(t, err)
	assert.True(t, rect.IsZero())

	pane.Style.Hidden = false
	item.Width, item.Height = 0, 0
	assert.False(t, doc.Hidden(item), "zero-sized but displayed boxes still generate a client rect")

	pane.RemoveChild(item)
	assert.True(t, doc.Hidden(item))
}

// TestScrollParent covers keyword containers, clipped overflow and fallbacks.
func TestScrollParent(t *testing.T) {
	t.Run("auto on both axes", func(t *testing.T) {
		_, pane, item := newTree(t)
		assert.Same(t, pane, ScrollParent(item))
	})

	t.Run("hidden overflow with larger content", func(t *testing.T) {
		_, pane, item := newTree(t)
		pane.Style = Style{OverflowY: OverflowHidden}
		assert.Same(t, pane, ScrollParent(item))
	})

	t.Run("hidden overflow without larger content", func(t *testing.T) {
		doc, pane, item := newTree(t)
		pane.Style = Style{OverflowY: OverflowHidden}
		pane.ScrollHeight = 0
		assert.Same(t, doc.Root(), ScrollParent(item))
	})

	t.Run("visible overflow resolves to root", func(t *testing.T) {
		doc, pane, item := newTree(t)
		pane.Style = Style{}
		assert.Same(t, doc.Root(), ScrollParent(item))
	})

	t.Run("absolute node skips static ancestors", func(t *testing.T) {
		doc, pane, item := newTree(t)
		item.Style.Position = PositionAbsolute
		assert.Same(t, doc.Root(), ScrollParent(item))

		pane.Style.Position = PositionRelative
		assert.Same(t, pane, ScrollParent(item))
	})

	t.Run("detached node resolves to root", func(t *testing.T) {
		doc, pane, item := newTree(t)
		pane.RemoveChild(item)
		assert.Same(t, doc.Root(), ScrollParent(item))
	})

	t.Run("nil node", func(t *testing.T) {
		assert.Nil(t, ScrollParent(nil))
	})
}

// TestOnOff verifies registration identity and capture matching.
func TestOnOff(t *testing.T) {
	doc := NewDocument(80, 24)
	calls := 0
	l := NewListener(func() { calls++ })

	On(doc.Window(), EventScroll, l, PassiveOptions)
	On(doc.Window(), EventScroll, l, PassiveOptions)
	doc.ScrollTo(0, 1)
	assert.Equal(t, 1, calls, "duplicate registration is ignored")

	Off(doc.Window(), EventScroll, l, Options{Capture: true})
	doc.ScrollTo(0, 2)
	assert.Equal(t, 2, calls, "removal must match the capture flag")

	Off(doc.Window(), EventScroll, l, PassiveOptions)
	doc.ScrollTo(0, 3)
	assert.Equal(t, 2, calls)

	assert.NotPanics(t, func() {
		On(nil, EventScroll, l, PassiveOptions)
		Off(nil, EventScroll, l, PassiveOptions)
	})
}

// TestNode_Attributes verifies attribute storage.
func TestNode_Attributes(t *testing.T) {
	doc := NewDocument(10, 10)
	n := doc.CreateElement("n")

	_, ok := n.Attr("data-x")
	assert.False(t, ok)

	n.SetAttr("data-x", "2")
	v, ok := n.Attr("data-x")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	n.RemoveAttr("data-x")
	_, ok = n.Attr("data-x")
	assert.False(t, ok)
}

// TestRect_ClampToViewport verifies viewport intersection.
func TestRect_ClampToViewport(t *testing.T) {
	clamped := NewRect(-10, -5, 50, 30).ClampToViewport(30, 20)
	assert.Equal(t, 0.0, clamped.Left)
	assert.Equal(t, 0.0, clamped.Top)
	assert.Equal(t, 30.0, clamped.Width)
	assert.Equal(t, 20.0, clamped.Height)

	outside := NewRect(0, 40, 10, 10).ClampToViewport(30, 20)
	assert.Negative(t, outside.Height)
}

// TestDocument_Lookup finds nodes by ID.
func TestDocument_Lookup(t *testing.T) {
	doc, pane, item := newTree(t)
	assert.Same(t, pane, doc.Lookup("pane"))
	assert.Same(t, item, doc.Lookup("item"))
	assert.Nil(t, doc.Lookup("missing"))
}
