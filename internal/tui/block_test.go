package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lazyview/internal/dom"
	"github.com/rshade/lazyview/internal/lazyload"
)

// newBlockFixture returns a document with a single node placed at row y.
func newBlockFixture(t *testing.T, y float64) (*dom.Document, *dom.Node, *lazyload.Engine) {
	t.Helper()
	doc := dom.NewDocument(80, 10)
	node := doc.CreateElement("block")
	node.Y = y
	node.Width = 80
	node.Height = 3
	doc.Root().AppendChild(node)
	return doc, node, lazyload.NewEngine(doc)
}

func TestLazyBlock_Defaults(t *testing.T) {
	b := NewLazyBlock("a", NewCard("a", "A", "body"), BlockOptions{})

	assert.Equal(t, "a", b.ID())
	assert.Equal(t, 1, b.Height(), "height is at least one row")
	assert.False(t, b.Shown())
	assert.Nil(t, b.Region())
	assert.Nil(t, b.Sync(), "sync before mount is a no-op")
	assert.Nil(t, b.Init())
}

func TestLazy_Decorator(t *testing.T) {
	wrap := Lazy(BlockOptions{Height: 4})

	first := wrap("one", NewCard("one", "One", ""))
	second := wrap("two", NewCard("two", "Two", ""))

	assert.Equal(t, 4, first.Height())
	assert.Equal(t, 4, second.Height())
	assert.NotSame(t, first, second)
}

func TestLazyBlock_ShowsContentWhenVisible(t *testing.T) {
	_, node, engine := newBlockFixture(t, 2)
	card := NewCard("a", "Alpha", "alpha body")
	b := NewLazyBlock("a", card, BlockOptions{Height: 3, Region: lazyload.DefaultOptions()})

	var notified []*LazyBlock
	b.Mount(engine, node, func(lb *LazyBlock) { notified = append(notified, lb) }, zerolog.Nop())

	require.Len(t, notified, 1)
	assert.Same(t, b, notified[0])
	assert.False(t, b.Shown(), "content waits for Sync")

	cmd := b.Sync()
	require.NotNil(t, cmd, "first show initialises the content")
	assert.True(t, b.Shown())
	assert.Equal(t, 1, b.Renders())
	assert.Equal(t, 1, card.Inits())

	b.Update(cmd())
	assert.True(t, card.Loaded())
	assert.Contains(t, b.View(), "Alpha")

	assert.Nil(t, b.Sync(), "no change, no render")
	assert.Equal(t, 1, b.Renders())
}

func TestLazyBlock_PlaceholderUntilVisible(t *testing.T) {
	doc, node, engine := newBlockFixture(t, 40)
	card := NewCard("a", "Alpha", "alpha body")
	b := NewLazyBlock("a", card, BlockOptions{
		Height:      3,
		Region:      lazyload.DefaultOptions(),
		Placeholder: NewPlaceholder("waiting"),
	})

	dirty := 0
	b.Mount(engine, node, func(*LazyBlock) { dirty++ }, zerolog.Nop())

	assert.Zero(t, dirty)
	assert.Contains(t, b.View(), "waiting")
	assert.NotContains(t, b.View(), "Alpha")

	_, cmd := b.Update(cardLoadedMsg{id: "a"})
	assert.Nil(t, cmd)
	assert.False(t, card.Loaded(), "hidden content receives no messages")

	doc.ScrollTo(0, 35)
	assert.Equal(t, 1, dirty)

	b.Sync()
	assert.True(t, b.Shown())
	assert.Contains(t, b.View(), "Alpha")
}

func TestLazyBlock_BlankFrameWithoutPlaceholder(t *testing.T) {
	_, node, engine := newBlockFixture(t, 40)
	b := NewLazyBlock("a", NewCard("a", "Alpha", ""), BlockOptions{Height: 3, Region: lazyload.DefaultOptions()})
	b.Mount(engine, node, nil, zerolog.Nop())

	view := b.View()
	assert.NotContains(t, view, "Alpha")
	assert.Len(t, splitLines(view), 3)
	assert.Equal(t, view, b.View())
}

func TestLazyBlock_UnmountIfInvisibleReinitialises(t *testing.T) {
	doc, node, engine := newBlockFixture(t, 2)
	card := NewCard("a", "Alpha", "")
	opts := lazyload.DefaultOptions()
	opts.UnmountIfInvisible = true
	b := NewLazyBlock("a", card, BlockOptions{Height: 3, Region: opts})
	b.Mount(engine, node, nil, zerolog.Nop())

	b.Sync()
	require.True(t, b.Shown())

	doc.ScrollTo(0, 30)
	b.Sync()
	assert.False(t, b.Shown())
	assert.Equal(t, 2, b.Renders())

	doc.ScrollTo(0, 0)
	require.NotNil(t, b.Sync())
	assert.True(t, b.Shown())
	assert.Equal(t, 2, card.Inits())
}

func TestLazyBlock_StaysShownWithoutUnmountIfInvisible(t *testing.T) {
	doc, node, engine := newBlockFixture(t, 2)
	b := NewLazyBlock("a", NewCard("a", "Alpha", ""), BlockOptions{Height: 3, Region: lazyload.DefaultOptions()})
	b.Mount(engine, node, nil, zerolog.Nop())
	b.Sync()

	doc.ScrollTo(0, 30)
	assert.Nil(t, b.Sync())
	assert.True(t, b.Shown())
	assert.Equal(t, 1, b.Renders())
}

func TestLazyBlock_Unmount(t *testing.T) {
	doc, node, engine := newBlockFixture(t, 40)
	b := NewLazyBlock("a", NewCard("a", "Alpha", ""), BlockOptions{Height: 3, Region: lazyload.DefaultOptions()})

	dirty := 0
	b.Mount(engine, node, func(*LazyBlock) { dirty++ }, zerolog.Nop())
	b.Unmount(engine)
	b.Unmount(engine)

	assert.False(t, engine.Registered(b.Region()))
	doc.ScrollTo(0, 35)
	assert.Zero(t, dirty)
}

func TestLazyBlock_SetWidthDropsFrame(t *testing.T) {
	b := NewLazyBlock("a", NewCard("a", "Alpha", ""), BlockOptions{Height: 2})
	b.SetWidth(20)
	narrow := b.View()
	b.SetWidth(40)
	assert.NotEqual(t, narrow, b.View())
}

func TestPlaceholder(t *testing.T) {
	p := NewPlaceholder("soon")

	assert.Nil(t, p.Init())
	model, cmd := p.Update(tea.KeyMsg{})
	assert.Equal(t, p, model)
	assert.Nil(t, cmd)
	assert.Contains(t, p.View(), "soon")
}
