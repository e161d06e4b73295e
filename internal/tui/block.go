package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/lazyview/internal/dom"
	"github.com/rshade/lazyview/internal/lazyload"
)

// BlockOptions configures a LazyBlock.
type BlockOptions struct {
	// Region holds the visibility options handed to the engine.
	Region lazyload.Options

	// Height is the number of rows the block reserves, loaded or not.
	Height int

	// Placeholder is shown until the block becomes visible. When nil a blank box of
	// Height rows is shown instead.
	Placeholder tea.Model
}

// LazyBlock renders its content only once the engine reports it visible.
type LazyBlock struct {
	id          string
	content     tea.Model
	opts        BlockOptions
	region      *lazyload.Region
	node        *dom.Node
	width       int
	shown       bool
	initialized bool
	renders     int
	frame       string
	notify      func(*LazyBlock)
}

// NewLazyBlock wraps content in a lazy block.
func NewLazyBlock(id string, content tea.Model, opts BlockOptions) *LazyBlock {
	return &LazyBlock{
		id:      id,
		content: content,
		opts:    opts,
		width:   defaultWidth,
	}
}

// Lazy returns a decorator that lets any model opt into lazy loading with opts.
//
//	wrap := tui.Lazy(tui.BlockOptions{Height: 5, Region: lazyload.Options{Once: true}})
//	block := wrap("chart", chartModel)
func Lazy(opts BlockOptions) func(id string, content tea.Model) *LazyBlock {
	return func(id string, content tea.Model) *LazyBlock {
		return NewLazyBlock(id, content, opts)
	}
}

// ID returns the block identifier.
func (b *LazyBlock) ID() string { return b.id }

// Height returns the reserved row count.
func (b *LazyBlock) Height() int { return max(b.opts.Height, 1) }

// Shown reports whether the content (rather than the placeholder) is rendered.
func (b *LazyBlock) Shown() bool { return b.shown }

// Renders returns how many visibility-driven re-renders the block performed.
func (b *LazyBlock) Renders() int { return b.renders }

// Region returns the engine handle, or nil before Mount.
func (b *LazyBlock) Region() *lazyload.Region { return b.region }

// Content returns the wrapped model.
func (b *LazyBlock) Content() tea.Model { return b.content }

// Mount registers the block with engine using node as its measured box. notify is called
// whenever the engine asks the block to re-render.
func (b *LazyBlock) Mount(engine *lazyload.Engine, node *dom.Node, notify func(*LazyBlock), log zerolog.Logger) {
	if b.opts.Height <= 0 && b.opts.Placeholder == nil {
		log.Warn().Str("block", b.id).Msg("block has neither height nor placeholder; reserving one row")
	}

	b.node = node
	b.notify = notify
	b.region = engine.NewRegion(node, b.opts.Region, func() {
		if b.notify != nil {
			b.notify(b)
		}
	})
	engine.Mount(b.region)
}

// Unmount removes the block from engine.
func (b *LazyBlock) Unmount(engine *lazyload.Engine) {
	if b.region == nil {
		return
	}
	engine.Unmount(b.region)
	b.notify = nil
}

// Sync applies a pending visibility change. It is the only place the block re-renders for
// visibility, and it does nothing unless the visibility actually changed. Newly shown
// content is initialised and its command returned.
func (b *LazyBlock) Sync() tea.Cmd {
	if b.region == nil || !b.region.ShouldRender() {
		return nil
	}
	b.shown = b.region.MarkRendered()
	b.renders++
	b.frame = ""

	if b.shown && !b.initialized {
		b.initialized = true
		return b.content.Init()
	}
	if !b.shown {
		b.initialized = false
	}
	return nil
}

// SetWidth resizes the block and drops the cached placeholder frame.
func (b *LazyBlock) SetWidth(width int) {
	if width != b.width {
		b.width = width
		b.frame = ""
	}
}

// Init satisfies tea.Model; content is initialised when it first becomes visible.
func (b *LazyBlock) Init() tea.Cmd {
	return nil
}

// Update forwards messages to the content while it is shown.
func (b *LazyBlock) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !b.shown {
		return b, nil
	}
	var cmd tea.Cmd
	b.content, cmd = b.content.Update(msg)
	return b, cmd
}

// View renders the content when shown, otherwise the placeholder, always Height rows tall.
func (b *LazyBlock) View() string {
	box := lipgloss.NewStyle().Width(b.width).Height(b.Height()).MaxHeight(b.Height())

	if b.shown {
		return box.Render(b.content.View())
	}
	if b.opts.Placeholder != nil {
		return box.Render(b.opts.Placeholder.View())
	}
	if b.frame == "" {
		b.frame = box.Render("")
	}
	return b.frame
}
