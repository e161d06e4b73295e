package tui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/lazyview/internal/dom"
	"github.com/rshade/lazyview/internal/lazyload"
	"github.com/rshade/lazyview/internal/limiter"
)

// defaultBufferSize is the number of extra blocks rendered above and below the viewport.
const defaultBufferSize = 2

// wheelStep is the number of rows one mouse wheel notch scrolls.
const wheelStep = 3

// DocumentModel is a scrolling Bubble Tea document of lazy blocks. It lays the blocks out
// into a dom tree, feeds scroll and resize events to the engine and re-renders only blocks
// whose visibility changed.
type DocumentModel struct {
	doc    *dom.Document
	engine *lazyload.Engine
	clock  *TeaClock
	logger zerolog.Logger

	blocks  []*LazyBlock
	nodes   []*dom.Node
	offsets []int // first row of each block
	total   int   // total content rows

	// dirty is appended to from engine callbacks, which may run on timer goroutines.
	dirtyMu sync.Mutex
	dirty   []*LazyBlock
	initCmd tea.Cmd

	keys    KeyMap
	spinner spinner.Model

	width      int
	height     int
	scrollY    int
	bufferSize int
	quitting   bool
}

// DocumentOption configures a DocumentModel.
type DocumentOption func(*DocumentModel)

// WithLogger sets the logger used by the document and its engine.
func WithLogger(logger zerolog.Logger) DocumentOption {
	return func(m *DocumentModel) {
		m.logger = logger
	}
}

// WithClock sets the clock used for debounced and throttled sweeps.
func WithClock(clock *TeaClock) DocumentOption {
	return func(m *DocumentModel) {
		m.clock = clock
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) DocumentOption {
	return func(m *DocumentModel) {
		m.width, m.height = width, height
	}
}

// NewDocumentModel lays out blocks top to bottom and mounts every one of them.
// engineOpts are passed through to the engine after the document's own clock and logger.
func NewDocumentModel(blocks []*LazyBlock, opts []DocumentOption, engineOpts ...lazyload.EngineOption) *DocumentModel {
	m := &DocumentModel{
		blocks:     blocks,
		keys:       DefaultKeyMap(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		width:      defaultWidth,
		height:     defaultHeight,
		bufferSize: defaultBufferSize,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	var clock limiter.Clock = limiter.RealClock{}
	if m.clock != nil {
		clock = m.clock
	}

	m.doc = dom.NewDocument(float64(m.width), float64(m.viewHeight()))
	m.engine = lazyload.NewEngine(m.doc, append([]lazyload.EngineOption{
		lazyload.WithClock(clock),
		lazyload.WithLogger(m.logger),
	}, engineOpts...)...)

	m.layout()
	for i, b := range m.blocks {
		b.SetWidth(m.width)
		b.Mount(m.engine, m.nodes[i], m.markDirty, m.logger)
	}
	m.initCmd = m.syncDirty()

	m.logger.Debug().Int("blocks", len(m.blocks)).Int("rows", m.total).Msg("document mounted")
	return m
}

// layout creates or updates one node per block and records row offsets.
func (m *DocumentModel) layout() {
	root := m.doc.Root()
	root.Width = float64(m.width)

	m.offsets = make([]int, len(m.blocks))
	row := 0
	for i, b := range m.blocks {
		m.offsets[i] = row
		if i == len(m.nodes) {
			m.nodes = append(m.nodes, m.doc.CreateElement(b.ID()))
			root.AppendChild(m.nodes[i])
		}
		n := m.nodes[i]
		n.Y = float64(row)
		n.Width = float64(m.width)
		n.Height = float64(b.Height())
		row += b.Height()
	}
	m.total = row
	root.Height = float64(m.total)
}

func (m *DocumentModel) markDirty(b *LazyBlock) {
	m.dirtyMu.Lock()
	m.dirty = append(m.dirty, b)
	m.dirtyMu.Unlock()
}

// syncDirty lets every block the engine invalidated re-render.
func (m *DocumentModel) syncDirty() tea.Cmd {
	m.dirtyMu.Lock()
	dirty := m.dirty
	m.dirty = nil
	m.dirtyMu.Unlock()
	if len(dirty) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(dirty))
	for _, b := range dirty {
		cmds = append(cmds, b.Sync())
	}
	return tea.Batch(cmds...)
}

func (m *DocumentModel) viewHeight() int {
	return max(m.height-statusRows, 1)
}

func (m *DocumentModel) maxScroll() int {
	return max(m.total-m.viewHeight(), 0)
}

// Engine returns the visibility engine.
func (m *DocumentModel) Engine() *lazyload.Engine { return m.engine }

// Document returns the layout tree.
func (m *DocumentModel) Document() *dom.Document { return m.doc }

// Blocks returns the blocks in layout order.
func (m *DocumentModel) Blocks() []*LazyBlock { return m.blocks }

// ScrollY returns the first visible row.
func (m *DocumentModel) ScrollY() int { return m.scrollY }

// ScrollTo moves the viewport, clamped to the content, and returns the commands of any
// content that was initialised as a result.
func (m *DocumentModel) ScrollTo(row int) tea.Cmd {
	row = min(max(row, 0), m.maxScroll())
	if row == m.scrollY {
		return nil
	}
	m.scrollY = row
	m.doc.ScrollTo(0, float64(row))
	return m.syncDirty()
}

// Resize relayouts the blocks for a new terminal size and dispatches a resize event.
func (m *DocumentModel) Resize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	for _, b := range m.blocks {
		b.SetWidth(width)
	}
	m.layout()
	m.doc.SetSize(float64(width), float64(m.viewHeight()))

	if m.scrollY > m.maxScroll() {
		m.scrollY = m.maxScroll()
		m.doc.ScrollTo(0, float64(m.scrollY))
	}
	return m.syncDirty()
}

// Flush re-renders blocks invalidated outside Update, such as by a timer that fired on
// another clock.
func (m *DocumentModel) Flush() tea.Cmd {
	return m.syncDirty()
}

// ForceCheck sweeps every block immediately.
func (m *DocumentModel) ForceCheck() tea.Cmd {
	m.engine.ForceCheck()
	return m.syncDirty()
}

// ForceVisible shows every block.
func (m *DocumentModel) ForceVisible() tea.Cmd {
	m.engine.ForceVisible()
	return m.syncDirty()
}

// ShownBlocks returns the IDs of blocks currently rendering their content.
func (m *DocumentModel) ShownBlocks() []string {
	var ids []string
	for _, b := range m.blocks {
		if b.Shown() {
			ids = append(ids, b.ID())
		}
	}
	return ids
}

// RenderCount returns the total visibility-driven re-renders across blocks.
func (m *DocumentModel) RenderCount() int {
	n := 0
	for _, b := range m.blocks {
		n += b.Renders()
	}
	return n
}

// Close unmounts every block, releasing engine listeners.
func (m *DocumentModel) Close() {
	for _, b := range m.blocks {
		b.Unmount(m.engine)
	}
}

// Init starts the status spinner and the content of blocks visible at mount.
func (m *DocumentModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.initCmd)
}

// Update handles scrolling, resizing, limiter callbacks and forwards the rest to shown blocks.
//
//nolint:gocognit // Message dispatch inherently requires multiple branches.
func (m *DocumentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockMsg:
		msg.fn()
		return m, m.syncDirty()

	case tea.WindowSizeMsg:
		return m, m.Resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.ScrollTo(m.scrollY - wheelStep)
		case tea.MouseButtonWheelDown:
			return m, m.ScrollTo(m.scrollY + wheelStep)
		default:
			return m, nil
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.forward(msg)
}

func (m *DocumentModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m, m.ScrollTo(m.scrollY - 1)
	case key.Matches(msg, m.keys.Down):
		return m, m.ScrollTo(m.scrollY + 1)
	case key.Matches(msg, m.keys.PageUp):
		return m, m.ScrollTo(m.scrollY - m.viewHeight())
	case key.Matches(msg, m.keys.PageDown):
		return m, m.ScrollTo(m.scrollY + m.viewHeight())
	case key.Matches(msg, m.keys.Top):
		return m, m.ScrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		return m, m.ScrollTo(m.maxScroll())
	case key.Matches(msg, m.keys.ForceCheck):
		return m, m.ForceCheck()
	case key.Matches(msg, m.keys.ForceVisible):
		return m, m.ForceVisible()
	}
	return m, m.forward(msg)
}

// forward passes msg to the blocks in the render window; hidden blocks drop it.
func (m *DocumentModel) forward(msg tea.Msg) tea.Cmd {
	from, to := m.renderRange()
	var cmds []tea.Cmd
	for _, b := range m.blocks[from:to] {
		if !b.Shown() {
			continue
		}
		_, cmd := b.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// renderRange returns the block index range overlapping the viewport, widened by the
// buffer for smooth scrolling.
func (m *DocumentModel) renderRange() (int, int) {
	if len(m.blocks) == 0 {
		return 0, 0
	}

	// First block whose bottom is below the top of the viewport.
	from := sort.Search(len(m.blocks), func(i int) bool {
		return m.offsets[i]+m.blocks[i].Height() > m.scrollY
	})
	// First block starting at or below the bottom of the viewport.
	to := sort.Search(len(m.blocks), func(i int) bool {
		return m.offsets[i] >= m.scrollY+m.viewHeight()
	})

	from = max(from-m.bufferSize, 0)
	to = min(to+m.bufferSize, len(m.blocks))
	return from, to
}

// View renders the rows in the viewport followed by the status bar.
func (m *DocumentModel) View() string {
	if m.quitting {
		return ""
	}

	from, to := m.renderRange()
	var lines []string
	firstRow := 0
	if from < len(m.offsets) {
		firstRow = m.offsets[from]
	}
	for _, b := range m.blocks[from:to] {
		lines = append(lines, strings.Split(b.View(), "\n")...)
	}

	start := min(max(m.scrollY-firstRow, 0), len(lines))
	end := min(start+m.viewHeight(), len(lines))
	visible := lines[start:end]
	for len(visible) < m.viewHeight() {
		visible = append(visible, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(visible, "\n"), m.statusBar(from, to))
}

func (m *DocumentModel) statusBar(from, to int) string {
	loading := 0
	for i := from; i < to; i++ {
		top := m.offsets[i]
		if !m.blocks[i].Shown() && top < m.scrollY+m.viewHeight() && top+m.blocks[i].Height() > m.scrollY {
			loading++
		}
	}

	stats := m.engine.Stats()
	indicator := " "
	if loading > 0 {
		indicator = m.spinner.View()
	}

	text := fmt.Sprintf(" %s blocks %d │ tracked %d │ shown %d │ renders %d │ %s │ row %d/%d",
		indicator, len(m.blocks), stats.Registered, len(m.ShownBlocks()), m.RenderCount(),
		policyLabel(stats.Policy), m.scrollY, m.maxScroll())
	return StatusStyle.Width(m.width).MaxWidth(m.width).Render(text)
}

func policyLabel(p lazyload.Policy) string {
	if p == lazyload.PolicyNone {
		return "idle"
	}
	return string(p)
}
