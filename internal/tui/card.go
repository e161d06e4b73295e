package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// cardLoadedMsg marks a card's content as loaded.
type cardLoadedMsg struct {
	id string
}

// Card is a small demo model standing in for expensive content. It counts Init calls so
// callers can see how often it was (re)initialised.
type Card struct {
	id     string
	title  string
	body   string
	loaded bool
	inits  int
}

// NewCard creates a card.
func NewCard(id, title, body string) *Card {
	return &Card{id: id, title: title, body: body}
}

// Inits returns how many times Init ran.
func (c *Card) Inits() int { return c.inits }

// Loaded reports whether the card received its load message.
func (c *Card) Loaded() bool { return c.loaded }

// Init simulates loading the card body.
func (c *Card) Init() tea.Cmd {
	c.inits++
	c.loaded = false
	id := c.id
	return func() tea.Msg { return cardLoadedMsg{id: id} }
}

// Update handles the load message.
func (c *Card) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m, ok := msg.(cardLoadedMsg); ok && m.id == c.id {
		c.loaded = true
	}
	return c, nil
}

// View renders the card.
func (c *Card) View() string {
	body := c.body
	if !c.loaded {
		body = PlaceholderStyle.Render("loading…")
	}
	title := CardTitleStyle.Render(c.title)
	meta := PlaceholderStyle.Render(fmt.Sprintf("init #%d", c.inits))
	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, meta))
}

// Placeholder is a static model shown while a block waits to become visible.
type Placeholder struct {
	text string
}

// NewPlaceholder creates a placeholder showing text.
func NewPlaceholder(text string) Placeholder {
	return Placeholder{text: text}
}

// Init satisfies tea.Model.
func (p Placeholder) Init() tea.Cmd { return nil }

// Update satisfies tea.Model.
func (p Placeholder) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }

// View renders the placeholder text.
func (p Placeholder) View() string { return PlaceholderStyle.Render(p.text) }
