// Package tui hosts lazy regions in a Bubble Tea program.
//
// A LazyBlock wraps any tea.Model and shows a placeholder until the engine reports the block
// visible. DocumentModel stacks blocks vertically, maps scrolling and terminal resizes onto
// the dom document and lets only the blocks whose visibility changed re-render.
package tui
