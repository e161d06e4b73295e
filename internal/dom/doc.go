// Package dom provides the in-memory layout tree that lazy regions are measured against.
//
// A Document owns a root element, a viewport size and a window scroll offset. Nodes carry a
// layout box relative to their parent's content origin, a computed style (overflow, position,
// display) and scroll extents. The package offers the primitives a visibility engine needs:
//   - Bounding rectangles in viewport coordinates, failing with ErrDetached for removed nodes
//   - Event targets with On/Off helpers that honour capture and passive options
//   - ScrollParent resolution of the nearest scrollable ancestor
//   - String attributes, used to keep listener reference counts on shared ancestors
//
// Terminal hosts map one cell to one unit: rows are the vertical axis, columns the horizontal.
package dom
