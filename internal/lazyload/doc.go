// Package lazyload decides when deferred regions become visible.
//
// An Engine holds the registry of mounted regions, the pending list of one-shot regions
// that just became visible, and the single shared scroll/resize handler. Hosts create one
// Engine per document, mount a Region for every lazy element, and feed scroll and resize
// events through the dom targets the engine listens on. Key behaviours:
//   - Visibility is tested against the viewport, or against the intersection of the
//     viewport and the nearest scroll container when a region opts into overflow mode
//   - Sweeps visit regions in mount order; one-shot removals apply after the sweep
//   - Render callbacks fire only when a region's visibility actually changes
//   - The shared handler is plain, debounced or throttled; a conflicting mount rebuilds it
//   - Measurement failures and panics inside a single check never abort a sweep
package lazyload
