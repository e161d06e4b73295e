// Package limiter rate-limits a callback under one of two coalescing policies.
//
// Debounce fires on the trailing edge once calls stop arriving for the wait interval.
// Throttle fires on the leading edge and drops calls until the window closes; it never
// schedules a trailing call, so the last event of a burst may go unhandled until the
// next one arrives.
//
// Timing goes through a Clock so hosts can route timer callbacks onto their own event
// loop and tests can advance time by hand.
package limiter
