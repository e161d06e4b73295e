package lazyload

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/lazyview/internal/limiter"
)

// Offset slots in a normalized offset.
const (
	offsetTop = iota
	offsetBottom
	offsetLeft
	offsetRight
)

// Delay configures one timing limiter. The zero value means "not configured".
type Delay struct {
	set  bool
	wait time.Duration
}

// DelayOf returns a configured Delay. A non-positive wait selects limiter.DefaultWait.
func DelayOf(wait time.Duration) Delay {
	if wait <= 0 {
		wait = limiter.DefaultWait
	}
	return Delay{set: true, wait: wait}
}

// Set reports whether the delay was configured.
func (d Delay) Set() bool { return d.set }

// Wait returns the interval, or zero when unset.
func (d Delay) Wait() time.Duration { return d.wait }

// Options configures one region. They are read once at mount.
type Options struct {
	// Once stops tracking the region after it first becomes visible.
	Once bool

	// Offset widens the viewport test. One value applies to every side, two values are
	// top and bottom, four values are top, bottom, left, right.
	Offset []float64

	// Overflow measures against the nearest scroll container instead of the viewport.
	Overflow bool

	// CheckHorizontal also requires horizontal overlap.
	CheckHorizontal bool

	// UnmountIfInvisible re-renders the region when it leaves the viewport.
	UnmountIfInvisible bool

	// Scroll and Resize select the global events bound by the first mount.
	Scroll bool
	Resize bool

	// Debounce and Throttle select the shared handler policy. Debounce wins when both are set.
	Debounce Delay
	Throttle Delay

	// ScrollContainer names a node used instead of the window for global scroll events.
	ScrollContainer string
}

// DefaultOptions returns the options a region gets when nothing is configured.
func DefaultOptions() Options {
	return Options{Scroll: true}
}

// normalizeOffset expands the configured offset to top, bottom, left, right and logs
// shapes that cannot express what was asked for.
func normalizeOffset(opts Options, log zerolog.Logger) [4]float64 {
	var out [4]float64
	switch len(opts.Offset) {
	case 0:
	case 1:
		v := opts.Offset[0]
		out = [4]float64{v, v, v, v}
	case 2:
		out[offsetTop], out[offsetBottom] = opts.Offset[0], opts.Offset[1]
		if opts.CheckHorizontal {
			log.Warn().
				Floats64("offset", opts.Offset).
				Msg("check_horizontal needs a single offset or four offsets; left and right default to 0")
		}
	case 4:
		copy(out[:], opts.Offset)
	default:
		log.Warn().
			Floats64("offset", opts.Offset).
			Msg("offset must have 1, 2 or 4 values; using 0")
	}
	return out
}

// validateOptions reports misconfigurations. None of them is fatal.
func validateOptions(opts Options, log zerolog.Logger) {
	if opts.Debounce.Set() && opts.Throttle.Set() {
		log.Warn().
			Dur("debounce", opts.Debounce.Wait()).
			Dur("throttle", opts.Throttle.Wait()).
			Msg("both debounce and throttle are set; debounce is used")
	}
	if opts.Overflow && opts.ScrollContainer != "" {
		log.Debug().
			Str("scroll_container", opts.ScrollContainer).
			Msg("scroll container only applies to non-overflow global listeners")
	}
}
