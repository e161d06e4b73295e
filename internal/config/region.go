package config

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/lazyview/internal/lazyload"
)

// RegionConfig holds the default options for lazy regions.
type RegionConfig struct {
	Once               bool   `yaml:"once"`
	Offset             Offset `yaml:"offset"`
	Overflow           bool   `yaml:"overflow"`
	CheckHorizontal    bool   `yaml:"check_horizontal"`
	UnmountIfInvisible bool   `yaml:"unmount_if_invisible"`
	Scroll             bool   `yaml:"scroll"`
	Resize             bool   `yaml:"resize"`
	Debounce           Delay  `yaml:"debounce"`
	Throttle           Delay  `yaml:"throttle"`
	Height             int    `yaml:"height"`
	ScrollContainer    string `yaml:"scroll_container,omitempty"`
}

// DefaultRegionConfig mirrors lazyload.DefaultOptions plus resize tracking for terminals.
func DefaultRegionConfig() RegionConfig {
	return RegionConfig{
		Offset: Offset{0},
		Scroll: true,
		Resize: true,
		Height: defaultBlockRows,
	}
}

// Validate checks offset shape and height.
func (r RegionConfig) Validate() error {
	switch len(r.Offset) {
	case 0, 1, 2, 4:
	default:
		return fmt.Errorf("region.offset must have 1, 2 or 4 values, got %d", len(r.Offset))
	}
	if r.Height < 0 {
		return fmt.Errorf("region.height must be >= 0, got %d", r.Height)
	}
	return nil
}

// Options converts the config into engine options.
func (r RegionConfig) Options() lazyload.Options {
	opts := lazyload.Options{
		Once:               r.Once,
		Offset:             []float64(r.Offset),
		Overflow:           r.Overflow,
		CheckHorizontal:    r.CheckHorizontal,
		UnmountIfInvisible: r.UnmountIfInvisible,
		Scroll:             r.Scroll,
		Resize:             r.Resize,
		ScrollContainer:    r.ScrollContainer,
	}
	if r.Debounce.Enabled {
		opts.Debounce = lazyload.DelayOf(r.Debounce.Wait)
	}
	if r.Throttle.Enabled {
		opts.Throttle = lazyload.DelayOf(r.Throttle.Wait)
	}
	return opts
}

// Delay is a limiter setting written as a bool (default interval), a number of
// milliseconds, or a duration string.
type Delay struct {
	Enabled bool
	Wait    time.Duration
}

// UnmarshalYAML accepts false, true, 250 or "250ms".
func (d *Delay) UnmarshalYAML(value *yaml.Node) error {
	*d = Delay{}
	switch value.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var enabled bool
		if err := value.Decode(&enabled); err != nil {
			return err
		}
		d.Enabled = enabled
		return nil
	case "!!int":
		ms, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("delay %q: %w", value.Value, err)
		}
		if ms < 0 {
			return fmt.Errorf("delay must be >= 0, got %d", ms)
		}
		d.Enabled = true
		d.Wait = time.Duration(ms) * time.Millisecond
		return nil
	case "!!str":
		wait, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("delay %q: %w", value.Value, err)
		}
		d.Enabled = true
		d.Wait = wait
		return nil
	default:
		return fmt.Errorf("delay must be a bool, milliseconds or a duration, got %s", value.ShortTag())
	}
}

// MarshalYAML writes false, true or milliseconds.
func (d Delay) MarshalYAML() (interface{}, error) {
	switch {
	case !d.Enabled:
		return false, nil
	case d.Wait == 0:
		return true, nil
	default:
		return d.Wait.Milliseconds(), nil
	}
}

// Offset is one number or a list of numbers.
type Offset []float64

// UnmarshalYAML accepts a scalar or a sequence.
func (o *Offset) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() == "!!null" {
			*o = nil
			return nil
		}
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("offset: %w", err)
		}
		*o = Offset{v}
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := value.Decode(&vs); err != nil {
			return fmt.Errorf("offset: %w", err)
		}
		*o = vs
		return nil
	default:
		return fmt.Errorf("offset must be a number or a list of numbers")
	}
}

// MarshalYAML writes a single offset as a scalar.
func (o Offset) MarshalYAML() (interface{}, error) {
	if len(o) == 1 {
		return o[0], nil
	}
	return []float64(o), nil
}
