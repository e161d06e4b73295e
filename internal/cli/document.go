package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/lazyview/internal/config"
	"github.com/rshade/lazyview/internal/lazyload"
	"github.com/rshade/lazyview/internal/tui"
)

// documentFlags are the shared document-shaping flags of demo and report.
type documentFlags struct {
	blocks      int
	blockHeight int
	once        bool
	unmount     bool
	debounceMS  int
	throttleMS  int
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.blocks, "blocks", 0, "number of blocks (0 = config demo.blocks)")
	cmd.Flags().IntVar(&f.blockHeight, "block-height", 0, "rows per block (0 = config demo.block_height)")
	cmd.Flags().BoolVar(&f.once, "once", false, "stop tracking blocks after they first appear")
	cmd.Flags().BoolVar(&f.unmount, "unmount-if-invisible", false, "hide blocks again when they leave the view")
	cmd.Flags().IntVar(&f.debounceMS, "debounce", 0, "debounce sweeps by this many milliseconds")
	cmd.Flags().IntVar(&f.throttleMS, "throttle", 0, "throttle sweeps to one per this many milliseconds")
	cmd.MarkFlagsMutuallyExclusive("debounce", "throttle")
}

// options merges the flags over the configured region defaults.
func (f *documentFlags) options(cmd *cobra.Command, cfg *config.Config) (int, int, lazyload.Options, error) {
	blocks := cfg.Demo.Blocks
	if f.blocks > 0 {
		blocks = f.blocks
	}
	height := cfg.Demo.BlockHeight
	if f.blockHeight > 0 {
		height = f.blockHeight
	}
	if f.blocks < 0 || f.blockHeight < 0 || f.debounceMS < 0 || f.throttleMS < 0 {
		return 0, 0, lazyload.Options{}, fmt.Errorf("%w: block counts, heights and delays must be >= 0", ErrInvalidFlag)
	}

	opts := cfg.Region.Options()
	if cmd.Flags().Changed("once") {
		opts.Once = f.once
	}
	if cmd.Flags().Changed("unmount-if-invisible") {
		opts.UnmountIfInvisible = f.unmount
	}
	if f.debounceMS > 0 {
		opts.Debounce = lazyload.DelayOf(time.Duration(f.debounceMS) * time.Millisecond)
		opts.Throttle = lazyload.Delay{}
	}
	if f.throttleMS > 0 {
		opts.Throttle = lazyload.DelayOf(time.Duration(f.throttleMS) * time.Millisecond)
		opts.Debounce = lazyload.Delay{}
	}
	return blocks, height, opts, nil
}

// buildBlocks creates n card blocks of height rows.
func buildBlocks(n, height int, opts lazyload.Options) []*tui.LazyBlock {
	wrap := tui.Lazy(tui.BlockOptions{
		Height:      height,
		Region:      opts,
		Placeholder: tui.NewPlaceholder("…"),
	})

	blocks := make([]*tui.LazyBlock, n)
	for i := range blocks {
		id := fmt.Sprintf("block-%04d", i)
		card := tui.NewCard(id, fmt.Sprintf("Block %d", i), fmt.Sprintf("rows %d-%d", i*height, (i+1)*height-1))
		blocks[i] = wrap(id, card)
	}
	return blocks
}
