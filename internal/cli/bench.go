package cli

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/lazyview/internal/config"
	"github.com/rshade/lazyview/internal/dom"
	"github.com/rshade/lazyview/internal/lazyload"
	"github.com/rshade/lazyview/internal/limiter"
	"github.com/rshade/lazyview/internal/logging"
)

// benchViewport is the simulated viewport of every bench engine.
const (
	benchWidth  = 80
	benchHeight = 24
)

// BenchOptions sizes a bench run.
type BenchOptions struct {
	Engines  int
	Regions  int
	Steps    int
	Parallel int
	Region   lazyload.Options
	Height   int
}

// BenchResult totals a bench run.
type BenchResult struct {
	Engines  int
	Regions  int
	Steps    int
	Sweeps   int64
	Renders  int64
	Elapsed  time.Duration
	Policy   lazyload.Policy
	Tracking int64
}

// NewBenchCmd creates the bench command.
func NewBenchCmd() *cobra.Command {
	var opts BenchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Sweep many independent engines concurrently",
		Long: `Creates independent engines, each with its own document of regions, and scrolls
them through a scripted sequence of offsets in parallel. Debounce and throttle waits run
on a simulated clock so the bench measures sweep cost rather than sleeping.`,
		Example: `  lazyview bench
  lazyview bench --engines 32 --regions 5000 --steps 100 --parallel 8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Engines <= 0 || opts.Regions <= 0 || opts.Steps <= 0 {
				return fmt.Errorf("%w: engines, regions and steps must be > 0", ErrInvalidFlag)
			}
			cfg := config.GetGlobalConfig()
			opts.Region = cfg.Region.Options()
			opts.Height = cfg.Demo.BlockHeight

			log := logging.ComponentLogger(*logging.FromContext(cmd.Context()), "bench")
			result, err := RunBench(cmd.Context(), opts, log)
			if err != nil {
				return err
			}

			p := message.NewPrinter(language.English)
			_, _ = p.Fprintf(cmd.OutOrStdout(),
				"%d engines x %d regions x %d steps in %v\n", result.Engines, result.Regions, result.Steps,
				result.Elapsed.Round(time.Millisecond))
			_, _ = p.Fprintf(cmd.OutOrStdout(), "sweeps:   %d\n", result.Sweeps)
			_, _ = p.Fprintf(cmd.OutOrStdout(), "renders:  %d\n", result.Renders)
			_, _ = p.Fprintf(cmd.OutOrStdout(), "tracked:  %d\n", result.Tracking)
			_, _ = p.Fprintf(cmd.OutOrStdout(), "policy:   %s\n", result.Policy)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Engines, "engines", 8, "number of independent engines")
	cmd.Flags().IntVar(&opts.Regions, "regions", 1000, "regions per engine")
	cmd.Flags().IntVar(&opts.Steps, "steps", 100, "scroll steps per engine")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", runtime.GOMAXPROCS(0), "engines run at once")

	return cmd
}

// RunBench runs opts.Engines engines concurrently and totals their work. The first failing
// or cancelled engine stops the run.
func RunBench(ctx context.Context, opts BenchOptions, log zerolog.Logger) (*BenchResult, error) {
	height := max(opts.Height, 1)
	result := &BenchResult{Engines: opts.Engines, Regions: opts.Regions, Steps: opts.Steps}

	var sweeps, renders, tracking atomic.Int64
	policies := make([]lazyload.Policy, opts.Engines)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}

	for i := range opts.Engines {
		g.Go(func() error {
			stats, rendered, err := benchEngine(ctx, opts, height)
			if err != nil {
				return fmt.Errorf("engine %d: %w", i, err)
			}
			sweeps.Add(int64(stats.Sweeps))
			renders.Add(rendered)
			tracking.Add(int64(stats.Registered))
			policies[i] = stats.Policy
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	result.Sweeps = sweeps.Load()
	result.Renders = renders.Load()
	result.Tracking = tracking.Load()
	result.Policy = policies[0]

	log.Debug().
		Int("engines", opts.Engines).
		Int64("sweeps", result.Sweeps).
		Dur("elapsed", result.Elapsed).
		Msg("bench finished")
	return result, nil
}

// benchEngine scrolls one document top to bottom and back in opts.Steps steps. It returns
// the engine stats taken before the regions are unmounted.
func benchEngine(ctx context.Context, opts BenchOptions, height int) (lazyload.Stats, int64, error) {
	doc := dom.NewDocument(benchWidth, benchHeight)
	clock := limiter.NewManualClock(time.Unix(0, 0))
	engine := lazyload.NewEngine(doc, lazyload.WithClock(clock))

	var rendered atomic.Int64
	regions := make([]*lazyload.Region, opts.Regions)
	for j := range regions {
		node := doc.CreateElement(fmt.Sprintf("region-%d", j))
		node.Y = float64(j * height)
		node.Width = benchWidth
		node.Height = float64(height)
		doc.Root().AppendChild(node)

		regions[j] = engine.NewRegion(node, opts.Region, func() { rendered.Add(1) })
		engine.Mount(regions[j])
	}

	wait := max(opts.Region.Debounce.Wait(), opts.Region.Throttle.Wait())
	maxScroll := max(opts.Regions*height-benchHeight, 0)

	for step := range opts.Steps {
		if err := ctx.Err(); err != nil {
			return lazyload.Stats{}, 0, err
		}
		doc.ScrollTo(0, float64(scrollAt(step, opts.Steps, maxScroll)))
		clock.Advance(wait)
	}

	stats := engine.Stats()
	for _, r := range regions {
		engine.Unmount(r)
	}
	return stats, rendered.Load(), nil
}

// scrollAt maps step onto a down-then-up sweep of [0, maxScroll].
func scrollAt(step, steps, maxScroll int) int {
	if steps <= 1 || maxScroll == 0 {
		return 0
	}
	half := max(steps/2, 1)
	pos := step % (2 * half)
	if pos > half {
		pos = 2*half - pos
	}
	return pos * maxScroll / half
}
