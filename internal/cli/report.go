package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/lazyview/internal/config"
	"github.com/rshade/lazyview/internal/logging"
	"github.com/rshade/lazyview/internal/tui"
)

// Report output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// Report is the result of a headless sweep.
type Report struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	ScrollY     int      `json:"scroll_y"`
	Blocks      int      `json:"blocks"`
	Tracked     int      `json:"tracked"`
	Visible     []string `json:"visible"`
	Loaded      int      `json:"loaded"`
	Renders     int      `json:"renders"`
	Sweeps      int      `json:"sweeps"`
	Policy      string   `json:"policy"`
	ContentRows int      `json:"content_rows"`
}

// NewReportCmd creates the headless report command.
func NewReportCmd() *cobra.Command {
	var (
		flags  documentFlags
		scroll int
		width  int
		height int
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report which blocks are visible at a scroll offset",
		Long: `Builds the demo document without a terminal, scrolls it to the given row, runs a
full visibility sweep and prints the visible blocks.`,
		Example: `  lazyview report --scroll 120
  lazyview report --blocks 50 --block-height 5 --height 30 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if width <= 0 || height <= 0 || scroll < 0 {
				return fmt.Errorf("%w: width and height must be > 0 and scroll >= 0", ErrInvalidFlag)
			}
			if output != formatText && output != formatJSON {
				return fmt.Errorf("%w: output must be %q or %q, got %q", ErrInvalidFlag, formatText, formatJSON, output)
			}

			report, err := buildReport(cmd, &flags, scroll, width, height)
			if err != nil {
				return err
			}
			if output == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return renderReport(cmd.OutOrStdout(), report)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&scroll, "scroll", 0, "first visible row")
	cmd.Flags().IntVar(&width, "width", 80, "viewport width")
	cmd.Flags().IntVar(&height, "height", 24, "viewport height in rows")
	cmd.Flags().StringVarP(&output, "output", "o", formatText, "output format: text or json")

	return cmd
}

func buildReport(cmd *cobra.Command, flags *documentFlags, scroll, width, height int) (*Report, error) {
	cfg := config.GetGlobalConfig()
	n, blockHeight, opts, err := flags.options(cmd, cfg)
	if err != nil {
		return nil, err
	}

	log := logging.ComponentLogger(*logging.FromContext(cmd.Context()), "report")
	// One extra row for the status bar, which the report never draws.
	model := tui.NewDocumentModel(
		buildBlocks(n, blockHeight, opts),
		[]tui.DocumentOption{tui.WithSize(width, height+1), tui.WithLogger(log)},
	)
	defer model.Close()

	model.ScrollTo(scroll)
	model.ForceCheck()

	report := &Report{
		Width:       width,
		Height:      height,
		ScrollY:     model.ScrollY(),
		Blocks:      n,
		Visible:     []string{},
		Loaded:      len(model.ShownBlocks()),
		Renders:     model.RenderCount(),
		ContentRows: n * blockHeight,
	}
	for _, b := range model.Blocks() {
		if b.Region().Visible() {
			report.Visible = append(report.Visible, b.ID())
		}
	}

	stats := model.Engine().Stats()
	report.Tracked = stats.Registered
	report.Sweeps = stats.Sweeps
	report.Policy = string(stats.Policy)

	log.Debug().
		Int("scroll", report.ScrollY).
		Int("visible", len(report.Visible)).
		Msg("report built")
	return report, nil
}

func renderReport(w io.Writer, r *Report) error {
	p := message.NewPrinter(language.English)

	lines := []string{
		p.Sprintf("Viewport:  %dx%d at row %d of %d", r.Width, r.Height, r.ScrollY, r.ContentRows),
		p.Sprintf("Blocks:    %d (%d tracked)", r.Blocks, r.Tracked),
		p.Sprintf("Visible:   %d", len(r.Visible)),
		p.Sprintf("Loaded:    %d", r.Loaded),
		p.Sprintf("Renders:   %d in %d sweeps (%s)", r.Renders, r.Sweeps, r.Policy),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, id := range r.Visible {
		if _, err := fmt.Fprintf(w, "  %s\n", id); err != nil {
			return err
		}
	}
	return nil
}
