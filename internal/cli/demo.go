package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/lazyview/internal/config"
	"github.com/rshade/lazyview/internal/logging"
	"github.com/rshade/lazyview/internal/tui"
)

const demoCmdName = "demo"

// NewDemoCmd creates the interactive demo command.
func NewDemoCmd() *cobra.Command {
	var flags documentFlags

	cmd := &cobra.Command{
		Use:   demoCmdName,
		Short: "Scroll through an interactive document of lazy blocks",
		Long: `Opens a full-screen document of card blocks. Each block renders a placeholder
until it scrolls into view. The status bar shows how many blocks are tracked, shown
and how often they re-rendered.

Keys: j/k or arrows scroll, pgup/pgdn page, g/G jump, r rechecks, v loads everything,
q quits. The mouse wheel scrolls too.`,
		Example: `  lazyview demo
  lazyview demo --blocks 1000 --block-height 4 --throttle 100
  lazyview demo --once --debounce 200`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			return runDemo(cmd, &flags)
		},
	}
	flags.register(cmd)

	return cmd
}

func runDemo(cmd *cobra.Command, flags *documentFlags) error {
	cfg := config.GetGlobalConfig()
	n, height, opts, err := flags.options(cmd, cfg)
	if err != nil {
		return err
	}

	log := logging.ComponentLogger(*logging.FromContext(cmd.Context()), "tui")
	clock := tui.NewTeaClock()
	model := tui.NewDocumentModel(
		buildBlocks(n, height, opts),
		[]tui.DocumentOption{tui.WithClock(clock), tui.WithLogger(log)},
	)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	clock.Attach(p)

	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running demo: %w", err)
	}

	stats := model.Engine().Stats()
	log.Info().
		Int("blocks", n).
		Int("renders", model.RenderCount()).
		Int("sweeps", stats.Sweeps).
		Msg("demo finished")
	return nil
}
