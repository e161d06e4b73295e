package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/lazyview/internal/config"
	"github.com/rshade/lazyview/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// ExitError carries a process exit code out of a command.
type ExitError struct {
	ExitCode int
	Reason   string
}

func (e *ExitError) Error() string {
	return e.Reason
}

// NewRootCmd creates the root Cobra command for the lazyview CLI.
// It loads configuration (--config, project overlay, user file), wires up logging and
// registers the demo, report, bench and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "lazyview",
		Short:   "Lazy-load visibility engine for terminal documents",
		Long:    "lazyview: render document blocks only when they scroll into view",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $LAZYVIEW_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project .lazyview directory holding a config overlay")
	cmd.AddCommand(NewDemoCmd(), NewReportCmd(), NewBenchCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Scroll through an interactive document of lazy blocks
  lazyview demo --blocks 500 --debounce 150

  # Report which blocks are visible at a scroll offset
  lazyview report --blocks 100 --scroll 240 --height 40

  # Sweep 16 independent engines concurrently
  lazyview bench --engines 16 --regions 1000 --steps 200

  # Initialize configuration
  lazyview config init

  # Read a configuration value
  lazyview config get region.offset`

// loadConfig resolves the configuration for this invocation and installs it globally.
// An explicit --config file must load cleanly; otherwise the user file is used with any
// project overlay merged on top.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		config.SetGlobalConfig(cfg)
		return nil
	}

	flagDir, _ := cmd.Flags().GetString("project-dir")
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	projectDir := config.ResolveProjectDir(cmd.Context(), flagDir, wd)
	config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), projectDir))
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigGetCmd(), NewConfigValidateCmd())
	return cmd
}
