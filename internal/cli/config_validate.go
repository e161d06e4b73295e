package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lazyview/internal/config"
)

// exitCodeInvalidConfig is returned by config validate for an invalid file.
const exitCodeInvalidConfig = 2

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate configuration file",
		Long: `Validates a configuration file for syntax and semantic correctness.

This includes:
- Schema version compatibility
- Region offset shape (1, 2 or 4 values)
- Debounce and throttle values
- Demo sizes`,
		Example: `  # Validate current configuration
  lazyview config validate

  # Validate a specific file and show the effective values
  lazyview config validate ./lazyview.yaml --verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigValidate(cmd, path, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, path string, verbose bool) error {
	cfg := config.GetGlobalConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return &ExitError{
				ExitCode: exitCodeInvalidConfig,
				Reason:   fmt.Sprintf("configuration validation failed: %v", err),
			}
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return &ExitError{
			ExitCode: exitCodeInvalidConfig,
			Reason:   fmt.Sprintf("configuration validation failed: %v", err),
		}
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if cfg.Path() != "" {
		cmd.Printf("  File: %s\n", cfg.Path())
	}
	cmd.Printf("  Schema version: %s\n", cfg.Version)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)

	opts := cfg.Region.Options()
	cmd.Printf("  Region offset: %v\n", []float64(cfg.Region.Offset))
	cmd.Printf("  Region once: %t, overflow: %t\n", opts.Once, opts.Overflow)
	switch {
	case opts.Debounce.Set():
		cmd.Printf("  Timing: debounce %v\n", opts.Debounce.Wait())
	case opts.Throttle.Set():
		cmd.Printf("  Timing: throttle %v\n", opts.Throttle.Wait())
	default:
		cmd.Println("  Timing: every event")
	}
	cmd.Printf("  Demo: %d blocks of %d rows\n", cfg.Demo.Blocks, cfg.Demo.BlockHeight)
}
