package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lazyview/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Long:  "Prints the effective value of a dotted configuration key, after environment and project overrides.",
		Example: `  lazyview config get region.offset
  lazyview config get logging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			cmd.Println(value)
			return nil
		},
	}
}
