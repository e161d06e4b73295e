package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/lazyview/internal/config"
)

// ErrConfigExists is returned by config init when the file is already present.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project it writes a project overlay at ./.lazyview/config.yaml instead of the
// user file.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

By default the user file $LAZYVIEW_HOME/config.yaml (~/.lazyview/config.yaml) is written.
Use --project to create a .lazyview/config.yaml overlay in the current directory; its
sections replace the user file's sections for commands run inside the project.`,
		Example: `  # Create user configuration
  lazyview config init

  # Create a project overlay
  lazyview config init --project

  # Create configuration, overwriting existing
  lazyview config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := initTargetPath(project)
			if err != nil {
				return err
			}
			return initConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create a project overlay in ./.lazyview")

	return cmd
}

func initTargetPath(project bool) (string, error) {
	if !project {
		return config.GetConfigPath()
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return filepath.Join(wd, ".lazyview", "config.yaml"), nil
}

// initConfig writes the default configuration to path.
func initConfig(cmd *cobra.Command, path string, force bool) error {
	// Check if config already exists and force isn't set
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
