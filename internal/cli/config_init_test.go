package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lazyview/internal/cli"
	"github.com/rshade/lazyview/internal/config"
)

// setupCLITest isolates the user config directory and project overlay and registers
// cleanup for global state. It returns the isolated LAZYVIEW_HOME.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInit_CreatesUserConfig(t *testing.T) {
	home := setupCLITest(t)

	output, err := execute(t, "config", "init")
	require.NoError(t, err)

	configPath := filepath.Join(home, "config.yaml")
	assert.Contains(t, output, "Configuration initialized at "+configPath)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Region, cfg.Region)
	assert.Equal(t, config.SchemaVersion, cfg.Version)
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	home := setupCLITest(t)
	configPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1.0.0\n"), 0o600))

	_, err := execute(t, "config", "init")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrConfigExists))
	data, readErr := os.ReadFile(configPath)
	require.NoError(t, readErr)
	assert.Equal(t, "version: 1.0.0\n", string(data), "existing file is untouched")
}

func TestConfigInit_Force(t *testing.T) {
	home := setupCLITest(t)
	configPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1.0.0\n"), 0o600))

	_, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "region:")
}

func TestConfigInit_Project(t *testing.T) {
	setupCLITest(t)
	wd := t.TempDir()
	t.Chdir(wd)

	output, err := execute(t, "config", "init", "--project")
	require.NoError(t, err)

	overlay := filepath.Join(wd, ".lazyview", "config.yaml")
	assert.Contains(t, output, overlay)
	_, statErr := os.Stat(overlay)
	assert.NoError(t, statErr)
}
