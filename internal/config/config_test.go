package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/lazyview/internal/lazyload"
	"github.com/rshade/lazyview/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
version: 1.2.0
logging:
  level: debug
region:
  once: true
  offset: [10, 20]
  debounce: 150
  throttle: false
demo:
  blocks: 50
  block_height: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format, "unset keys keep defaults")
	assert.True(t, cfg.Region.Once)
	assert.True(t, cfg.Region.Scroll)
	assert.Equal(t, Offset{10, 20}, cfg.Region.Offset)
	assert.Equal(t, Delay{Enabled: true, Wait: 150 * time.Millisecond}, cfg.Region.Debounce)
	assert.False(t, cfg.Region.Throttle.Enabled)
	assert.Equal(t, 50, cfg.Demo.Blocks)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "future schema", content: "version: 2.0.0\n", wantErr: ErrUnsupportedSchema},
		{name: "garbage schema", content: "version: banana\n", wantErr: ErrUnsupportedSchema},
		{name: "bad offset shape", content: "region:\n  offset: [1, 2, 3]\n"},
		{name: "bad delay", content: "region:\n  debounce: soon\n"},
		{name: "negative delay", content: "region:\n  throttle: -5\n"},
		{name: "zero block height", content: "demo:\n  block_height: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDelay_YAML(t *testing.T) {
	tests := []struct {
		in   string
		want Delay
		out  string
	}{
		{in: "false", want: Delay{}, out: "false"},
		{in: "true", want: Delay{Enabled: true}, out: "true"},
		{in: "250", want: Delay{Enabled: true, Wait: 250 * time.Millisecond}, out: "250"},
		{in: `"1s"`, want: Delay{Enabled: true, Wait: time.Second}, out: "1000"},
		{in: "~", want: Delay{}, out: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got struct {
				D Delay `yaml:"d"`
			}
			require.NoError(t, yaml.Unmarshal([]byte("d: "+tt.in), &got))
			assert.Equal(t, tt.want, got.D)

			out, err := yaml.Marshal(got.D)
			require.NoError(t, err)
			assert.Equal(t, tt.out+"\n", string(out))
		})
	}
}

func TestOffset_YAML(t *testing.T) {
	var got struct {
		A Offset `yaml:"a"`
		B Offset `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 5\nb: [1, 2, 3, 4]\n"), &got))
	assert.Equal(t, Offset{5}, got.A)
	assert.Equal(t, Offset{1, 2, 3, 4}, got.B)

	out, err := yaml.Marshal(got.A)
	require.NoError(t, err)
	assert.Equal(t, "5\n", string(out))

	require.Error(t, yaml.Unmarshal([]byte("a: {x: 1}\n"), &got))
}

func TestRegionConfig_Options(t *testing.T) {
	rc := DefaultRegionConfig()
	rc.UnmountIfInvisible = true
	rc.Throttle = Delay{Enabled: true}
	rc.ScrollContainer = "main"

	opts := rc.Options()
	assert.True(t, opts.Scroll)
	assert.True(t, opts.Resize)
	assert.True(t, opts.UnmountIfInvisible)
	assert.Equal(t, []float64{0}, opts.Offset)
	assert.False(t, opts.Debounce.Set())
	assert.Equal(t, lazyload.DelayOf(0), opts.Throttle)
	assert.Equal(t, "main", opts.ScrollContainer)
}

func TestSaveAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Region.Offset = Offset{1, 2, 3, 4}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Region, loaded.Region)

	v, err := loaded.Get("region.scroll")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	v, err = loaded.Get("demo.blocks")
	require.NoError(t, err)
	assert.Equal(t, "200", v)

	_, err = loaded.Get("region.nope")
	require.ErrorIs(t, err, ErrUnknownKey)
	_, err = loaded.Get("demo.blocks.deeper")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestNew_HomeAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvLogLevel, "warn")
	writeFile(t, filepath.Join(home, "config.yaml"), "demo:\n  blocks: 7\n")

	cfg := New()
	assert.Equal(t, 7, cfg.Demo.Blocks)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, cfg.Path(), path)
}

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvLogFile, filepath.Join(t.TempDir(), "logs", "lazyview.log"))
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, GetGlobalConfig())
	require.NoError(t, EnsureLogDir())
	require.NoError(t, EnsureConfigDir())

	lc := GetLoggingConfig()
	converted := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, converted.Output)

	replacement := Default()
	SetGlobalConfig(replacement)
	assert.Same(t, replacement, GetGlobalConfig())
	noFile := replacement.Logging.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, noFile.Output)
}

func TestShallowMergeYAML(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "config.yaml")
	writeFile(t, overlay, "region:\n  once: true\n  height: 5\nunknown: 1\n")

	target := Default()
	target.Logging.Level = "debug"
	require.NoError(t, ShallowMergeYAML(target, overlay))

	assert.True(t, target.Region.Once)
	assert.Equal(t, 5, target.Region.Height)
	assert.False(t, target.Region.Scroll, "sections are replaced, not merged")
	assert.Equal(t, "debug", target.Logging.Level, "absent sections are untouched")

	require.Error(t, ShallowMergeYAML(nil, overlay))
	require.Error(t, ShallowMergeYAML(Default(), filepath.Join(dir, "missing.yaml")))

	empty := filepath.Join(dir, "empty.yaml")
	writeFile(t, empty, "# nothing\n")
	require.NoError(t, ShallowMergeYAML(Default(), empty))
}

func TestResolveProjectDir(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))
	require.NoError(t, os.MkdirAll(filepath.Join(root, projectDirName), 0700))

	t.Setenv(EnvProjectDir, "")
	assert.Equal(t, filepath.Join(root, projectDirName), ResolveProjectDir(ctx, "", nested))
	assert.Equal(t, filepath.Join(root, "x", projectDirName), ResolveProjectDir(ctx, filepath.Join(root, "x"), nested))
	assert.Equal(t, filepath.Join(root, projectDirName), ResolveProjectDir(ctx, filepath.Join(root, projectDirName), nested))

	t.Setenv(EnvProjectDir, filepath.Join(root, "env"))
	assert.Equal(t, filepath.Join(root, "env", projectDirName), ResolveProjectDir(ctx, "", nested))
}

func TestNewWithProjectDir(t *testing.T) {
	ctx := context.Background()
	t.Setenv(EnvHome, t.TempDir())
	project := filepath.Join(t.TempDir(), projectDirName)

	assert.Equal(t, Default().Demo, NewWithProjectDir(ctx, "").Demo)
	assert.Equal(t, Default().Demo, NewWithProjectDir(ctx, project).Demo)

	writeFile(t, filepath.Join(project, "config.yaml"), "demo:\n  blocks: 12\n  block_height: 2\n")
	assert.Equal(t, 12, NewWithProjectDir(ctx, project).Demo.Blocks)

	writeFile(t, filepath.Join(project, "config.yaml"), "version: 9.0.0\n")
	assert.Equal(t, Default().Version, NewWithProjectDir(ctx, project).Version, "invalid overlays fall back")
}
