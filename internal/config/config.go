package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the config schema written by Save.
const SchemaVersion = "1.0.0"

// supportedSchema is the range of schema versions this build reads.
const supportedSchema = ">= 1.0.0, < 2.0.0"

// Environment variables.
const (
	EnvHome       = "LAZYVIEW_HOME"
	EnvLogLevel   = "LAZYVIEW_LOG_LEVEL"
	EnvLogFile    = "LAZYVIEW_LOG_FILE"
	EnvProjectDir = "LAZYVIEW_PROJECT_DIR"
)

// Config errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported config schema version")
	ErrUnknownKey        = errors.New("unknown config key")
)

// Demo limits.
const (
	defaultDemoBlocks = 200
	defaultBlockRows  = 3
	maxDemoBlocks     = 100000
)

// Config is the lazyview configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Logging LoggingConfig `yaml:"logging"`
	Region  RegionConfig  `yaml:"region"`
	Demo    DemoConfig    `yaml:"demo"`

	// path is where the config was loaded from.
	path string
}

// DemoConfig sizes the demo and report documents.
type DemoConfig struct {
	Blocks      int `yaml:"blocks"`
	BlockHeight int `yaml:"block_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Region: DefaultRegionConfig(),
		Demo: DemoConfig{
			Blocks:      defaultDemoBlocks,
			BlockHeight: defaultBlockRows,
		},
	}
}

// New loads the user config file when present and applies environment overrides.
// A missing or unreadable file yields the defaults.
func New() *Config {
	cfg := Default()
	if dir, err := GetConfigDir(); err == nil {
		path := filepath.Join(dir, "config.yaml")
		if loaded, loadErr := Load(path); loadErr == nil {
			cfg = loaded
		}
		cfg.path = path
	}
	cfg.applyEnv()
	return cfg
}

// Load reads a config file on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.path = path

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Validate checks the schema version and value ranges.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = SchemaVersion
	}
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, c.Version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedSchema, c.Version, supportedSchema)
	}

	if c.Demo.Blocks < 0 || c.Demo.Blocks > maxDemoBlocks {
		return fmt.Errorf("demo.blocks must be between 0 and %d, got %d", maxDemoBlocks, c.Demo.Blocks)
	}
	if c.Demo.BlockHeight < 1 {
		return fmt.Errorf("demo.block_height must be >= 1, got %d", c.Demo.BlockHeight)
	}
	return c.Region.Validate()
}

// Get returns the YAML rendering of a dotted key such as "region.offset".
func (c *Config) Get(key string) (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshalling config: %w", err)
	}
	var tree map[string]interface{}
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return "", fmt.Errorf("re-reading config: %w", err)
	}

	var cur interface{} = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if cur, ok = m[part]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}

	out, err := yaml.Marshal(cur)
	if err != nil {
		return "", fmt.Errorf("marshalling %s: %w", key, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv(EnvLogFile); file != "" {
		c.Logging.File = file
	}
}
