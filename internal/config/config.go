package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minicodemonkey/sfxgen/internal/paths"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds project-level settings for sfxgen. Synthesis parameters are
// constants and cannot be configured.
type Config struct {
	Output   OutputConfig `yaml:"output"`
	Seed     uint64       `yaml:"seed"`
	Workers  int          `yaml:"workers"`
	LogLevel string       `yaml:"logLevel"`
}

// OutputConfig holds the artifact locations, relative to the project root.
type OutputConfig struct {
	Source   string `yaml:"source"`
	Manifest string `yaml:"manifest"`
}

// Default returns a Config with the stock output locations, a fresh random
// seed per run and sequential generation.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Source:   paths.DefaultSourcePath,
			Manifest: paths.DefaultManifestPath,
		},
		Workers:  1,
		LogLevel: "info",
	}
}

// Exists checks if the config file exists.
func Exists(baseDir string) bool {
	_, err := os.Stat(paths.ConfigPath(baseDir))
	return err == nil
}

// Load reads the config from <project>/.sfxgen.yaml.
// Returns Default() when the file doesn't exist (no error).
func Load(baseDir string) (*Config, error) {
	return LoadFile(paths.ConfigPath(baseDir))
}

// LoadFile reads a config from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to <project>/.sfxgen.yaml.
func Save(baseDir string, cfg *Config) error {
	path := paths.ConfigPath(baseDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings the pipeline cannot honour.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	return nil
}

// Logger builds a console logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	return zc.Build()
}
