// Package config loads settings shared by the command-line tools.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DOT configures Graphviz output.
type DOT struct {
	RankDir string `yaml:"rankdir"`
}

// Codegen configures Go source generation.
type Codegen struct {
	Package string `yaml:"package"`
	Name    string `yaml:"name"`
}

// Check configures the suite runner.
type Check struct {
	// Workers bounds how many suite cases are checked at once.
	Workers int `yaml:"workers"`
}

// Config is the tool configuration.
type Config struct {
	LogLevel string  `yaml:"log_level"`
	Format   string  `yaml:"format"` // text, tree, dot or go
	DOT      DOT     `yaml:"dot"`
	Codegen  Codegen `yaml:"codegen"`
	Check    Check   `yaml:"check"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   "dot",
		DOT:      DOT{RankDir: "LR"},
		Codegen:  Codegen{Package: "match", Name: "Pattern"},
		Check:    Check{Workers: 4},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with THOMPSON_* environment variables.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.LogLevel = getEnv("THOMPSON_LOG_LEVEL", cfg.LogLevel)
	cfg.Format = getEnv("THOMPSON_FORMAT", cfg.Format)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	formats  = map[string]bool{"text": true, "tree": true, "dot": true, "go": true}
	rankdirs = map[string]bool{"LR": true, "RL": true, "TB": true, "BT": true}
)

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if !formats[c.Format] {
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if !rankdirs[c.DOT.RankDir] {
		return fmt.Errorf("config: unknown rankdir %q", c.DOT.RankDir)
	}
	if c.Check.Workers < 1 {
		return errors.New("config: check.workers must be at least 1")
	}
	return nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
	}
}

// Logger returns a text logger on stderr at the configured level.
func (c Config) Logger() *slog.Logger {
	level, _ := ParseLogLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
