// Package config loads the settings of the command-line tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/logice/logice/engine"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the REPL settings.
type Config struct {
	// Files consulted at startup, in order.
	ConsultFiles []string `yaml:"consult_files"`
	Prompt       string   `yaml:"prompt"`
	HistoryFile  string   `yaml:"history_file"`

	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig configures query resolution.
type EngineConfig struct {
	// MaxSteps limits clause attempts per query; 0 means unlimited.
	MaxSteps int  `yaml:"max_steps"`
	Indexing bool `yaml:"indexing"`
}

// LoggingConfig configures logs and search traces.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	// TraceFile receives a JSON-lines trace of every query, if set.
	TraceFile string `yaml:"trace_file"`
}

// DefaultConfig returns the settings used when there's no config file.
func DefaultConfig() *Config {
	return &Config{
		Prompt:      "?- ",
		HistoryFile: filepath.Join(os.TempDir(), "logice-history"),
		Engine: EngineConfig{
			Indexing: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("LOGICE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv("LOGICE_HISTORY_FILE"); path != "" {
		c.HistoryFile = path
	}
}

// Validate checks values that can't be checked while parsing.
func (c *Config) Validate() error {
	if c.Engine.MaxSteps < 0 {
		return fmt.Errorf("invalid engine.max_steps: %d", c.Engine.MaxSteps)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the logging level.
func (c *Config) LogLevel() (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return level, fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	return level, nil
}

// EngineOptions translates the engine settings.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithMaxSteps(c.Engine.MaxSteps),
		engine.WithIndexing(c.Engine.Indexing),
	}
}
