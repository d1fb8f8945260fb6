// Package config loads hookmux CLI configuration from defaults, an optional
// YAML file and HOOKMUX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rickchristie/hookmux"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// HOOKMUX_LOG_LEVEL for log.level.
const EnvPrefix = "HOOKMUX"

// Config is the complete CLI configuration.
type Config struct {
	Dispatcher DispatcherConfig `mapstructure:"dispatcher"`
	Log        LogConfig        `mapstructure:"log"`
	Shell      ShellConfig      `mapstructure:"shell"`
}

// DispatcherConfig maps to hookmux.Option values.
type DispatcherConfig struct {
	// DefaultPriority is used for bindings that do not set one (default: 500)
	DefaultPriority int `mapstructure:"default_priority"`
	// PatternCacheSize is how many compiled patterns are kept (default: 256)
	PatternCacheSize int `mapstructure:"pattern_cache_size"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: warn)
	Level string `mapstructure:"level"`
	// Format is "console" or "json" (default: console)
	Format string `mapstructure:"format"`
}

// ShellConfig controls the interactive shell.
type ShellConfig struct {
	Prompt string `mapstructure:"prompt"`
	// HistoryFile is where shell history is kept; empty disables history.
	HistoryFile string `mapstructure:"history_file"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dispatcher.default_priority", hookmux.DefaultPriority)
	v.SetDefault("dispatcher.pattern_cache_size", hookmux.DefaultPatternCacheSize)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("shell.prompt", "hookmux> ")
	v.SetDefault("shell.history_file", filepath.Join(ConfigDir(), "history"))
}

// ConfigDir returns the directory searched for hookmux.yaml when no file is
// given explicitly.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "hookmux")
}

// Load reads configuration into v and returns it decoded. If path is empty,
// hookmux.yaml is looked up in the working directory and ConfigDir, and a
// missing file is not an error. An explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hookmux")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot check by type.
func (c *Config) Validate() error {
	if c.Dispatcher.PatternCacheSize < 1 {
		return fmt.Errorf("dispatcher.pattern_cache_size must be at least 1, got %d",
			c.Dispatcher.PatternCacheSize)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the zap logger described by the log section.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	var zc zap.Config
	if c.Log.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// DispatcherOptions returns the hookmux options for the dispatcher section.
func (c *Config) DispatcherOptions(logger *zap.Logger) []hookmux.Option {
	return []hookmux.Option{
		hookmux.WithDefaultPriority(c.Dispatcher.DefaultPriority),
		hookmux.WithPatternCacheSize(c.Dispatcher.PatternCacheSize),
		hookmux.WithLogger(logger),
	}
}
