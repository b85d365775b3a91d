package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/CadixDev/Lorenz-sub001/internal/logging"
	"github.com/CadixDev/Lorenz-sub001/merge"
)

// Default values.
const (
	DefaultMergeParallelism = 1
	DefaultMergeFieldMode   = "loose"
	DefaultMergeMethodMode  = "strict"
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = logging.FormatText
	DefaultFormat           = FormatTSRG
)

// Mapping file formats.
const (
	FormatTSRG = "tsrg"
	FormatYAML = "yaml"
)

// Validation errors.
var (
	ErrInvalidParallelism = errors.New("merge.parallelism must be positive")
	ErrInvalidMode        = errors.New("invalid merge signature mode")
	ErrInvalidLogLevel    = errors.New("invalid logging.level")
	ErrInvalidLogFormat   = errors.New("invalid logging.format")
	ErrInvalidFormat      = errors.New("invalid format.default")
)

// Config is the CLI configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Merge   MergeConfig   `mapstructure:"merge"`
	Logging LoggingConfig `mapstructure:"logging"`
	Format  FormatConfig  `mapstructure:"format"`
}

// MergeConfig holds merge settings.
type MergeConfig struct {
	Parallelism int    `mapstructure:"parallelism"`
	FieldMode   string `mapstructure:"field_mode"`
	MethodMode  string `mapstructure:"method_mode"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FormatConfig holds mapping file format settings.
type FormatConfig struct {
	// Default is used when a file extension names no known format.
	Default string `mapstructure:"default"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Merge.Parallelism < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidParallelism, c.Merge.Parallelism)
	}

	for _, mode := range []string{c.Merge.FieldMode, c.Merge.MethodMode} {
		if _, err := merge.ParseSignatureMode(mode); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMode, err)
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}

	switch c.Logging.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	switch c.Format.Default {
	case FormatTSRG, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format.Default)
	}

	return nil
}

// MergeConfig converts the merge settings into a merge configuration using
// the default handler.
func (c *Config) MergeConfig(logger *slog.Logger) (merge.Config, error) {
	fields, err := merge.ParseSignatureMode(c.Merge.FieldMode)
	if err != nil {
		return merge.Config{}, err
	}

	methods, err := merge.ParseSignatureMode(c.Merge.MethodMode)
	if err != nil {
		return merge.Config{}, err
	}

	cfg := merge.DefaultConfig().
		WithModes(fields, methods).
		WithParallelism(c.Merge.Parallelism)
	cfg.Logger = logger

	return cfg, nil
}

// LoggingOptions returns the logger settings.
func (c *Config) LoggingOptions() logging.Options {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	return logging.Options{Level: level, Format: c.Logging.Format}
}
