package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".lorenz"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for lorenz settings.
const envPrefix = "LORENZ"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Merge.FieldMode = strings.ToLower(cfg.Merge.FieldMode)
	cfg.Merge.MethodMode = strings.ToLower(cfg.Merge.MethodMode)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	cfg.Format.Default = strings.ToLower(cfg.Format.Default)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Merge: MergeConfig{
			Parallelism: DefaultMergeParallelism,
			FieldMode:   DefaultMergeFieldMode,
			MethodMode:  DefaultMergeMethodMode,
		},
		Logging: LoggingConfig{
			Level:  DefaultLoggingLevel,
			Format: DefaultLoggingFormat,
		},
		Format: FormatConfig{Default: DefaultFormat},
	}
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("merge.parallelism", DefaultMergeParallelism)
	v.SetDefault("merge.field_mode", DefaultMergeFieldMode)
	v.SetDefault("merge.method_mode", DefaultMergeMethodMode)

	v.SetDefault("logging.level", DefaultLoggingLevel)
	v.SetDefault("logging.format", DefaultLoggingFormat)

	v.SetDefault("format.default", DefaultFormat)
}
