// Package config provides configuration management for the radgo CLI's
// train subcommand, grounded on the perf-analysis service's own pkg/config.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// TrainConfig holds the configuration for a training run.
type TrainConfig struct {
	Train TrainSection `mapstructure:"train"`
	Log   LogSection   `mapstructure:"log"`
}

// TrainSection holds the hyperparameters of training.TrainXOR.
type TrainSection struct {
	Iterations int     `mapstructure:"iterations"`
	Rate       float64 `mapstructure:"rate"`
	Momentum   float64 `mapstructure:"momentum"`
	Seed       int64   `mapstructure:"seed"`
	LogEvery   int     `mapstructure:"log_every"`
}

// LogSection holds logging configuration.
type LogSection struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the specified file path, falling back to
// defaults when configPath is empty or the file does not exist.
func Load(configPath string) (*TrainConfig, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("radgo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file, defaults only.
		} else if os.IsNotExist(err) {
			// Explicit path doesn't exist, defaults only.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg TrainConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes of the given format
// (e.g. "yaml"), useful for testing without touching the filesystem.
func LoadFromReader(configType string, content []byte) (*TrainConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg TrainConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("train.iterations", 100000)
	v.SetDefault("train.rate", 0.05)
	v.SetDefault("train.momentum", 0.75)
	v.SetDefault("train.seed", 1)
	v.SetDefault("train.log_every", 10000)
	v.SetDefault("log.level", "info")
}

// Validate checks the hyperparameters are in sane ranges.
func (c *TrainConfig) Validate() error {
	if c.Train.Iterations < 1 {
		return fmt.Errorf("train.iterations must be at least 1")
	}
	if c.Train.Rate <= 0 {
		return fmt.Errorf("train.rate must be positive")
	}
	if c.Train.Momentum < 0 || c.Train.Momentum >= 1 {
		return fmt.Errorf("train.momentum must be in [0, 1)")
	}
	return nil
}
