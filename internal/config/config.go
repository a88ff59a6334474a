// Package config loads the report-tool configuration from an optional
// JSON file plus flag overrides, with defaults for everything.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the skirmish-report tool needs for a batch.
type Config struct {
	Runs     int    `mapstructure:"runs"`
	SeedBase int64  `mapstructure:"seedBase"`
	SeedStep int64  `mapstructure:"seedStep"`
	LogLevel string `mapstructure:"logLevel"`

	// DBPath is where battle records land; empty disables persistence.
	DBPath string `mapstructure:"dbPath"`

	Operator OperatorConfig `mapstructure:"operator"`
}

// OperatorConfig describes the player-side operator a batch runs with.
type OperatorConfig struct {
	Name                string  `mapstructure:"name"`
	Weapon              string  `mapstructure:"weapon"`
	Accuracy            float64 `mapstructure:"accuracy"`
	AccuracyProficiency float64 `mapstructure:"accuracyProficiency"`
	DistanceM           float64 `mapstructure:"distanceM"`
}

// Load reads skirmish.cfg.json from configDir if present and returns
// the merged configuration. A missing file is fine; a malformed one is
// not.
func Load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("runs", 100)
	v.SetDefault("seedBase", 1)
	v.SetDefault("seedStep", 1)
	v.SetDefault("logLevel", "info")
	v.SetDefault("dbPath", "")

	v.SetDefault("operator.name", "Reyes")
	v.SetDefault("operator.weapon", "MK2 Carbine")
	v.SetDefault("operator.accuracy", 0.75)
	v.SetDefault("operator.accuracyProficiency", 0.65)
	v.SetDefault("operator.distanceM", 15.0)

	v.SetConfigName("skirmish.cfg")
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations no batch can run with.
func (c *Config) Validate() error {
	if c.Runs <= 0 {
		return fmt.Errorf("config: runs must be positive, got %d", c.Runs)
	}
	if c.SeedStep == 0 {
		return errors.New("config: seedStep must be non-zero")
	}
	if c.Operator.Accuracy < 0 || c.Operator.Accuracy > 1 {
		return fmt.Errorf("config: operator accuracy %.2f outside [0, 1]", c.Operator.Accuracy)
	}
	if c.Operator.AccuracyProficiency < 0 || c.Operator.AccuracyProficiency > 1 {
		return fmt.Errorf("config: operator proficiency %.2f outside [0, 1]", c.Operator.AccuracyProficiency)
	}
	if c.Operator.DistanceM <= 0 {
		return fmt.Errorf("config: engagement distance %.1fm must be positive", c.Operator.DistanceM)
	}
	return nil
}
