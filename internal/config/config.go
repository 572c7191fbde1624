// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/risk"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for dpd-analytics.
type Configuration struct {
	Input    InputConfig    `yaml:"input,omitempty"`
	Analysis AnalysisPolicy `yaml:"analysis,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// InputConfig holds ingestion options for the CSV boundary.
type InputConfig struct {
	Path           string   `yaml:"path,omitempty"`
	MissingMarkers []string `yaml:"missingMarkers,omitempty"` // cell values treated as absent, besides empty
}

// AnalysisPolicy holds the tunable parts of the analytics engine. Zero values
// fall back to the canonical defaults.
type AnalysisPolicy struct {
	LookaheadMonths int       `yaml:"lookaheadMonths,omitempty" validate:"gte=0,lte=24"`
	TierThresholds  []float64 `yaml:"tierThresholds,omitempty" validate:"omitempty,dive,gte=0"`
	TierLabels      []string  `yaml:"tierLabels,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `yaml:"format,omitempty" validate:"omitempty,oneof=json console"`
	OutputFile string `yaml:"outputFile,omitempty"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=pretty csv json"`
}

// ServerConfig holds options for serve mode.
type ServerConfig struct {
	Address        string `yaml:"address,omitempty"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes,omitempty" validate:"gte=0"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the default configuration.
func LoadConfiguration(configPath string) (*Configuration, error) {
	var configuration Configuration

	if configPath != "" {
		viper.SetConfigFile(configPath)
		viper.AutomaticEnv()

		viper.SetConfigType("yml")

		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}

		if err := viper.Unmarshal(&configuration); err != nil {
			return nil, fmt.Errorf("unable to decode into struct, %s", err)
		}
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

// Validate performs structural validation of the configuration.
func (c *Configuration) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for soft issues that are corrected at runtime.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Analysis.TierThresholds) != len(c.Analysis.TierLabels) {
		if len(c.Analysis.TierThresholds) > 0 || len(c.Analysis.TierLabels) > 0 {
			warnings = append(warnings, "tierThresholds and tierLabels differ in length; falling back to the default tier table")
		}
	} else if len(c.Analysis.TierThresholds) > 0 && !c.TierTable().Valid() {
		warnings = append(warnings, "tierThresholds must be strictly descending and non-negative; falling back to the default tier table")
	}

	if c.Analysis.LookaheadMonths == 0 {
		warnings = append(warnings, fmt.Sprintf("lookaheadMonths not set; using default of %d", constants.DefaultLookaheadMonths))
	}

	return warnings
}

// Lookahead returns the post-cure lookahead window with the default applied.
func (c *Configuration) Lookahead() int {
	if c.Analysis.LookaheadMonths <= 0 {
		return constants.DefaultLookaheadMonths
	}
	return c.Analysis.LookaheadMonths
}

// TierTable converts the configured thresholds and labels into a risk tier
// table, falling back to the canonical table when unset or invalid.
func (c *Configuration) TierTable() risk.TierTable {
	if len(c.Analysis.TierThresholds) == 0 || len(c.Analysis.TierThresholds) != len(c.Analysis.TierLabels) {
		return risk.DefaultTierTable()
	}
	table := risk.TierTable{
		Thresholds: append([]float64(nil), c.Analysis.TierThresholds...),
		Labels:     append([]string(nil), c.Analysis.TierLabels...),
	}
	if !table.Valid() {
		return risk.DefaultTierTable()
	}
	return table
}

// MissingMarkers returns the configured missing-cell markers with defaults
// applied.
func (c *Configuration) MissingMarkers() []string {
	if len(c.Input.MissingMarkers) == 0 {
		return []string{"NA", "N/A", "-"}
	}
	return c.Input.MissingMarkers
}

// ServerAddress returns the configured listen address with the default
// applied.
func (c *Configuration) ServerAddress() string {
	if c.Server.Address == "" {
		return constants.DefaultServerAddress
	}
	return c.Server.Address
}

// MaxUploadBytes returns the configured upload cap with the default applied.
func (c *Configuration) MaxUploadBytes() int64 {
	if c.Server.MaxUploadBytes <= 0 {
		return constants.DefaultMaxUploadSizeBytes
	}
	return c.Server.MaxUploadBytes
}
