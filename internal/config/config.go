// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/fincast/assumptions/pkg/document"
)

// Configuration holds all configuration for the assumptions pipeline. The
// prefill block carries a previously assembled document used to rehydrate
// the forms; every field in it is optional.
type Configuration struct {
	Prefill document.Document `yaml:"prefill,omitempty"`
	Logging LoggingConfig     `yaml:"logging,omitempty"`
	Output  OutputConfig      `yaml:"output,omitempty"`
	Engine  EngineConfig      `yaml:"engine,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // json, yaml
	File   string `yaml:"file,omitempty"`   // optional file output
}

// EngineConfig points at the external forecasting engine.
type EngineConfig struct {
	URL     string `yaml:"url,omitempty"`
	Timeout string `yaml:"timeout,omitempty"` // e.g. "30s", "2m"
}

// TimeoutDuration parses the configured timeout. Zero means "use the client
// default"; malformed values are treated the same way.
func (e EngineConfig) TimeoutDuration() time.Duration {
	if e.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
