package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fincast/assumptions/internal/config"
	"github.com/fincast/assumptions/pkg/constants"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxUploadSize   string               `yaml:"maxUploadSize"`
	Logging         config.LoggingConfig `yaml:"logging"`
	Engine          config.EngineConfig  `yaml:"engine"`
	uploadSizeBytes int64
}

// LoadConfig loads the server configuration from YAML. A missing file yields
// the defaults without error; a present but malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if cfg.Address == "" {
		cfg.Address = constants.DefaultServerAddress
	}
	size, err := ParseSize(cfg.MaxUploadSize)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	cfg.uploadSizeBytes = size
	cfg.MaxUploadSize = strconv.FormatInt(size, 10)
	return cfg, nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

var sizeSuffixes = []struct {
	label      string
	multiplier int64
}{
	{"KB", 1 << 10},
	{"K", 1 << 10},
	{"MB", 1 << 20},
	{"M", 1 << 20},
	{"GB", 1 << 30},
	{"G", 1 << 30},
	{"B", 1},
}

// ParseSize converts a human-friendly byte string such as "256K" or "10M"
// into bytes. An empty string yields the default upload size.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	multiplier := int64(1)
	for _, suffix := range sizeSuffixes {
		if strings.HasSuffix(trimmed, suffix.label) {
			multiplier = suffix.multiplier
			trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, suffix.label))
			break
		}
	}

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
