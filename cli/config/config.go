package config

import (
	"fmt"
	"time"
)

// Config represents a staccato.yaml configuration file.
// All values are optional and act as defaults for staccato flags.
// CLI flags always override config values.
type Config struct {
	Decode  DecodeConfig  `yaml:"decode"`
	Archive ArchiveConfig `yaml:"archive"`
	Adapter AdapterConfig `yaml:"adapter"`
}

// DecodeConfig holds decoder defaults from the config file.
type DecodeConfig struct {
	// StrictLength enforces declared track chunk lengths.
	StrictLength bool `yaml:"strict_length"`
	// FoldZeroVelocity reports velocity-zero note-ons as note-offs.
	FoldZeroVelocity bool `yaml:"fold_zero_velocity"`
}

// ArchiveConfig holds archive export defaults from the config file.
type ArchiveConfig struct {
	// Backend selects the storage backend: "file" or "s3".
	Backend string `yaml:"backend"`
	// Path is the local root directory (file backend) or
	// "bucket/prefix" (s3 backend).
	Path string `yaml:"path"`
	// Region is the AWS region for the s3 backend.
	Region string `yaml:"region"`
	// Endpoint is a custom S3 endpoint for S3-compatible providers.
	Endpoint string `yaml:"endpoint"`
	// S3PathStyle forces path-style S3 addressing.
	S3PathStyle bool `yaml:"s3_path_style"`
}

// AdapterConfig holds notification adapter defaults from the config file.
type AdapterConfig struct {
	Type    string            `yaml:"type"`
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
