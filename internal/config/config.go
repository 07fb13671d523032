// Package config loads tuner settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config contains the program configuration.
type Config struct {
	SampleRate    int     `yaml:"sample_rate"`
	BufferSize    int     `yaml:"buffer_size"`
	Channels      int     `yaml:"channels"`
	Amplification float64 `yaml:"amplification"`
	MinFrequency  float64 `yaml:"min_frequency"`
	MaxFrequency  float64 `yaml:"max_frequency"`
	Verbose       bool    `yaml:"verbose"`
}

// DefaultConfig returns the default configuration: mono capture at CD
// rate, a detection range covering guitar plus some headroom.
func DefaultConfig() Config {
	return Config{
		SampleRate:    44100,
		BufferSize:    4096,
		Channels:      1,
		Amplification: 8.0,
		MinFrequency:  80.0,   // E2 on guitar is ~82 Hz
		MaxFrequency:  1200.0, // E6 on guitar is ~1319 Hz
	}
}

// Load loads configuration from a YAML file. If path is empty, standard
// locations are searched. Returns defaults if no file is found.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", c.Channels)
	}
	if c.MinFrequency <= 0 || c.MaxFrequency <= c.MinFrequency {
		return fmt.Errorf("frequency range [%.1f, %.1f] is invalid", c.MinFrequency, c.MaxFrequency)
	}
	return nil
}

// findConfigFile searches for a config file in standard locations.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	locations := []string{
		"./pitchnote.yaml",
		filepath.Join(home, ".config", "pitchnote", "config.yaml"),
		filepath.Join(home, ".pitchnote.yaml"),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}
