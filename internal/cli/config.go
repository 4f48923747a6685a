// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config represents the lvchain configuration file (~/.config/lvchain/config.yaml).
// All fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	Workers   *int     `yaml:"workers"`
	Tolerance *float64 `yaml:"tolerance"`
	Format    *string  `yaml:"format"`
	LogLevel  *string  `yaml:"log_level"`
	LogFormat *string  `yaml:"log_format"`
}

// defaultConfigPath returns the per-user config location, or "" when the
// platform has none.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lvchain", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file is an error only
// when explicit is true; the default location is optional.
func LoadConfig(path string, explicit bool) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig copies config values into opts for every flag the user did
// not set explicitly.
func applyConfig(cmd *cobra.Command, cfg Config, opts *RootOptions) {
	flags := cmd.Flags()
	if cfg.Workers != nil && !flags.Changed("workers") {
		opts.Workers = *cfg.Workers
	}
	if cfg.Tolerance != nil && !flags.Changed("tolerance") {
		opts.Tolerance = *cfg.Tolerance
	}
	if cfg.Format != nil && !flags.Changed("format") {
		opts.Format = *cfg.Format
	}
	if cfg.LogLevel != nil && !flags.Changed("log-level") {
		opts.LogLevel = *cfg.LogLevel
	}
	if cfg.LogFormat != nil && !flags.Changed("log-format") {
		opts.LogFormat = *cfg.LogFormat
	}
}
