// Package config resolves scoper settings from defaults, an optional YAML
// file, and SCOPER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	DBPath     string `yaml:"db_path"`
	LogPath    string `yaml:"log_path"`
	SnapToGrid bool   `yaml:"snap_to_grid"`
	RowHeight  int    `yaml:"row_height"`
	LabelWidth int    `yaml:"label_width"`
}

// Default returns the configuration used when nothing is overridden.
// An empty home disables the home-relative database path.
func Default(home string) Config {
	cfg := Config{
		SnapToGrid: true,
		RowHeight:  4,
		LabelWidth: 14,
	}
	if home != "" {
		cfg.DBPath = filepath.Join(home, ".scoper", "scoper.db")
	}
	return cfg
}

// Load builds the effective configuration. A missing config file is not an
// error; a malformed one is.
func Load() (Config, error) {
	home, _ := os.UserHomeDir()
	cfg := Default(home)

	path := os.Getenv("SCOPER_CONFIG")
	if path == "" && home != "" {
		path = filepath.Join(home, ".scoper", "config.yaml")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := cfg.merge(data); err != nil {
				return cfg, fmt.Errorf("config: %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse applies YAML bytes on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default("")
	if err := cfg.merge(data); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SCOPER_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SCOPER_LOG"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("SCOPER_SNAP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SnapToGrid = b
		}
	}
	if v := os.Getenv("SCOPER_ROW_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RowHeight = n
		}
	}
}

func (c *Config) validate() error {
	var errs []string
	if c.RowHeight < 1 {
		errs = append(errs, "row_height must be at least 1")
	}
	if c.LabelWidth < 4 {
		errs = append(errs, "label_width must be at least 4")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
