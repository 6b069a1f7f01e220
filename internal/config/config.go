// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package config handles .tblradar.yaml configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the expected config file name in the working directory.
const FileName = ".tblradar.yaml"

// Config represents the contents of a .tblradar.yaml file. CLI flags
// override any value set here.
type Config struct {
	// Title is the chart title.
	Title string `yaml:"title,omitempty"`

	// Width and Height size the chart surface (CSS units, e.g. "900px").
	Width  string `yaml:"width,omitempty"`
	Height string `yaml:"height,omitempty"`

	// Sheet selects the workbook sheet for xlsx snapshots.
	Sheet string `yaml:"sheet,omitempty"`

	// PageSize is the rows-per-page for workbook snapshots.
	PageSize int `yaml:"page_size,omitempty"`

	// Category names the field assigned to the category slot.
	Category string `yaml:"category,omitempty"`

	// Values names the fields assigned to the values slot, in order.
	Values []string `yaml:"values,omitempty"`

	// Output is the default chart output path.
	Output string `yaml:"output,omitempty"`
}

// Load reads the config file from the given directory. A missing file
// yields a zero-value Config and nil error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // user-provided directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func Validate(cfg *Config) error {
	if cfg.PageSize < 0 {
		return fmt.Errorf("%s: page_size must not be negative (got %d)", FileName, cfg.PageSize)
	}
	return nil
}
