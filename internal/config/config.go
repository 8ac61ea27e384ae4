// Package config handles loading of the dataset list.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/geoswap/internal/geo"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for configuration files that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the root configuration file structure.
type Config struct {
	Indent   string    `yaml:"indent,omitempty"`
	Datasets []Dataset `yaml:"datasets"`
}

// Dataset describes one file to clean.
type Dataset struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Input  string `yaml:"input"`
	Output string `yaml:"output,omitempty"` // defaults to Input

	// only meaningful for polygon datasets
	AllRings bool `yaml:"all_rings,omitempty"`
}

// Load reads, parses and validates the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks required fields and name uniqueness.
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("%w: no datasets defined", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Datasets))
	for i, d := range c.Datasets {
		if d.Name == "" {
			return fmt.Errorf("%w: dataset %d has no name", ErrInvalid, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: duplicate dataset name %q", ErrInvalid, d.Name)
		}
		seen[d.Name] = true

		if d.Input == "" {
			return fmt.Errorf("%w: dataset %q has no input", ErrInvalid, d.Name)
		}
		kind, err := geo.ParseKind(d.Kind)
		if err != nil {
			return fmt.Errorf("%w: dataset %q: %w", ErrInvalid, d.Name, err)
		}
		if d.AllRings && kind != geo.KindPolygon {
			return fmt.Errorf("%w: dataset %q: all_rings is only valid for polygon", ErrInvalid, d.Name)
		}
	}

	return nil
}

// Select returns the datasets named in limit, in the order given, or all datasets
// when limit is empty. Duplicates in limit are ignored; unknown names are returned
// separately so the caller can report them.
func (c *Config) Select(limit []string) (selected []Dataset, unknown []string) {
	if len(limit) == 0 {
		return c.Datasets, nil
	}

	available := make(map[string]Dataset, len(c.Datasets))
	for _, d := range c.Datasets {
		available[d.Name] = d
	}

	seen := make(map[string]bool)
	for _, name := range limit {
		if seen[name] {
			continue
		}
		seen[name] = true

		if d, ok := available[name]; ok {
			selected = append(selected, d)
		} else {
			unknown = append(unknown, name)
		}
	}

	return selected, unknown
}
