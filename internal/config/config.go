// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/stateplane/internal/stateplane"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Datum         string   `yaml:"datum,omitempty"`
	Engine        string   `yaml:"engine,omitempty"`
	InverseCheck  string   `yaml:"inverse_check,omitempty"`
	Samples       []Sample `yaml:"samples,omitempty"`
	EPSG          int      `yaml:"epsg,omitempty"`
	MinEastingFt  *float64 `yaml:"min_easting_ft,omitempty"`
	MinNorthingFt *float64 `yaml:"min_northing_ft,omitempty"`
}

// Sample is a smoke-test point: either lat/lon to project or x/y to unproject.
type Sample struct {
	Lat  *float64 `yaml:"lat,omitempty"`
	Lon  *float64 `yaml:"lon,omitempty"`
	X    *float64 `yaml:"x,omitempty"`
	Y    *float64 `yaml:"y,omitempty"`
	Name string   `yaml:"name"`
}

// IsForward reports whether the sample carries geographic coordinates.
func (s Sample) IsForward() bool {
	return s.Lat != nil && s.Lon != nil
}

// IsInverse reports whether the sample carries projected coordinates.
func (s Sample) IsInverse() bool {
	return s.X != nil && s.Y != nil
}

func ptr(v float64) *float64 { return &v }

// DefaultSamples are the Dallas reference points checked by the sample runner.
func DefaultSamples() []Sample {
	return []Sample{
		{Name: "dallas-project", Lat: ptr(32.832521), Lon: ptr(-96.828295)},
		{Name: "dallas-unproject", X: ptr(2481939.934525765), Y: ptr(6989916.200679892)},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := stateplane.DefaultConfig()

	if c.Datum == "" {
		c.Datum = def.Datum
	}
	if c.EPSG == 0 {
		c.EPSG = def.EPSG
	}
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	if c.InverseCheck == "" {
		c.InverseCheck = string(def.InverseCheck)
	}
	if c.MinEastingFt == nil {
		c.MinEastingFt = ptr(def.MinEastingFt)
	}
	if c.MinNorthingFt == nil {
		c.MinNorthingFt = ptr(def.MinNorthingFt)
	}
	if len(c.Samples) == 0 {
		c.Samples = DefaultSamples()
	}
}

// Validate checks that every sample carries exactly one coordinate pair.
func (c *Config) Validate() error {
	var errs []error
	for i, s := range c.Samples {
		if s.IsForward() == s.IsInverse() {
			errs = append(errs, fmt.Errorf("sample %d (%q): need either lat/lon or x/y", i, s.Name))
		}
	}
	return errors.Join(errs...)
}

// Converter maps the file configuration to converter settings.
func (c *Config) Converter() stateplane.Config {
	cfg := stateplane.Config{
		Datum:        c.Datum,
		EPSG:         c.EPSG,
		Engine:       c.Engine,
		InverseCheck: stateplane.InverseCheck(c.InverseCheck),
	}
	if c.MinEastingFt != nil {
		cfg.MinEastingFt = *c.MinEastingFt
	}
	if c.MinNorthingFt != nil {
		cfg.MinNorthingFt = *c.MinNorthingFt
	}
	return cfg
}
