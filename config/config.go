// Package config provides configuration loading for the annotation engine.
// Configuration is read from YAML files; every field has a working default so
// an absent file never blocks an interactive session.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of the annotation engine.
type Config struct {
	// Voxel controls the voxelization of the loaded cloud.
	Voxel struct {
		// CellSize is the voxel edge length on the annotation plane, in
		// world units.
		CellSize float64 `yaml:"cellSize"`

		// Thickness is the voxel extent along the slicing axis.
		Thickness float64 `yaml:"thickness"`
	} `yaml:"voxel"`

	// Load controls point-cloud ingestion.
	Load struct {
		// MaxPoints caps the number of points kept from a file; zero or
		// negative keeps everything. Subsampling is a deterministic
		// stride over file order.
		MaxPoints int `yaml:"maxPoints"`
	} `yaml:"load"`

	// Snap controls interactive snapping.
	Snap struct {
		// Radius is the neighborhood radius for center/corner snapping,
		// in world units.
		Radius float64 `yaml:"radius"`

		// CrosshairThreshold is the axis distance below which a new beam
		// snaps onto the row/column of an existing beam.
		CrosshairThreshold float64 `yaml:"crosshairThreshold"`
	} `yaml:"snap"`

	// Rack controls rack detection and splitting.
	Rack struct {
		// CanonicalSize maps a rack subtype label to its expected
		// footprint length in world units.
		CanonicalSize map[string]float64 `yaml:"canonicalSize"`

		// TwoRackRatio is the span/canonical ratio above which (on both
		// axes) a freshly drawn box is treated as two merged racks.
		TwoRackRatio float64 `yaml:"twoRackRatio"`

		// TwoRackGap is the total gap inserted when splitting a
		// two-rack box at its midpoint.
		TwoRackGap float64 `yaml:"twoRackGap"`

		// SplitGap is the total gap straddling a manual or beam-driven
		// rack cut.
		SplitGap float64 `yaml:"splitGap"`

		// BeamMargin is the extra transverse distance beyond the rack
		// half-span within which a beam triggers an automatic split.
		BeamMargin float64 `yaml:"beamMargin"`
	} `yaml:"rack"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	var c Config
	c.Voxel.CellSize = 0.05
	c.Voxel.Thickness = 0.5
	c.Load.MaxPoints = 0
	c.Snap.Radius = 0.5
	c.Snap.CrosshairThreshold = 0.3
	c.Rack.CanonicalSize = map[string]float64{
		"select_rack":     2.5,
		"drive_in_rack":   3.7,
		"extra_deep_rack": 5.0,
	}
	c.Rack.TwoRackRatio = 1.9
	c.Rack.TwoRackGap = 0.1
	c.Rack.SplitGap = 0.4
	c.Rack.BeamMargin = 2.0
	return &c
}

// Load reads configuration from a YAML file, filling unset fields from the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Voxel.CellSize <= 0 {
		return fmt.Errorf("voxel.cellSize must be positive, got %g", c.Voxel.CellSize)
	}
	if c.Voxel.Thickness <= 0 {
		return fmt.Errorf("voxel.thickness must be positive, got %g", c.Voxel.Thickness)
	}
	if c.Snap.Radius <= 0 {
		return fmt.Errorf("snap.radius must be positive, got %g", c.Snap.Radius)
	}
	if c.Rack.TwoRackRatio <= 1 {
		return fmt.Errorf("rack.twoRackRatio must exceed 1, got %g", c.Rack.TwoRackRatio)
	}
	for label, size := range c.Rack.CanonicalSize {
		if size <= 0 {
			return fmt.Errorf("rack.canonicalSize[%s] must be positive, got %g", label, size)
		}
	}
	return nil
}
