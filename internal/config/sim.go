// Package config loads the simulation tuning configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/addcomposites/openaxis/internal/frames"
)

// SimConfig holds the tunable parameters of the playback engine and the
// robot cell layout. Fields are pointers so a partial JSON file only
// overrides what it names; the Get* accessors supply defaults for the rest.
type SimConfig struct {
	// Playback params
	VisualisationBudget *int     `json:"visualisation_budget,omitempty"`
	HomeTransitSeconds  *float64 `json:"home_transit_seconds,omitempty"`
	MaxTickDeltaSeconds *float64 `json:"max_tick_delta_seconds,omitempty"`
	TickInterval        *string  `json:"tick_interval,omitempty"` // duration string like "33ms"
	DefaultSpeed        *float64 `json:"default_speed,omitempty"`

	// Cell layout (scene frame, metres)
	BuildPlateOrigin *[3]float64 `json:"build_plate_origin_m,omitempty"`
	RobotBase        *[3]float64 `json:"robot_base_m,omitempty"`
}

// EmptySimConfig returns a SimConfig with all fields set to nil.
func EmptySimConfig() *SimConfig {
	return &SimConfig{}
}

// LoadSimConfig loads a SimConfig from a JSON file. Fields omitted from the
// file retain their defaults, so partial configs are safe.
func LoadSimConfig(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySimConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *SimConfig) Validate() error {
	if c.VisualisationBudget != nil && *c.VisualisationBudget <= 0 {
		return fmt.Errorf("visualisation_budget must be positive, got %d", *c.VisualisationBudget)
	}
	if c.HomeTransitSeconds != nil && *c.HomeTransitSeconds < 0 {
		return fmt.Errorf("home_transit_seconds must be non-negative, got %f", *c.HomeTransitSeconds)
	}
	if c.MaxTickDeltaSeconds != nil && *c.MaxTickDeltaSeconds <= 0 {
		return fmt.Errorf("max_tick_delta_seconds must be positive, got %f", *c.MaxTickDeltaSeconds)
	}
	if c.DefaultSpeed != nil && *c.DefaultSpeed <= 0 {
		return fmt.Errorf("default_speed must be positive, got %f", *c.DefaultSpeed)
	}
	if c.TickInterval != nil && *c.TickInterval != "" {
		if _, err := time.ParseDuration(*c.TickInterval); err != nil {
			return fmt.Errorf("invalid tick_interval '%s': %w", *c.TickInterval, err)
		}
	}
	return nil
}

// GetVisualisationBudget returns the visualisation_budget value or the default.
func (c *SimConfig) GetVisualisationBudget() int {
	if c.VisualisationBudget == nil {
		return 50000
	}
	return *c.VisualisationBudget
}

// GetHomeTransitSeconds returns the home_transit_seconds value or the default.
func (c *SimConfig) GetHomeTransitSeconds() float64 {
	if c.HomeTransitSeconds == nil {
		return 5.0
	}
	return *c.HomeTransitSeconds
}

// GetMaxTickDeltaSeconds returns the max_tick_delta_seconds value or the default.
func (c *SimConfig) GetMaxTickDeltaSeconds() float64 {
	if c.MaxTickDeltaSeconds == nil {
		return 0.1
	}
	return *c.MaxTickDeltaSeconds
}

// GetTickInterval parses and returns the TickInterval as a time.Duration.
func (c *SimConfig) GetTickInterval() time.Duration {
	if c.TickInterval == nil || *c.TickInterval == "" {
		return 33 * time.Millisecond // ~30 fps default
	}
	d, err := time.ParseDuration(*c.TickInterval)
	if err != nil {
		return 33 * time.Millisecond
	}
	return d
}

// GetDefaultSpeed returns the default_speed value or the default.
func (c *SimConfig) GetDefaultSpeed() float64 {
	if c.DefaultSpeed == nil {
		return 1.0
	}
	return *c.DefaultSpeed
}

// GetBuildPlateOrigin returns the build plate origin in scene coordinates.
func (c *SimConfig) GetBuildPlateOrigin() frames.Vec3 {
	if c.BuildPlateOrigin == nil {
		return frames.Vec3{}
	}
	v := *c.BuildPlateOrigin
	return frames.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// GetRobotBase returns the robot mount position in scene coordinates.
func (c *SimConfig) GetRobotBase() frames.Vec3 {
	if c.RobotBase == nil {
		return frames.Vec3{}
	}
	v := *c.RobotBase
	return frames.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
