// Package config loads game and window settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/blockfall/tetris"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all settings.
type Config struct {
	Board      BoardConfig   `yaml:"board"`
	Timing     TimingConfig  `yaml:"timing"`
	Scoring    ScoringConfig `yaml:"scoring"`
	Randomizer string        `yaml:"randomizer"`
	Window     WindowConfig  `yaml:"window"`
}

// BoardConfig holds the grid dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig holds gravity settings.
type TimingConfig struct {
	FallInterval   float64 `yaml:"fall_interval"`    // seconds per gravity step
	SoftDropFactor float64 `yaml:"soft_drop_factor"` // accumulation multiplier while down is held
}

// ScoringConfig holds scoring rules.
type ScoringConfig struct {
	PointsPerRow int `yaml:"points_per_row"`
}

// WindowConfig holds frontend settings. The simulation ignores it.
type WindowConfig struct {
	Title    string `yaml:"title"`
	CellSize int    `yaml:"cell_size"` // pixels per board cell
	TPS      int    `yaml:"tps"`       // frontend updates per second
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return parse(data)
}

// parse unmarshals the defaults and then data over them, so data only
// overwrites the fields it names.
func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks window settings and the game rules they map to.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("window.cell_size %d must be positive", c.Window.CellSize))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps %d must be positive", c.Window.TPS))
	}
	if err := c.Tetris().Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Tetris returns the game rules described by the config.
func (c *Config) Tetris() tetris.Config {
	return tetris.Config{
		Width:          c.Board.Width,
		Height:         c.Board.Height,
		FallInterval:   float32(c.Timing.FallInterval),
		SoftDropFactor: float32(c.Timing.SoftDropFactor),
		PointsPerRow:   c.Scoring.PointsPerRow,
		Randomizer:     tetris.Randomizer(c.Randomizer),
	}
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
