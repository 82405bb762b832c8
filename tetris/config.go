package tetris

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot drive a game.
var ErrInvalidConfig = errors.New("invalid config")

// Randomizer selects how the next shape is chosen.
type Randomizer string

const (
	RandomizerUniform Randomizer = "uniform"
	RandomizerBag     Randomizer = "bag"
)

// Config holds the fixed rules of a game.
type Config struct {
	Width  int
	Height int

	// FallInterval is the gravity period in seconds.
	FallInterval float32
	// SoftDropFactor multiplies the rate at which time accumulates while a
	// soft drop is pending. 1 disables soft drop acceleration.
	SoftDropFactor float32
	PointsPerRow   int
	Randomizer     Randomizer
}

// DefaultConfig returns the classic 10x20 board falling eight rows per second.
func DefaultConfig() Config {
	return Config{
		Width:          10,
		Height:         20,
		FallInterval:   1.0 / 8.0,
		SoftDropFactor: 2,
		PointsPerRow:   1,
		Randomizer:     RandomizerUniform,
	}
}

// SpawnAnchor returns the cell new pieces are anchored at.
func (c Config) SpawnAnchor() Cell {
	return Cell{X: c.Width/2 - 1, Y: c.Height - 1}
}

// Validate checks that the config describes a playable game: every shape
// must fit at the spawn anchor of an empty board.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FallInterval <= 0 {
		return fmt.Errorf("%w: fall interval %v must be positive", ErrInvalidConfig, c.FallInterval)
	}
	if c.SoftDropFactor < 1 {
		return fmt.Errorf("%w: soft drop factor %v must be at least 1", ErrInvalidConfig, c.SoftDropFactor)
	}
	if c.PointsPerRow < 0 {
		return fmt.Errorf("%w: points per row %d must not be negative", ErrInvalidConfig, c.PointsPerRow)
	}
	switch c.Randomizer {
	case "", RandomizerUniform, RandomizerBag:
	default:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalidConfig, c.Randomizer)
	}

	empty := NewBoard(c.Width, c.Height)
	for _, shape := range Shapes {
		p := Piece{Shape: shape, Anchor: c.SpawnAnchor()}
		if !p.fits(empty) {
			return fmt.Errorf("%w: shape %s does not fit a %dx%d board", ErrInvalidConfig, shape, c.Width, c.Height)
		}
	}
	return nil
}
