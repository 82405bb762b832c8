package tetris

import (
	"log/slog"
	"math/rand/v2"
)

type settings struct {
	logger    *slog.Logger
	rng       *rand.Rand
	picker    Picker
	observers []func(Event)
}

// Option customizes a Game at construction.
type Option func(*settings)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithRand sets the random source used by the configured randomizer.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		s.rng = rng
	}
}

// WithSeed seeds the random source deterministically.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithPicker overrides the randomizer entirely.
func WithPicker(p Picker) Option {
	return func(s *settings) {
		s.picker = p
	}
}

// WithObserver registers fn to receive game events. A nil fn is ignored.
func WithObserver(fn func(Event)) Option {
	return func(s *settings) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}
