package tetris

import "github.com/plus3/blockfall/sim"

// Falling is carried by the active piece entity. Accumulator is simulated
// time not yet spent on gravity steps.
type Falling struct {
	Accumulator float32
}

// RunState is the state of the current run shared by the systems.
type RunState struct {
	Score   int
	Pending Direction
	Paused  bool
}

// activePiece is the view of the falling piece.
type activePiece struct {
	*Piece
	*Falling
}

func newRegistry() *sim.ComponentRegistry {
	registry := sim.NewComponentRegistry()
	sim.RegisterComponent[Board](registry)
	sim.RegisterComponent[RunState](registry)
	sim.RegisterComponent[Piece](registry)
	sim.RegisterComponent[Falling](registry)
	return registry
}
