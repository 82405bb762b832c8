package sim_test

import "github.com/plus3/blockfall/sim"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int
}

type Name string

func newTestRegistry() *sim.ComponentRegistry {
	registry := sim.NewComponentRegistry()
	sim.RegisterComponent[Position](registry)
	sim.RegisterComponent[Velocity](registry)
	sim.RegisterComponent[Health](registry)
	sim.RegisterComponent[Name](registry)
	return registry
}
