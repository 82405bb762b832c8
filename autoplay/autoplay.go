// Package autoplay drives a game without a human: a seeded bot feeds random
// actions and a step system advances the simulation, both on a sim.Scheduler.
package autoplay

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/tetris"
)

// botActions are the inputs the bot chooses from. Pause is left out so a
// driven game never stalls; ActionNone stands in for a key release.
var botActions = []tetris.Action{
	tetris.ActionLeft,
	tetris.ActionRight,
	tetris.ActionRotate,
	tetris.ActionDown,
	tetris.ActionNone,
}

// Bot sends one random action every Every seconds of simulated time.
type Bot struct {
	Game  *tetris.Game
	Every float64

	rng      *rand.Rand
	elapsed  float64
	actions  int
	consumed int
}

// NewBot returns a bot seeded with seed.
func NewBot(game *tetris.Game, seed uint64, every float64) *Bot {
	return &Bot{
		Game:  game,
		Every: every,
		rng:   rand.New(rand.NewPCG(seed, seed+1)),
	}
}

func (b *Bot) Execute(frame *sim.UpdateFrame) {
	if b.Every <= 0 {
		return
	}

	b.elapsed += frame.DeltaTime
	for b.elapsed >= b.Every {
		b.elapsed -= b.Every

		a := botActions[b.rng.IntN(len(botActions))]
		b.actions++
		if b.Game.HandleInput(a) {
			b.consumed++
		}
	}
}

// Actions returns how many actions were sent and how many the game consumed.
func (b *Bot) Actions() (sent, consumed int) {
	return b.actions, b.consumed
}

// StepSystem advances the game by the frame's delta time.
type StepSystem struct {
	Game *tetris.Game
}

func (s *StepSystem) Execute(frame *sim.UpdateFrame) {
	s.Game.Update(float32(frame.DeltaTime))
}

// Driver bundles a bot and a step system on their own scheduler.
type Driver struct {
	Game      *tetris.Game
	Bot       *Bot
	Scheduler *sim.Scheduler
}

// NewDriver registers a bot acting every `every` seconds followed by a step
// system for game.
func NewDriver(game *tetris.Game, seed uint64, every float64) *Driver {
	d := &Driver{
		Game:      game,
		Bot:       NewBot(game, seed, every),
		Scheduler: sim.NewScheduler(nil),
	}
	d.Scheduler.Register(d.Bot)
	d.Scheduler.Register(&StepSystem{Game: game})
	return d
}

// Step runs the bot and the game once with dt seconds of simulated time.
func (d *Driver) Step(dt float64) {
	d.Scheduler.Once(dt)
}

// Run steps in real time every interval until ctx is cancelled.
func (d *Driver) Run(ctx context.Context, interval time.Duration) {
	d.Scheduler.Run(ctx, interval)
}
