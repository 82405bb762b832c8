// Package tetris implements the falling-block puzzle simulation: the board,
// the active piece, gravity and input driven movement, row clearing, scoring
// and the reset lifecycle. It produces no output of its own; frontends read
// the board and active piece every frame.
//
// State lives in a sim.Storage: the board and the run state are singletons
// and the active piece is an entity carrying a Piece and a Falling
// component.
package tetris

import (
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/blockfall/sim"
)

// BoardView is read-only access to a board.
type BoardView interface {
	Width() int
	Height() int
	IsOccupied(c Cell) bool
	RowFull(y int) bool
	Count() int
	OccupiedCells() iter.Seq[Cell]
}

// Game owns all simulation state. It is not safe for concurrent use.
type Game struct {
	cfg    Config
	picker Picker
	next   Shape
	stats  Stats

	storage   *sim.Storage
	scheduler *sim.Scheduler
	grid      *sim.Singleton[Board]
	runState  *sim.Singleton[RunState]
	active    sim.EntityId

	logger    *slog.Logger
	observers []func(Event)
	events    []Event
	ticking   bool
}

// New creates a game and spawns its first piece.
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tetris: %w", err)
	}

	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.picker == nil {
		switch cfg.Randomizer {
		case RandomizerBag:
			s.picker = NewBagPicker(s.rng)
		default:
			s.picker = NewUniformPicker(s.rng)
		}
	}

	storage := sim.NewStorage(newRegistry())
	g := &Game{
		cfg:       cfg,
		picker:    s.picker,
		storage:   storage,
		scheduler: sim.NewScheduler(storage),
		grid:      sim.NewSingleton(storage, *NewBoard(cfg.Width, cfg.Height)),
		runState:  sim.NewSingleton(storage, RunState{}),
		active:    storage.Spawn(Piece{}, Falling{}),
		logger:    s.logger,
		observers: s.observers,
	}

	g.scheduler.Register(&InputSystem{game: g})
	g.scheduler.Register(&GravitySystem{game: g})
	g.scheduler.Register(&LineClearSystem{game: g})
	g.scheduler.Register(&NotifySystem{game: g})

	g.next = g.picker.Pick()
	g.spawn()

	return g, nil
}

func (g *Game) board() *Board     { return g.grid.Get() }
func (g *Game) run() *RunState    { return g.runState.Get() }
func (g *Game) piece() *Piece     { return sim.ReadComponent[Piece](g.storage, g.active) }
func (g *Game) falling() *Falling { return sim.ReadComponent[Falling](g.storage, g.active) }

// Update advances the simulation by elapsed seconds. It does nothing while
// the game is paused.
func (g *Game) Update(elapsed float32) {
	if g.run().Paused {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}

	g.stats.Ticks++
	g.ticking = true
	g.scheduler.Once(float64(elapsed))
	g.ticking = false
}

// Restart ends the current run as if it was lost and starts a fresh one.
func (g *Game) Restart() {
	g.resetRun()
	g.run().Pending = DirNone
	g.falling().Accumulator = 0
	g.spawn()
}

// translate moves p by (dx, dy). A move reaching outside the board is
// rejected. A downward move onto a blocked cell locks the piece instead; any
// other blocked move is rejected.
func (g *Game) translate(p *Piece, dx, dy int) bool {
	board := g.board()
	target := p.Moved(dx, dy)
	cells := target.Cells()

	for _, c := range cells {
		if !board.InBounds(c) {
			return false
		}
	}

	for _, c := range cells {
		if board.IsBlocked(c) {
			if dy < 0 {
				g.lock(p)
			}
			return false
		}
	}

	*p = target
	return true
}

// rotate turns the active piece clockwise if every resulting cell is free.
// There are no kicks: a blocked rotation leaves the piece as it was.
func (g *Game) rotate() bool {
	p := g.piece()
	target := p.Rotated()
	if !target.fits(g.board()) {
		return false
	}
	*p = target
	return true
}

// lock writes p into the board and spawns the next piece. A piece reaching
// outside the grid cannot be written and loses the run.
func (g *Game) lock(p *Piece) {
	if !g.board().Lock(p.Cells()) {
		g.logger.Warn("piece locked outside the board", "shape", p.Shape, "anchor", p.Anchor)
		g.resetRun()
	} else {
		g.stats.Locks++
		g.logger.Debug("piece locked", "shape", p.Shape, "anchor", p.Anchor)
		g.emit(Event{Kind: EventLocked, Shape: p.Shape})
	}
	g.spawn()
}

// spawn places the next shape at the spawn anchor. A piece that does not
// fit there loses the run.
func (g *Game) spawn() {
	shape := g.next
	g.next = g.picker.Pick()

	p := g.piece()
	*p = Piece{Shape: shape, Anchor: g.cfg.SpawnAnchor()}

	g.stats.recordSpawn(shape)
	g.logger.Debug("piece spawned", "shape", shape, "next", g.next)
	g.emit(Event{Kind: EventSpawned, Shape: shape})

	if !p.fits(g.board()) {
		g.resetRun()
	}
}

func (g *Game) resetRun() {
	run := g.run()
	final := run.Score
	g.board().Clear()
	run.Score = 0
	g.stats.Resets++

	g.logger.Info("run reset", "final_score", final)
	g.emit(Event{Kind: EventReset, Score: final})
}

// Config returns the rules the game was created with.
func (g *Game) Config() Config { return g.cfg }

// Board returns read-only access to the locked cells.
func (g *Game) Board() BoardView { return g.board() }

// Piece returns the active piece.
func (g *Game) Piece() Piece { return *g.piece() }

// ActiveCells returns the board cells covered by the active piece.
func (g *Game) ActiveCells() []Cell { return g.piece().Cells() }

// GhostCells returns where the active piece would come to rest if it fell
// straight down.
func (g *Game) GhostCells() []Cell {
	board := g.board()
	ghost := *g.piece()
	for {
		below := ghost.Moved(0, -1)
		if !below.fits(board) {
			return ghost.Cells()
		}
		ghost = below
	}
}

// Next returns the shape that will spawn after the active piece locks.
func (g *Game) Next() Shape { return g.next }

// Score returns the score of the current run.
func (g *Game) Score() int { return g.run().Score }

// Paused reports whether updates are suspended.
func (g *Game) Paused() bool { return g.run().Paused }

// Pending returns the direction waiting to be consumed by the next update.
func (g *Game) Pending() Direction { return g.run().Pending }

// Stats returns a snapshot of the lifetime counters.
func (g *Game) Stats() Stats { return g.stats }

// SchedulerStats returns timing for each system of the update pipeline.
func (g *Game) SchedulerStats() *sim.SchedulerStats { return g.scheduler.GetStats() }
