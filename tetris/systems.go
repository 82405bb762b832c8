package tetris

import "github.com/plus3/blockfall/sim"

// InputSystem consumes the pending direction. A pending soft drop speeds up
// time accumulation and stays pending; a side move is attempted once.
type InputSystem struct {
	Pieces sim.View[activePiece]
	Run    sim.Singleton[RunState]

	game *Game
}

func (s *InputSystem) Execute(frame *sim.UpdateFrame) {
	run := s.Run.Get()
	dt := float32(frame.DeltaTime)

	for p := range s.Pieces.Values() {
		switch run.Pending {
		case DirDown:
			p.Accumulator += dt * (s.game.cfg.SoftDropFactor - 1)
		case DirLeft:
			s.game.translate(p.Piece, -1, 0)
		case DirRight:
			s.game.translate(p.Piece, 1, 0)
		}
	}

	if run.Pending == DirLeft || run.Pending == DirRight {
		run.Pending = DirNone
	}
}

// GravitySystem moves the piece down one row each time its accumulator
// passes the fall interval.
type GravitySystem struct {
	Pieces sim.View[activePiece]

	game *Game
}

func (s *GravitySystem) Execute(frame *sim.UpdateFrame) {
	interval := s.game.cfg.FallInterval

	for p := range s.Pieces.Values() {
		p.Accumulator += float32(frame.DeltaTime)
		if p.Accumulator > interval {
			s.game.translate(p.Piece, 0, -1)
			p.Accumulator -= interval
		}
	}
}

// LineClearSystem removes full rows and scores them.
type LineClearSystem struct {
	Board sim.Singleton[Board]
	Run   sim.Singleton[RunState]

	game *Game
}

func (s *LineClearSystem) Execute(frame *sim.UpdateFrame) {
	board := s.Board.Get()
	rows := board.FullRows()
	if len(rows) == 0 {
		return
	}

	n := board.ClearRows(rows)
	run := s.Run.Get()
	run.Score += n * s.game.cfg.PointsPerRow

	s.game.stats.RowsCleared += n
	s.game.emit(Event{Kind: EventRowsCleared, Rows: n, Score: run.Score})
}

// NotifySystem hands the events raised during the tick to the frame's
// commands so observers run once the tick is complete. It ends the tick:
// events raised by observers while the commands flush are delivered at once.
type NotifySystem struct {
	game *Game
}

func (s *NotifySystem) Execute(frame *sim.UpdateFrame) {
	g := s.game
	for _, e := range g.events {
		frame.Commands.Defer(func() {
			g.dispatch(e)
		})
	}
	g.events = g.events[:0]
	g.ticking = false
}
