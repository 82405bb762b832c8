package tetris

// EventKind classifies a game event.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventLocked
	EventRowsCleared
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventRowsCleared:
		return "rows-cleared"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event describes a state transition of the game.
//
// Shape is set for spawn and lock events. Rows is the number of rows removed
// by a clear. Score is the score after a clear, and the final score of the
// finished run for a reset.
type Event struct {
	Kind  EventKind
	Shape Shape
	Rows  int
	Score int
}

// Observe registers fn to receive events. Events raised during Update are
// delivered after every system of the tick has run.
func (g *Game) Observe(fn func(Event)) {
	if fn == nil {
		return
	}
	g.observers = append(g.observers, fn)
}

func (g *Game) emit(e Event) {
	if g.ticking {
		g.events = append(g.events, e)
		return
	}
	g.dispatch(e)
}

func (g *Game) dispatch(e Event) {
	for _, fn := range g.observers {
		fn(e)
	}
}
