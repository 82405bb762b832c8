package tetris

// Action is an input event already translated from raw device input.
type Action int

const (
	ActionNone Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionRotate
	ActionTogglePause
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionRotate:
		return "rotate"
	case ActionTogglePause:
		return "toggle-pause"
	default:
		return "unknown"
	}
}

// Direction is the movement intent consumed on the next update.
type Direction int

const (
	DirNone Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// HandleInput applies a single input event and reports whether it was
// consumed. Directional input and rotation only take effect while running;
// they are still consumed while paused. Unrecognized actions clear the
// pending direction and are left for the caller.
func (g *Game) HandleInput(a Action) bool {
	run := g.run()
	switch a {
	case ActionTogglePause:
		run.Paused = !run.Paused
		g.logger.Debug("pause toggled", "paused", run.Paused)
		return true
	case ActionDown:
		if !run.Paused {
			run.Pending = DirDown
		}
		return true
	case ActionLeft:
		if !run.Paused {
			run.Pending = DirLeft
		}
		return true
	case ActionRight:
		if !run.Paused {
			run.Pending = DirRight
		}
		return true
	case ActionRotate:
		if !run.Paused {
			g.rotate()
		}
		return true
	default:
		run.Pending = DirNone
		return false
	}
}
