package tetris

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t testing.TB, shapes ...Shape) *Game {
	t.Helper()
	if len(shapes) == 0 {
		shapes = []Shape{ShapeO}
	}
	g, err := New(DefaultConfig(),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithPicker(NewSequencePicker(shapes...)),
	)
	require.NoError(t, err)
	return g
}

// tick runs one update long enough to trigger exactly one gravity step.
func tick(g *Game) {
	g.Update(g.cfg.FallInterval * 1.01)
}

func TestNew(t *testing.T) {
	t.Run("spawns the first piece at the spawn anchor", func(t *testing.T) {
		g := newTestGame(t, ShapeT, ShapeI)

		assert.Equal(t, Piece{Shape: ShapeT, Anchor: Cell{4, 19}}, g.Piece())
		assert.Equal(t, ShapeI, g.Next())
		assert.Zero(t, g.Score())
		assert.False(t, g.Paused())
		assert.Zero(t, g.Board().Count())
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cases := []struct {
			name string
			edit func(*Config)
		}{
			{"zero width", func(c *Config) { c.Width = 0 }},
			{"too narrow for I", func(c *Config) { c.Width = 4 }},
			{"too short", func(c *Config) { c.Height = 1 }},
			{"no fall interval", func(c *Config) { c.FallInterval = 0 }},
			{"soft drop below one", func(c *Config) { c.SoftDropFactor = 0.5 }},
			{"negative points", func(c *Config) { c.PointsPerRow = -1 }},
			{"unknown randomizer", func(c *Config) { c.Randomizer = "lucky" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				cfg := DefaultConfig()
				tc.edit(&cfg)
				_, err := New(cfg)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			})
		}
	})

	t.Run("same seed same shapes", func(t *testing.T) {
		var a, b []Shape
		for _, out := range []*[]Shape{&a, &b} {
			g, err := New(DefaultConfig(), WithSeed(42), WithLogger(slog.New(slog.DiscardHandler)))
			require.NoError(t, err)
			for range 20 {
				*out = append(*out, g.Piece().Shape)
				g.Restart()
			}
		}
		assert.Equal(t, a, b)
	})
}

func TestDropScenario(t *testing.T) {
	g := newTestGame(t, ShapeO)
	require.ElementsMatch(t, []Cell{{4, 19}, {5, 19}, {4, 18}, {5, 18}}, g.ActiveCells())

	for range 18 {
		tick(g)
	}
	assert.ElementsMatch(t, []Cell{{4, 1}, {5, 1}, {4, 0}, {5, 0}}, g.ActiveCells())
	assert.Zero(t, g.Board().Count())

	tick(g)

	assert.Equal(t, 4, g.Board().Count())
	for _, c := range []Cell{{4, 0}, {5, 0}, {4, 1}, {5, 1}} {
		assert.True(t, g.Board().IsOccupied(c), "cell %v", c)
	}
	assert.Equal(t, g.cfg.SpawnAnchor(), g.Piece().Anchor)
}

func TestTranslate(t *testing.T) {
	t.Run("horizontal move out of bounds leaves position unchanged", func(t *testing.T) {
		g := newTestGame(t, ShapeI)
		g.piece().Anchor = Cell{0, 10}

		assert.False(t, g.translate(g.piece(), -1, 0))
		assert.Equal(t, Cell{0, 10}, g.Piece().Anchor)

		g.piece().Anchor = Cell{6, 10}
		assert.False(t, g.translate(g.piece(), 1, 0))
		assert.Equal(t, Cell{6, 10}, g.Piece().Anchor)
		assert.Zero(t, g.Board().Count())
	})

	t.Run("horizontal move into locked cell is rejected without locking", func(t *testing.T) {
		g := newTestGame(t, ShapeO)
		g.board().Lock([]Cell{{6, 18}})

		assert.False(t, g.translate(g.piece(), 1, 0))
		assert.Equal(t, Cell{4, 19}, g.Piece().Anchor)
		assert.Equal(t, 1, g.Board().Count())
	})

	t.Run("free downward move updates the anchor only", func(t *testing.T) {
		g := newTestGame(t, ShapeT)
		g.board().Lock([]Cell{{0, 0}})

		assert.True(t, g.translate(g.piece(), 0, -1))
		assert.Equal(t, Cell{4, 18}, g.Piece().Anchor)
		assert.Equal(t, 1, g.Board().Count())
	})

	t.Run("blocked downward move locks and spawns", func(t *testing.T) {
		g := newTestGame(t, ShapeO, ShapeT)
		g.piece().Anchor = Cell{0, 5}
		g.board().Lock([]Cell{{1, 3}})
		before := g.Piece().Cells()

		assert.False(t, g.translate(g.piece(), 0, -1))

		for _, c := range before {
			assert.True(t, g.Board().IsOccupied(c), "cell %v", c)
		}
		assert.Equal(t, 5, g.Board().Count())
		assert.Equal(t, g.cfg.SpawnAnchor(), g.Piece().Anchor)
		assert.Equal(t, ShapeT, g.Piece().Shape)
	})

	t.Run("spawn overlap resets the run", func(t *testing.T) {
		g := newTestGame(t, ShapeO)
		var resets []Event
		g.Observe(func(e Event) {
			if e.Kind == EventReset {
				resets = append(resets, e)
			}
		})

		g.board().Lock([]Cell{{5, 18}, {9, 9}})
		g.piece().Anchor = Cell{0, 1}
		g.run().Score = 7

		g.translate(g.piece(), 0, -1)

		assert.Zero(t, g.Board().Count())
		assert.Zero(t, g.Score())
		assert.Equal(t, g.cfg.SpawnAnchor(), g.Piece().Anchor)
		require.Len(t, resets, 1)
		assert.Equal(t, 7, resets[0].Score)
		assert.Equal(t, 1, g.Stats().Resets)
	})
}

func TestRotate(t *testing.T) {
	t.Run("rotates when free", func(t *testing.T) {
		g := newTestGame(t, ShapeI)
		g.piece().Anchor = Cell{3, 10}

		assert.True(t, g.rotate())
		assert.Equal(t, 1, g.Piece().Rotation)
		assert.ElementsMatch(t, []Cell{{3, 10}, {3, 9}, {3, 8}, {3, 7}}, g.ActiveCells())
	})

	t.Run("rejected below the floor", func(t *testing.T) {
		g := newTestGame(t, ShapeI)
		g.piece().Anchor = Cell{3, 1}

		assert.False(t, g.rotate())
		assert.Equal(t, 0, g.Piece().Rotation)
		assert.Equal(t, Cell{3, 1}, g.Piece().Anchor)
	})

	t.Run("rejected outside the walls", func(t *testing.T) {
		g := newTestGame(t, ShapeI)
		*g.piece() = Piece{Shape: ShapeI, Rotation: 1, Anchor: Cell{8, 10}}

		assert.False(t, g.rotate())
		assert.Equal(t, 1, g.Piece().Rotation)
	})

	t.Run("rejected into a locked cell", func(t *testing.T) {
		g := newTestGame(t, ShapeT)
		g.piece().Anchor = Cell{4, 10}
		g.board().Lock([]Cell{{4, 8}})

		assert.False(t, g.rotate())
		assert.Equal(t, 0, g.Piece().Rotation)
	})

	t.Run("rotate input is immediate", func(t *testing.T) {
		g := newTestGame(t, ShapeT)
		g.piece().Anchor = Cell{4, 10}

		assert.True(t, g.HandleInput(ActionRotate))
		assert.Equal(t, 1, g.Piece().Rotation)
		assert.Equal(t, DirNone, g.Pending())
	})
}

func TestInput(t *testing.T) {
	t.Run("side move is consumed once", func(t *testing.T) {
		g := newTestGame(t, ShapeO)

		assert.True(t, g.HandleInput(ActionLeft))
		g.Update(0.01)
		assert.Equal(t, Cell{3, 19}, g.Piece().Anchor)
		assert.Equal(t, DirNone, g.Pending())

		g.Update(0.01)
		assert.Equal(t, Cell{3, 19}, g.Piece().Anchor)
	})

	t.Run("side move and gravity in one tick", func(t *testing.T) {
		g := newTestGame(t, ShapeO)

		g.HandleInput(ActionRight)
		tick(g)

		assert.Equal(t, Cell{5, 18}, g.Piece().Anchor)
	})

	t.Run("soft drop accelerates and stays pending", func(t *testing.T) {
		g := newTestGame(t, ShapeO)

		g.Update(0.07)
		assert.Equal(t, Cell{4, 19}, g.Piece().Anchor)

		g.Restart()
		g.HandleInput(ActionDown)
		g.Update(0.07)
		assert.Equal(t, Cell{4, 18}, g.Piece().Anchor)
		assert.Equal(t, DirDown, g.Pending())
	})

	t.Run("unrecognized input clears pending direction", func(t *testing.T) {
		g := newTestGame(t, ShapeO)

		g.HandleInput(ActionDown)
		assert.False(t, g.HandleInput(ActionNone))
		assert.Equal(t, DirNone, g.Pending())

		g.HandleInput(ActionLeft)
		assert.False(t, g.HandleInput(Action(99)))
		assert.Equal(t, DirNone, g.Pending())
	})

	t.Run("pause suspends updates and movement", func(t *testing.T) {
		g := newTestGame(t, ShapeO)
		g.Update(0.05)

		assert.True(t, g.HandleInput(ActionTogglePause))
		assert.True(t, g.Paused())

		assert.True(t, g.HandleInput(ActionLeft))
		assert.True(t, g.HandleInput(ActionRotate))
		assert.True(t, g.HandleInput(ActionDown))
		assert.Equal(t, DirNone, g.Pending())

		acc := g.falling().Accumulator
		ticks := g.Stats().Ticks
		for range 10 {
			g.Update(1)
		}
		assert.Equal(t, acc, g.falling().Accumulator)
		assert.Equal(t, ticks, g.Stats().Ticks)
		assert.Equal(t, Piece{Shape: ShapeO, Anchor: Cell{4, 19}}, g.Piece())

		assert.True(t, g.HandleInput(ActionTogglePause))
		assert.False(t, g.Paused())
		tick(g)
		assert.Equal(t, Cell{4, 18}, g.Piece().Anchor)
	})

	t.Run("action names", func(t *testing.T) {
		assert.Equal(t, "toggle-pause", ActionTogglePause.String())
		assert.Equal(t, "unknown", Action(99).String())
		assert.Equal(t, "left", DirLeft.String())
	})
}

func TestRowClearScenario(t *testing.T) {
	g := newTestGame(t, ShapeO)
	var events []Event
	g.Observe(func(e Event) {
		events = append(events, e)
	})

	fillRow(g.board(), 0, 4, 5)
	g.board().Lock([]Cell{{0, 1}, {9, 1}})
	g.piece().Anchor = Cell{4, 1}

	tick(g)

	assert.Equal(t, 1, g.Score())
	assert.Equal(t, []bool{true, false, false, false, true, true, false, false, false, true}, rowPattern(g.board(), 0))
	assert.Equal(t, make([]bool, 10), rowPattern(g.board(), 1))
	assert.Equal(t, 4, g.Board().Count())

	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventLocked, EventSpawned, EventRowsCleared}, kinds)
	assert.Equal(t, 1, events[2].Rows)
	assert.Equal(t, 1, events[2].Score)

	stats := g.Stats()
	assert.Equal(t, 1, stats.Locks)
	assert.Equal(t, 1, stats.RowsCleared)
}

func TestEventsDeliveredAfterTick(t *testing.T) {
	g := newTestGame(t, ShapeO)
	fillRow(g.board(), 0, 4, 5)
	fillRow(g.board(), 1, 4, 5)
	g.piece().Anchor = Cell{4, 1}

	var scoreAtLock, countAtLock int
	g.Observe(func(e Event) {
		if e.Kind == EventLocked {
			scoreAtLock = g.Score()
			countAtLock = g.Board().Count()
		}
	})

	tick(g)

	assert.Equal(t, 2, scoreAtLock, "observers see the post-tick score")
	assert.Zero(t, countAtLock)
}

func TestRestart(t *testing.T) {
	g := newTestGame(t, ShapeO, ShapeS)
	var final []int
	g.Observe(func(e Event) {
		if e.Kind == EventReset {
			final = append(final, e.Score)
		}
	})

	g.board().Lock([]Cell{{0, 0}, {1, 0}})
	g.run().Score = 3
	g.HandleInput(ActionDown)
	g.Update(0.05)

	g.Restart()

	assert.Zero(t, g.Board().Count())
	assert.Zero(t, g.Score())
	assert.Equal(t, DirNone, g.Pending())
	assert.Zero(t, g.falling().Accumulator)
	assert.Equal(t, ShapeS, g.Piece().Shape)
	assert.Equal(t, []int{3}, final)
}

func TestGhostCells(t *testing.T) {
	g := newTestGame(t, ShapeI)
	g.board().Lock([]Cell{{6, 4}})

	assert.ElementsMatch(t, []Cell{{4, 5}, {5, 5}, {6, 5}, {7, 5}}, g.GhostCells())

	g.piece().Anchor = Cell{0, 19}
	assert.ElementsMatch(t, []Cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, g.GhostCells())
	assert.Equal(t, Cell{0, 19}, g.Piece().Anchor)
}

func TestStats(t *testing.T) {
	g := newTestGame(t, ShapeO, ShapeI)
	for range 19 {
		tick(g)
	}

	stats := g.Stats()
	assert.Equal(t, int64(19), stats.Ticks)
	assert.Equal(t, 2, stats.Spawns)
	assert.Equal(t, 1, stats.SpawnsOf(ShapeO))
	assert.Equal(t, 1, stats.SpawnsOf(ShapeI))
	assert.Zero(t, stats.SpawnsOf(ShapeZ))

	g.Restart()
	assert.Equal(t, 1, stats.SpawnsOf(ShapeO), "snapshots do not change")
	assert.Equal(t, 2, g.Stats().SpawnsOf(ShapeO))

	sched := g.SchedulerStats()
	require.Len(t, sched.Systems, 4)
	assert.Equal(t, "InputSystem", sched.Systems[0].Name)
	assert.Equal(t, "NotifySystem", sched.Systems[3].Name)
	assert.Equal(t, int64(19), sched.Systems[0].ExecutionCount)
}

func BenchmarkUpdate(b *testing.B) {
	g := newTestGame(b, Shapes[:]...)
	for b.Loop() {
		g.HandleInput(ActionLeft)
		g.Update(g.cfg.FallInterval * 1.01)
	}
}
