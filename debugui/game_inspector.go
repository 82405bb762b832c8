package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/tetris"
)

// GameInspector shows the live simulation state and offers pause and
// restart controls.
type GameInspector struct{}

func (gi *GameInspector) Render(game *tetris.Game) {
	if !imgui.BeginV("Game Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	piece := game.Piece()
	stats := game.Stats()

	imgui.Text(fmt.Sprintf("Score: %d", game.Score()))
	imgui.Text(fmt.Sprintf("Paused: %v", game.Paused()))
	imgui.Text(fmt.Sprintf("Pending: %s", game.Pending()))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Piece: %s rot %d at (%d, %d)", piece.Shape, piece.Rotation, piece.Anchor.X, piece.Anchor.Y))
	imgui.Text(fmt.Sprintf("Next: %s", game.Next()))
	imgui.Text(fmt.Sprintf("Locked cells: %d", game.Board().Count()))

	if imgui.Button(pauseLabel(game.Paused())) {
		game.HandleInput(tetris.ActionTogglePause)
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		game.Restart()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Locks: %d  Rows: %d  Resets: %d", stats.Locks, stats.RowsCleared, stats.Resets))

	if imgui.TreeNodeStr("Spawns by Shape") {
		for _, shape := range tetris.Shapes {
			imgui.BulletText(fmt.Sprintf("%s: %d", shape, stats.SpawnsOf(shape)))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}
