// Package debugui provides Dear ImGui panels for inspecting a running game:
// per-system update timings and the live simulation state.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/tetris"
)

// Overlay groups every debug panel. Render must be called between the
// ImGui backend's BeginFrame and EndFrame.
type Overlay struct {
	Performance *PerformanceStats
	Inspector   *GameInspector
	Visible     bool
}

// NewOverlay returns a visible overlay keeping historyFrames frame times.
func NewOverlay(historyFrames int) *Overlay {
	return &Overlay{
		Performance: NewPerformanceStats(historyFrames),
		Inspector:   &GameInspector{},
		Visible:     true,
	}
}

// Render draws all panels for game.
func (o *Overlay) Render(game *tetris.Game, deltaTime float32) {
	if !o.Visible {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 260), imgui.CondOnce)
	o.Performance.Render(game.SchedulerStats(), deltaTime)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)
	o.Inspector.Render(game)
}
