package main

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/tetris"
)

const (
	sidePanelCells  = 6
	debugPanelWidth = 340
)

var (
	backgroundColor = color.RGBA{245, 245, 240, 255}
	wellColor       = color.RGBA{40, 42, 54, 255}
	lockedColor     = color.RGBA{179, 229, 252, 255}
	ghostColor      = color.RGBA{90, 92, 110, 255}
)

// shapeColors follows tetris.Shapes order.
var shapeColors = [...]color.RGBA{
	{255, 255, 186, 255},
	{217, 186, 255, 255},
	{186, 255, 201, 255},
	{255, 179, 186, 255},
	{186, 225, 255, 255},
	{255, 223, 186, 255},
	{179, 229, 252, 255},
}

// app implements ebiten.Game on top of a tetris.Game.
type app struct {
	game     *tetris.Game
	cellSize int
	tps      int
	originX  int

	imgui   *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
	timer   *debugui.FrameTimer

	keys []ebiten.Key
}

func newApp(game *tetris.Game, cfg *config.Config, debugUI bool) *app {
	a := &app{
		game:     game,
		cellSize: cfg.Window.CellSize,
		tps:      cfg.Window.TPS,
	}

	w, h := a.boardSize()
	if debugUI {
		a.originX = debugPanelWidth
		a.imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title, w+debugPanelWidth, max(h, 600))
		a.overlay = debugui.NewOverlay(120)
		a.timer = debugui.NewFrameTimer()
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(w, h)
	}
	return a
}

// boardSize is the pixel size of the well plus the side panel.
func (a *app) boardSize() (int, int) {
	board := a.game.Board()
	return (board.Width() + sidePanelCells) * a.cellSize, board.Height() * a.cellSize
}

func (a *app) Update() error {
	if a.imgui != nil {
		a.imgui.BeginFrame()
		a.overlay.Render(a.game, a.timer.GetDeltaTime())
		a.imgui.EndFrame()
	}

	if a.imgui == nil || !imgui.CurrentIO().WantCaptureKeyboard() {
		if err := a.handleKeys(); err != nil {
			return err
		}
	}

	a.game.Update(1.0 / float32(a.tps))
	return nil
}

func (a *app) handleKeys() error {
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, key := range a.keys {
		if pressKey(a.game, key) == keyQuit {
			return ebiten.Termination
		}
	}

	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, key := range a.keys {
		if releaseClears(key) {
			a.game.HandleInput(tetris.ActionNone)
		}
	}
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	board := a.game.Board()
	cs := float32(a.cellSize)
	vector.DrawFilledRect(screen, float32(a.originX), 0, float32(board.Width())*cs, float32(board.Height())*cs, wellColor, false)

	for c := range board.OccupiedCells() {
		a.drawCell(screen, c, lockedColor)
	}
	for _, c := range a.game.GhostCells() {
		a.drawCell(screen, c, ghostColor)
	}
	piece := a.game.Piece()
	for _, c := range piece.Cells() {
		a.drawCell(screen, c, shapeColors[piece.Shape])
	}

	a.drawSidePanel(screen)

	if a.imgui != nil {
		a.imgui.Draw(screen)
	}
}

// drawCell draws board cell c. Board rows count up from the floor, screen
// rows count down from the top.
func (a *app) drawCell(screen *ebiten.Image, c tetris.Cell, clr color.Color) {
	height := a.game.Board().Height()
	if c.Y < 0 || c.Y >= height {
		return
	}
	cs := float32(a.cellSize)
	x := float32(a.originX) + float32(c.X)*cs
	y := float32(height-1-c.Y) * cs
	vector.DrawFilledRect(screen, x+1, y+1, cs-2, cs-2, clr, false)
}

func (a *app) drawSidePanel(screen *ebiten.Image) {
	board := a.game.Board()
	panelX := a.originX + (board.Width()+1)*a.cellSize
	cs := float32(a.cellSize) / 2

	ebitenutil.DebugPrintAt(screen, "NEXT", panelX, 8)
	next := a.game.Next()
	for _, off := range next.Offsets(0) {
		x := float32(panelX) + float32(off.DX)*cs
		y := 32 + float32(-off.DY)*cs
		vector.DrawFilledRect(screen, x, y, cs-1, cs-1, shapeColors[next], false)
	}

	status := fmt.Sprintf("SCORE %d", a.game.Score())
	ebitenutil.DebugPrintAt(screen, status, panelX, 32+int(4*cs)+16)
	if a.game.Paused() {
		ebitenutil.DebugPrintAt(screen, "PAUSED", panelX, 32+int(4*cs)+32)
	}
	ebitenutil.DebugPrintAt(screen, "R restart\nP pause\nEsc quit", panelX, board.Height()*a.cellSize-56)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.imgui != nil {
		a.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return a.boardSize()
}
