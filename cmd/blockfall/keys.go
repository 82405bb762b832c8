package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/tetris"
)

// keyActions maps pressed keys to game actions. Keys missing here reach the
// game as ActionNone.
var keyActions = map[ebiten.Key]tetris.Action{
	ebiten.KeyArrowLeft:  tetris.ActionLeft,
	ebiten.KeyArrowRight: tetris.ActionRight,
	ebiten.KeyArrowDown:  tetris.ActionDown,
	ebiten.KeyArrowUp:    tetris.ActionRotate,
	ebiten.KeyP:          tetris.ActionTogglePause,
}

func actionForKey(key ebiten.Key) tetris.Action {
	if a, ok := keyActions[key]; ok {
		return a
	}
	return tetris.ActionNone
}

// releaseClears reports whether releasing key should send ActionNone. Only
// the soft drop is held; side moves and rotation already took effect.
func releaseClears(key ebiten.Key) bool {
	return key == ebiten.KeyArrowDown
}

type keyOutcome int

const (
	keyIgnored keyOutcome = iota
	keyConsumed
	keyRestart
	keyQuit
)

// pressKey routes a key press to the game. Restart is handled before the
// game sees the key; Escape quits only when the game did not consume it.
func pressKey(game *tetris.Game, key ebiten.Key) keyOutcome {
	if key == ebiten.KeyR {
		game.Restart()
		return keyRestart
	}

	if game.HandleInput(actionForKey(key)) {
		return keyConsumed
	}
	if key == ebiten.KeyEscape {
		return keyQuit
	}
	return keyIgnored
}
