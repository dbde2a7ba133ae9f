package main

import (
	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"

	"github.com/klondiketui/klondike/internal/game"
)

// command is a front-end level input that is not a game action.
type command uint8

const (
	cmdNone command = iota
	cmdQuit
	cmdSave
	cmdLoad
)

// input is one decoded keypress: either a game action or an app command.
type input struct {
	Action game.Action
	Cmd    command
}

// listenKeys pumps raw keypresses into keyCh until stop is closed. It runs
// in its own goroutine; keyboard.Listen owns the terminal's raw mode.
func listenKeys(keyCh chan<- keys.Key, stop <-chan struct{}) {
	_ = keyboard.Listen(func(key keys.Key) (bool, error) {
		select {
		case <-stop:
			return true, nil
		default:
		}
		keyCh <- key
		return false, nil
	})
}

// decodeKey maps a keypress to an input. Unbound keys decode to the zero
// input.
func decodeKey(key keys.Key) input {
	switch key.Code {
	case keys.Up:
		return input{Action: game.ActionCursorUp}
	case keys.Down:
		return input{Action: game.ActionCursorDown}
	case keys.Left:
		return input{Action: game.ActionCursorLeft}
	case keys.Right:
		return input{Action: game.ActionCursorRight}
	case keys.Space:
		return input{Action: game.ActionSelect}
	case keys.Enter:
		return input{Action: game.ActionPlace}
	case keys.Escape:
		return input{Action: game.ActionCancel}
	case keys.CtrlC:
		return input{Cmd: cmdQuit}
	case keys.RuneKey:
		switch key.String() {
		case "d":
			return input{Action: game.ActionStock}
		case "u":
			return input{Action: game.ActionUndo}
		case "r":
			return input{Action: game.ActionRestart}
		case "v":
			return input{Action: game.ActionShowDestinations}
		case "s":
			return input{Cmd: cmdSave}
		case "l":
			return input{Cmd: cmdLoad}
		case "q":
			return input{Cmd: cmdQuit}
		}
	}
	return input{}
}
