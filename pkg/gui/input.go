package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/event"
)

// Keybinding maps a key, a rune or a key with modifiers to a command. Zero
// fields match anything.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask

	Command event.Command
}

var DefaultKeybindings = []Keybinding{
	{Key: tcell.KeyLeft, Command: event.CommandMoveLeft},
	{Rune: 'h', Command: event.CommandMoveLeft},
	{Rune: 'H', Command: event.CommandMoveLeft},
	{Key: tcell.KeyRight, Command: event.CommandMoveRight},
	{Rune: 'l', Command: event.CommandMoveRight},
	{Rune: 'L', Command: event.CommandMoveRight},
	{Key: tcell.KeyDown, Command: event.CommandSoftDrop},
	{Rune: 'j', Command: event.CommandSoftDrop},
	{Rune: 'J', Command: event.CommandSoftDrop},
	{Key: tcell.KeyUp, Command: event.CommandRotateCW},
	{Rune: 'k', Command: event.CommandRotateCW},
	{Rune: 'K', Command: event.CommandRotateCW},
	{Rune: 'x', Command: event.CommandRotateCW},
	{Rune: 'X', Command: event.CommandRotateCW},
	{Rune: 'z', Command: event.CommandRotateCCW},
	{Rune: 'Z', Command: event.CommandRotateCCW},
	{Rune: ' ', Command: event.CommandHardDrop},
	{Rune: 'q', Command: event.CommandQuit},
	{Rune: 'Q', Command: event.CommandQuit},
	{Key: tcell.KeyEscape, Command: event.CommandQuit},
	{Key: tcell.KeyCtrlC, Command: event.CommandQuit},
}

func (b Keybinding) matches(ev *tcell.EventKey) bool {
	if b.Key != 0 && b.Key != ev.Key() {
		return false
	}
	if b.Rune != 0 && (ev.Key() != tcell.KeyRune || b.Rune != ev.Rune()) {
		return false
	}
	if b.Mod != 0 && b.Mod != ev.Modifiers() {
		return false
	}

	return b.Key != 0 || b.Rune != 0
}

// Lookup returns the command bound to ev.
func Lookup(bindings []Keybinding, ev *tcell.EventKey) (event.Command, bool) {
	for _, b := range bindings {
		if b.matches(ev) {
			return b.Command, true
		}
	}

	return event.CommandUnknown, false
}

// handleKeypress turns key events into commands. Every key is consumed so
// tview never acts on it.
func (g *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if g.over() {
		g.Stop()
		return nil
	}

	c, ok := Lookup(g.Keybindings, ev)
	if !ok {
		return nil
	}

	if c == event.CommandQuit {
		select {
		case g.commands <- c:
		case <-g.done:
		}
		return nil
	}

	select {
	case g.commands <- c:
	default:
		// The loop is behind; drop the keypress rather than stall input.
	}

	return nil
}
