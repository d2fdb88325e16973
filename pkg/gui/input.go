package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

var keybindings = []*Keybinding{
	{r: 'z', a: event.ActionRotateCCW},
	{r: 'Z', a: event.ActionRotateCCW},
	{r: 'x', a: event.ActionRotateCW},
	{r: 'X', a: event.ActionRotateCW},
	{r: 'w', a: event.ActionRotateCW},
	{r: 'W', a: event.ActionRotateCW},
	{k: tcell.KeyUp, a: event.ActionRotateCW},
	{k: tcell.KeyLeft, a: event.ActionMoveLeft},
	{r: 'h', a: event.ActionMoveLeft},
	{r: 'H', a: event.ActionMoveLeft},
	{k: tcell.KeyRight, a: event.ActionMoveRight},
	{r: 'l', a: event.ActionMoveRight},
	{r: 'L', a: event.ActionMoveRight},
	{k: tcell.KeyDown, a: event.ActionSoftDrop},
	{r: 'j', a: event.ActionSoftDrop},
	{r: 'J', a: event.ActionSoftDrop},
	{r: ' ', a: event.ActionHardDrop},
	{r: 'k', a: event.ActionHardDrop},
	{r: 'K', a: event.ActionHardDrop},
	{r: 'p', a: event.ActionTogglePause},
	{r: 'P', a: event.ActionTogglePause},
}

func (bind *Keybinding) matches(ev *tcell.EventKey) bool {
	if bind.r != 0 {
		return ev.Key() == tcell.KeyRune && ev.Rune() == bind.r
	}

	return bind.k == ev.Key() && (bind.m == 0 || bind.m == ev.Modifiers())
}

// actionFor returns the game action bound to ev, or ActionUnknown
func actionFor(ev *tcell.EventKey) event.GameAction {
	for _, bind := range keybindings {
		if bind.matches(ev) {
			return bind.a
		}
	}

	return event.ActionUnknown
}

func isNewGameKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'))
}

func isQuitKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'))
}

func (gui *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	switch {
	case isQuitKey(ev):
		gui.Stop()
		return nil
	case isNewGameKey(ev):
		gui.setMessage("")
		gui.session.Start()
		return nil
	}

	a := actionFor(ev)
	if a == event.ActionUnknown {
		return ev
	}

	gui.session.ProcessAction(a)
	return nil
}
