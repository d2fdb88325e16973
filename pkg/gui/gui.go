package gui

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

// Session is the part of a game the terminal driver talks to
type Session interface {
	Board
	Start()
	ProcessAction(a event.GameAction)
}

type Config struct {
	Session Session
	Nick    string
	Theme   Theme

	// Draw and Event are fed by the session
	Draw  <-chan event.DrawObject
	Event <-chan interface{}
}

type GUI struct {
	App *tview.Application

	session Session
	nick    string
	theme   Theme
	view    *tview.Box

	draw  <-chan event.DrawObject
	event <-chan interface{}

	message  string
	gameOver *event.GameOverEvent
	stopped  bool
	sync.Mutex
}

func NewGUI(cfg Config) *GUI {
	if cfg.Theme.Name == "" {
		cfg.Theme = ThemeBasic
	}

	gui := &GUI{
		App:     tview.NewApplication(),
		session: cfg.Session,
		nick:    cfg.Nick,
		theme:   cfg.Theme,
		draw:    cfg.Draw,
		event:   cfg.Event,
	}

	gui.view = tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		Render(screen, x, y, gui.session, gui.status(), gui.theme)
		return x, y, width, height
	})

	gui.App.SetInputCapture(gui.handleKeypress)
	gui.App.SetRoot(gui.view, true)

	return gui
}

// Run blocks until the user quits or ctx is done
func (gui *GUI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go gui.handleDraw(ctx)
	go func() {
		<-ctx.Done()
		gui.Stop()
	}()

	err := gui.App.Run()
	if err != nil {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	return nil
}

func (gui *GUI) Stop() {
	gui.Lock()
	if gui.stopped {
		gui.Unlock()
		return
	}
	gui.stopped = true
	gui.Unlock()

	gui.App.Stop()
}

// handleDraw redraws the whole view on every hint. The view is a single box
// so there is nothing to gain from redrawing part of it.
func (gui *GUI) handleDraw(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-gui.draw:
			gui.App.QueueUpdateDraw(func() {})
		case e := <-gui.event:
			gui.handleEvent(e)
			gui.App.QueueUpdateDraw(func() {})
		}
	}
}

func (gui *GUI) handleEvent(e interface{}) {
	switch e := e.(type) {
	case *event.ScoreEvent:
		if e.Lines == 1 {
			gui.setMessage("Cleared 1 row")
		} else {
			gui.setMessage(fmt.Sprintf("Cleared %d rows", e.Lines))
		}
	case *event.GameOverEvent:
		gui.Lock()
		gui.gameOver = e
		gui.Unlock()

		if e.NewBest {
			gui.setMessage(fmt.Sprintf("New best score: %d", e.Score))
		} else {
			gui.setMessage(fmt.Sprintf("Best score: %d", e.Best))
		}
	default:
		log.Printf("unknown event %T", e)
	}
}

// LastGameOver returns the most recent game over event, nil if no game
// has ended yet
func (gui *GUI) LastGameOver() *event.GameOverEvent {
	gui.Lock()
	defer gui.Unlock()

	return gui.gameOver
}

func (gui *GUI) setMessage(m string) {
	gui.Lock()
	defer gui.Unlock()

	gui.message = m
}

func (gui *GUI) status() Status {
	gui.Lock()
	defer gui.Unlock()

	return Status{Nick: gui.nick, Message: gui.message}
}
