package gui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/game"
)

// GUI is the terminal frontend. It is both the command source and the render
// sink of a game loop.
type GUI struct {
	App         *tview.Application
	Board       *tview.Box
	Theme       Theme
	Keybindings []Keybinding

	commands chan event.Command
	draw     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	sync.Mutex
	snapshot *game.Snapshot
}

func NewGUI(t Theme) *GUI {
	g := &GUI{
		App:         tview.NewApplication(),
		Board:       tview.NewBox(),
		Theme:       t,
		Keybindings: DefaultKeybindings,
		commands:    make(chan event.Command, event.CommandQueueSize),
		draw:        make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	g.Board.SetDrawFunc(g.drawBoard)
	g.App.SetRoot(g.Board, true).SetInputCapture(g.handleKeypress)

	return g
}

func (g *GUI) Commands() <-chan event.Command {
	return g.commands
}

// Render keeps s for the next redraw and asks for one without blocking.
func (g *GUI) Render(s *game.Snapshot) {
	g.Lock()
	g.snapshot = s
	g.Unlock()

	select {
	case g.draw <- struct{}{}:
	default:
	}
}

func (g *GUI) Snapshot() *game.Snapshot {
	g.Lock()
	defer g.Unlock()
	return g.snapshot
}

func (g *GUI) over() bool {
	s := g.Snapshot()
	return s != nil && s.State == game.StateGameOver
}

// Done is closed once the GUI has stopped.
func (g *GUI) Done() <-chan struct{} {
	return g.done
}

// SetScreen replaces the terminal, mostly with a simulation screen in tests.
func (g *GUI) SetScreen(s tcell.Screen) {
	g.App.SetScreen(s)
}

// Run blocks until the application stops.
func (g *GUI) Run() error {
	go g.handleDraw()

	err := g.App.Run()
	g.Stop()

	return err
}

func (g *GUI) Stop() {
	g.stopOnce.Do(func() {
		close(g.done)
		g.App.Stop()
	})
}

func (g *GUI) handleDraw() {
	for {
		select {
		case <-g.draw:
			g.App.QueueUpdateDraw(func() {})
		case <-g.done:
			return
		}
	}
}

func (g *GUI) drawBoard(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	s := g.Snapshot()
	if s == nil {
		DrawMsgLabel(screen, x, y, "Starting...", g.Theme)
		return x, y, width, height
	}

	if w, h := Size(s.W, s.H); width < w || height < h {
		DrawMsgLabel(screen, x, y, "Terminal too small", g.Theme)
		return x, y, width, height
	}

	Render(screen, x, y, s, g.Theme)

	return x, y, width, height
}
