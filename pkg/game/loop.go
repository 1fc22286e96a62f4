package game

import (
	"context"
	"time"

	"github.com/qnkhuat/termtris/pkg/event"
)

// Loop drives a Game from a command channel and the gravity clock, handing a
// snapshot to Sink after every pass that changed something. Loop and its
// Game belong to the goroutine calling Pass or Run.
type Loop struct {
	Game  *Game
	Sink  Sink
	Clock *Clock

	commands <-chan event.Command

	started bool
	dirty   bool
	done    bool
}

func NewLoop(g *Game, src event.Source, sink Sink, tp TimeProvider) *Loop {
	if sink == nil {
		sink = SinkFunc(func(*Snapshot) {})
	}

	return &Loop{
		Game:     g,
		Sink:     sink,
		Clock:    NewClock(tp, g.Interval),
		commands: src.Commands(),
	}
}

// Done reports whether the loop has stopped: the player quit, the input
// closed or the game is over.
func (l *Loop) Done() bool {
	return l.done
}

// Pass runs one scheduling pass and reports whether the loop should go on.
// Pending commands are applied in arrival order, then gravity runs if its
// deadline passed, then the sink gets one snapshot if anything changed.
func (l *Loop) Pass() bool {
	if !l.started {
		l.start()
	}

DRAIN:
	for !l.done {
		select {
		case c, ok := <-l.commands:
			l.handle(c, ok)
		default:
			break DRAIN
		}
	}

	if !l.done && l.Clock.Due() {
		l.tick()
	}

	l.flush()

	return !l.done
}

// Run repeats Pass until the loop is done or ctx is cancelled. Between
// passes it sleeps until the gravity deadline or the next command.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for l.Pass() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(l.Clock.Remaining())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		case c, ok := <-l.commands:
			l.handle(c, ok)
		}
	}

	return nil
}

func (l *Loop) start() {
	l.started = true

	l.Game.Start()
	l.Clock.Interval = l.Game.Interval
	l.Clock.Reset()

	l.dirty = true
	if l.Game.Over() {
		l.done = true
	}
}

func (l *Loop) handle(c event.Command, ok bool) {
	if l.done {
		return
	}

	if !ok || c == event.CommandQuit {
		if ok {
			l.Game.Logf(LogDebug, "Quit")
		} else {
			l.Game.Logf(LogDebug, "Input closed")
		}
		l.done = true
		return
	}

	pieces := l.Game.Pieces
	if !l.Game.Apply(c) {
		return
	}
	l.dirty = true

	if l.Game.Pieces != pieces || c == event.CommandSoftDrop {
		l.resetGravity()
	}

	if l.Game.Over() {
		l.done = true
	}
}

func (l *Loop) tick() {
	if l.Game.Tick() {
		l.dirty = true
	}

	// A lock during the tick may have changed the level.
	l.resetGravity()

	if l.Game.Over() {
		l.done = true
	}
}

func (l *Loop) resetGravity() {
	l.Clock.Interval = l.Game.Interval
	l.Clock.Reset()
}

func (l *Loop) flush() {
	if !l.dirty {
		return
	}
	l.dirty = false

	l.Sink.Render(l.Game.Snapshot())
}
