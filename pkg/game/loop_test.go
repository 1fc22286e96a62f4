package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/termtris/pkg/event"
)

type recordingSink struct {
	snapshots []*Snapshot
}

func (s *recordingSink) Render(snap *Snapshot) {
	s.snapshots = append(s.snapshots, snap)
}

func (s *recordingSink) last() *Snapshot {
	return s.snapshots[len(s.snapshots)-1]
}

func newLoop(t *testing.T, src event.Source) (*Loop, *recordingSink, *MockTimeProvider) {
	t.Helper()

	sink := &recordingSink{}
	tp := NewMockTimeProvider(time.Unix(0, 0))

	return NewLoop(newGame(t, DefaultRules()), src, sink, tp), sink, tp
}

func TestLoopGravity(t *testing.T) {
	l, sink, tp := newLoop(t, make(event.ChanSource, event.CommandQueueSize))

	require.True(t, l.Pass())
	require.Len(t, sink.snapshots, 1)
	row := l.Game.Piece.Row

	require.True(t, l.Pass())
	assert.Len(t, sink.snapshots, 1)
	assert.Equal(t, row, l.Game.Piece.Row)

	tp.Advance(DefaultFallTime - time.Millisecond)
	require.True(t, l.Pass())
	assert.Equal(t, row, l.Game.Piece.Row)

	tp.Advance(time.Millisecond)
	require.True(t, l.Pass())
	assert.Equal(t, row+1, l.Game.Piece.Row)
	assert.Len(t, sink.snapshots, 2)
	assert.Equal(t, DefaultFallTime, l.Clock.Remaining())
}

func TestLoopCommandsBeforeGravity(t *testing.T) {
	src := make(event.ChanSource, event.CommandQueueSize)
	l, sink, tp := newLoop(t, src)
	require.True(t, l.Pass())

	p := l.Game.Piece
	src <- event.CommandMoveLeft
	src <- event.CommandMoveLeft
	src <- event.CommandMoveRight

	require.True(t, l.Pass())
	assert.Equal(t, p.Col-1, l.Game.Piece.Col)
	assert.Equal(t, p.Row, l.Game.Piece.Row)
	assert.Len(t, sink.snapshots, 2, "one render per pass")

	// A soft drop restarts the gravity interval.
	tp.Advance(DefaultFallTime - 50*time.Millisecond)
	src <- event.CommandSoftDrop
	require.True(t, l.Pass())
	assert.Equal(t, p.Row+1, l.Game.Piece.Row)

	tp.Advance(100 * time.Millisecond)
	require.True(t, l.Pass())
	assert.Equal(t, p.Row+1, l.Game.Piece.Row)
	assert.Len(t, sink.snapshots, 3)
}

func TestLoopHardDropRestartsGravity(t *testing.T) {
	src := make(event.ChanSource, event.CommandQueueSize)
	l, _, tp := newLoop(t, src)
	require.True(t, l.Pass())

	tp.Advance(DefaultFallTime - time.Millisecond)
	src <- event.CommandHardDrop
	require.True(t, l.Pass())
	require.Equal(t, 2, l.Game.Pieces)

	row := l.Game.Piece.Row
	tp.Advance(time.Millisecond)
	require.True(t, l.Pass())
	assert.Equal(t, row, l.Game.Piece.Row)
}

func TestLoopQuit(t *testing.T) {
	src := make(event.ChanSource, event.CommandQueueSize)
	l, _, _ := newLoop(t, src)
	require.True(t, l.Pass())

	src <- event.CommandQuit
	src <- event.CommandMoveLeft

	p := l.Game.Piece
	assert.False(t, l.Pass())
	assert.True(t, l.Done())
	assert.Equal(t, p, l.Game.Piece, "commands after quit are not applied")
	assert.Len(t, src, 1)
}

func TestLoopRunQuit(t *testing.T) {
	l, _, _ := newLoop(t, event.Script(event.CommandMoveLeft, event.CommandQuit))

	assert.NoError(t, l.Run(context.Background()))
	assert.True(t, l.Done())
}

func TestLoopRunInputClosed(t *testing.T) {
	l, sink, _ := newLoop(t, event.Script())

	assert.NoError(t, l.Run(context.Background()))
	assert.NotEmpty(t, sink.snapshots)
}

func TestLoopRunCancelled(t *testing.T) {
	l, _, _ := newLoop(t, make(event.ChanSource))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}

func TestLoopRunWaitsForCommand(t *testing.T) {
	src := make(event.ChanSource)
	l, sink, _ := newLoop(t, src)

	errs := make(chan error)
	go func() {
		errs <- l.Run(context.Background())
	}()

	src <- event.CommandRotateCW
	src <- event.CommandQuit

	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after quit")
	}

	assert.NotEmpty(t, sink.snapshots)
}

func TestLoopGameOverRendersOnce(t *testing.T) {
	src := make(event.ChanSource, event.CommandQueueSize)
	l, sink, tp := newLoop(t, src)
	blockSpawn(l.Game.Matrix)

	assert.False(t, l.Pass())
	require.Len(t, sink.snapshots, 1)
	assert.Equal(t, StateGameOver, sink.last().State)

	src <- event.CommandHardDrop
	tp.Advance(time.Hour)
	assert.False(t, l.Pass())
	assert.Len(t, sink.snapshots, 1)

	assert.NoError(t, l.Run(context.Background()))
	assert.Len(t, sink.snapshots, 1)
}

func TestLoopGameOverDuringPlay(t *testing.T) {
	src := make(event.ChanSource, 100)
	l, sink, _ := newLoop(t, src)
	require.True(t, l.Pass())

	for i := 0; i < 100; i++ {
		src <- event.CommandHardDrop
	}

	assert.False(t, l.Pass())
	assert.Equal(t, StateGameOver, sink.last().State)
	assert.Len(t, sink.snapshots, 2)
	assert.NotEmpty(t, src, "commands after game over stay queued")
}
