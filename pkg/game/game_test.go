package game

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/mino"
)

func newGame(t *testing.T, rules Rules) *Game {
	t.Helper()

	g, err := NewGame(rules, 1)
	require.NoError(t, err)
	return g
}

// withPiece replaces the falling piece with a freshly spawned k.
func withPiece(t *testing.T, g *Game, k mino.Kind) {
	t.Helper()

	p, err := g.Controller().Spawn(k)
	require.NoError(t, err)
	g.Piece = p
}

func blockSpawn(m *mino.Matrix) {
	for row := 0; row < 2; row++ {
		for col := 3; col <= 6; col++ {
			m.SetBlock(row, col, mino.BlockGarbage)
		}
	}
}

func TestNewGameInvalidRules(t *testing.T) {
	r := DefaultRules()
	r.Width = 1

	_, err := NewGame(r, 1)
	assert.Error(t, err)
}

func TestGameStart(t *testing.T) {
	g := newGame(t, DefaultRules())
	require.Equal(t, StateSpawning, g.State)

	next := g.Next
	g.Start()

	assert.Equal(t, StateFalling, g.State)
	assert.Equal(t, next, g.Piece.Kind)
	assert.Equal(t, 1, g.Pieces)
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, DefaultFallTime, g.Interval)

	p := g.Piece
	g.Start()
	assert.Equal(t, p, g.Piece)
	assert.Equal(t, 1, g.Pieces)
}

func TestGameSameSeedSameSequence(t *testing.T) {
	a, b := newGame(t, DefaultRules()), newGame(t, DefaultRules())
	a.Start()
	b.Start()

	for i := 0; i < 20; i++ {
		require.Equal(t, a.Piece.Kind, b.Piece.Kind, "piece %d", i)
		a.Apply(event.CommandHardDrop)
		b.Apply(event.CommandHardDrop)
	}
}

func TestGameHardDropClearsBottomRow(t *testing.T) {
	g := newGame(t, DefaultRules())
	g.Start()
	withPiece(t, g, mino.KindI)

	for col := 0; col < g.Matrix.W; col++ {
		if col < 3 || col > 6 {
			require.True(t, g.Matrix.SetBlock(19, col, mino.BlockGarbage))
		}
	}

	require.True(t, g.Apply(event.CommandHardDrop))

	assert.Equal(t, 1, g.Lines)
	assert.Equal(t, 19*2+40, g.Score)
	assert.Equal(t, 2, g.Pieces)
	assert.Equal(t, StateFalling, g.State)
	assert.Equal(t, make([]mino.Block, g.Matrix.W*g.Matrix.H), g.Matrix.Blocks())
}

func TestGameLevelUp(t *testing.T) {
	r := DefaultRules()
	r.LinesPerLevel = 1

	g := newGame(t, r)
	g.Start()

	for col := 1; col < g.Matrix.W; col++ {
		require.True(t, g.Matrix.SetBlock(19, col, mino.BlockGarbage))
	}
	// A vertical I against the left wall completes the bottom row.
	g.Piece = mino.Piece{Kind: mino.KindI, Rotation: mino.RotationR, Point: mino.Point{Row: 0, Col: -2}}

	require.True(t, g.Apply(event.CommandHardDrop))

	assert.Equal(t, 1, g.Lines)
	assert.Equal(t, 2, g.Level)
	assert.Equal(t, r.Gravity.Interval(2), g.Interval)
	assert.Less(t, g.Interval, DefaultFallTime)
}

func TestGameSoftDropScores(t *testing.T) {
	g := newGame(t, DefaultRules())
	g.Start()

	row := g.Piece.Row
	require.True(t, g.Apply(event.CommandSoftDrop))
	assert.Equal(t, row+1, g.Piece.Row)
	assert.Equal(t, 1, g.Score)
}

func TestGameTickLocks(t *testing.T) {
	g := newGame(t, DefaultRules())
	g.Start()
	withPiece(t, g, mino.KindI)

	for i := 0; i < 19; i++ {
		require.True(t, g.Tick())
		require.Equal(t, 1, g.Pieces)
	}

	require.True(t, g.Tick())
	assert.Equal(t, 2, g.Pieces)
	assert.Equal(t, "...████...", lastRows(g.Matrix, 1))
	assert.Zero(t, g.Score)
}

func TestGameMoves(t *testing.T) {
	g := newGame(t, DefaultRules())
	g.Start()
	withPiece(t, g, mino.KindT)

	p := g.Piece
	require.True(t, g.Apply(event.CommandMoveLeft))
	assert.Equal(t, p.Col-1, g.Piece.Col)
	require.True(t, g.Apply(event.CommandMoveRight))
	assert.Equal(t, p, g.Piece)

	require.True(t, g.Apply(event.CommandRotateCW))
	assert.Equal(t, mino.RotationR, g.Piece.Rotation)
	require.True(t, g.Apply(event.CommandRotateCCW))
	assert.Equal(t, mino.Rotation0, g.Piece.Rotation)

	assert.False(t, g.Apply(event.CommandQuit))
	assert.False(t, g.Apply(event.CommandUnknown))
	assert.Equal(t, p, g.Piece)
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	var buf bytes.Buffer

	g := newGame(t, DefaultRules())
	g.Logger = log.New(&buf, "", 0)
	blockSpawn(g.Matrix)

	g.Start()

	assert.True(t, g.Over())
	assert.Equal(t, StateGameOver, g.State)
	assert.Zero(t, g.Pieces)
	assert.Contains(t, buf.String(), "Game over")

	blocks := g.Matrix.Blocks()
	for _, c := range []event.Command{event.CommandMoveLeft, event.CommandHardDrop, event.CommandRotateCW} {
		assert.False(t, g.Apply(c))
	}
	assert.False(t, g.Tick())
	assert.Equal(t, blocks, g.Matrix.Blocks())

	s := g.Snapshot()
	assert.Equal(t, StateGameOver, s.State)
	assert.Empty(t, s.Piece)
	assert.True(t, s.Danger)
}

func TestGameOverAfterStack(t *testing.T) {
	g := newGame(t, DefaultRules())
	g.Start()

	for i := 0; i < 100 && !g.Over(); i++ {
		require.True(t, g.Apply(event.CommandHardDrop))
	}

	assert.True(t, g.Over())
}

func TestSnapshot(t *testing.T) {
	g := newGame(t, DefaultRules())
	g.Name = "tester"
	g.Start()
	withPiece(t, g, mino.KindO)

	s := g.Snapshot()
	assert.Equal(t, "tester", s.Name)
	assert.Equal(t, g.Next, s.Next)
	assert.False(t, s.Danger)
	require.Len(t, s.Piece, 4)

	for _, c := range s.Piece {
		assert.Equal(t, mino.BlockSolidYellow, s.Block(c.Row, c.Col))
	}
	for _, c := range s.Ghost {
		assert.Equal(t, mino.BlockGhostYellow, s.Block(c.Row, c.Col))
		assert.GreaterOrEqual(t, c.Row, 18)
	}
	assert.Equal(t, mino.BlockNone, s.Block(-1, 0))
	assert.Equal(t, mino.BlockNone, s.Block(10, 10))

	// Snapshots do not alias the matrix.
	s.Blocks[0] = mino.BlockGarbage
	b, err := g.Matrix.Block(0, 0)
	require.NoError(t, err)
	assert.Equal(t, mino.BlockNone, b)
}
