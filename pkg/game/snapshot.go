package game

import (
	"time"

	"github.com/qnkhuat/termtris/pkg/mino"
)

// Snapshot is a read-only copy of the game handed to a Sink.
type Snapshot struct {
	W, H, B int
	Blocks  []mino.Block // Locked blocks, row-major, buffer rows first

	Piece      []mino.Point
	PieceBlock mino.Block
	Ghost      []mino.Point

	Next     mino.Kind
	Name     string
	Score    int
	Lines    int
	Level    int
	Interval time.Duration
	State    State
	Danger   bool
}

// Block resolves the block shown at (row, col): the falling piece first,
// then its ghost, then the locked matrix. Out of bounds cells are empty.
func (s *Snapshot) Block(row int, col int) mino.Block {
	if row < 0 || row >= s.H+s.B || col < 0 || col >= s.W {
		return mino.BlockNone
	}

	p := mino.Point{Row: row, Col: col}
	for _, c := range s.Piece {
		if c == p {
			return s.PieceBlock
		}
	}

	b := s.Blocks[mino.I(row, col, s.W)]
	if b == mino.BlockNone {
		for _, c := range s.Ghost {
			if c == p {
				return s.PieceBlock.Ghost()
			}
		}
	}

	return b
}

// Sink receives a snapshot once per loop pass that changed the game. Render
// is called from the loop goroutine and must not block.
type Sink interface {
	Render(s *Snapshot)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(s *Snapshot)

func (f SinkFunc) Render(s *Snapshot) {
	f(s)
}
