package game

import (
	"errors"
	"fmt"

	"github.com/qnkhuat/termtris/pkg/mino"
)

var ErrSpawnBlocked = errors.New("spawn blocked")

// Controller applies moves and rotations of the falling piece against a
// matrix. It never writes to the matrix except when a piece locks.
type Controller struct {
	Matrix *mino.Matrix
	Kicks  []mino.Point
}

func NewController(m *mino.Matrix, kicks []mino.Point) *Controller {
	return &Controller{Matrix: m, Kicks: kicks}
}

// SpawnPoint returns the anchor that puts rotation 0 of k horizontally
// centred with its top cell on the spawn row.
func (c *Controller) SpawnPoint(k mino.Kind) mino.Point {
	minRow, minCol, w, _ := k.Bounds(mino.Rotation0)

	return mino.Point{
		Row: c.Matrix.SpawnTop() - minRow,
		Col: (c.Matrix.W-w)/2 - minCol,
	}
}

// Spawn places a new piece of kind k. When the spawn cells are taken the
// blocked piece is returned together with ErrSpawnBlocked.
func (c *Controller) Spawn(k mino.Kind) (mino.Piece, error) {
	p := mino.NewPiece(k, c.SpawnPoint(k))
	if !c.Matrix.CanPlace(p.Cells()) {
		return p, fmt.Errorf("failed to spawn %s at %s: %w", k, p.Point, ErrSpawnBlocked)
	}

	return p, nil
}

// TryMove returns p shifted by (dr, dc), or p and false when blocked.
func (c *Controller) TryMove(p mino.Piece, dr int, dc int) (mino.Piece, bool) {
	if dr == 0 && dc == 0 {
		return p, false
	}

	moved := p.Moved(dr, dc)
	if !c.Matrix.CanPlace(moved.Cells()) {
		return p, false
	}

	return moved, true
}

// TryRotate turns p a quarter in direction dir (mino.RotateCW or
// mino.RotateCCW) about its anchor. When that is blocked each kick offset is
// tried in order; with no kicks a blocked rotation is rejected.
func (c *Controller) TryRotate(p mino.Piece, dir int) (mino.Piece, bool) {
	if dir == 0 {
		return p, false
	}

	rotated := p.Rotated(dir)
	if c.Matrix.CanPlace(rotated.Cells()) {
		return rotated, true
	}

	for _, k := range c.Kicks {
		kicked := rotated.Moved(k.Row, k.Col)
		if c.Matrix.CanPlace(kicked.Cells()) {
			return kicked, true
		}
	}

	return p, false
}

// HardDrop returns the lowest position p can fall to.
func (c *Controller) HardDrop(p mino.Piece) mino.Piece {
	for i := 0; i < c.Matrix.Rows(); i++ {
		moved, ok := c.TryMove(p, 1, 0)
		if !ok {
			break
		}

		p = moved
	}

	return p
}

// SoftDropTick moves p down one row. When it cannot move, p is locked into
// the matrix where it is and true is returned.
func (c *Controller) SoftDropTick(p mino.Piece) (mino.Piece, bool) {
	if moved, ok := c.TryMove(p, 1, 0); ok {
		return moved, false
	}

	c.Lock(p)

	return p, true
}

// Lock writes p into the matrix.
func (c *Controller) Lock(p mino.Piece) {
	c.Matrix.Lock(p.Cells(), p.Block())
}

// Ghost returns the cells p would occupy after a hard drop.
func (c *Controller) Ghost(p mino.Piece) []mino.Point {
	return c.HardDrop(p).Cells()
}
