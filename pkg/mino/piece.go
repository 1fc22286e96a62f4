package mino

import "fmt"

const (
	RotateCW  = 1
	RotateCCW = -1
)

// Piece is the falling piece: a kind, a rotation state and an anchor in
// matrix coordinates. It is a value; moving or rotating returns a new Piece.
type Piece struct {
	Kind     Kind
	Rotation int
	Point
}

func NewPiece(k Kind, anchor Point) Piece {
	return Piece{Kind: k, Point: anchor}
}

func (p Piece) String() string {
	return fmt.Sprintf("%s/%d@%s", p.Kind, p.Rotation, p.Point)
}

// Cells returns the absolute cells occupied by the piece.
func (p Piece) Cells() []Point {
	o := p.Kind.Offsets(p.Rotation)

	cells := make([]Point, len(o))
	for i := range o {
		cells[i] = p.Point.Add(o[i])
	}

	return cells
}

func (p Piece) Moved(dr, dc int) Piece {
	p.Row += dr
	p.Col += dc

	return p
}

// Rotated advances the rotation index by dir quarter turns (positive is
// clockwise) at the same anchor.
func (p Piece) Rotated(dir int) Piece {
	p.Rotation = NormalizeRotation(p.Rotation + dir)

	return p
}

func (p Piece) Block() Block {
	return p.Kind.Block()
}
