package mino

import (
	"fmt"
	"strings"
)

const (
	Rotation0 = 0
	RotationR = 1
	Rotation2 = 2
	RotationL = 3

	RotationStates = 4
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL

	NumKinds = 7
)

// Kinds lists every kind in catalog order.
var Kinds = [NumKinds]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

var kindNames = [NumKinds]string{"I", "O", "T", "S", "Z", "J", "L"}

var kindBlocks = [NumKinds]Block{
	KindI: BlockSolidCyan,
	KindO: BlockSolidYellow,
	KindT: BlockSolidMagenta,
	KindS: BlockSolidGreen,
	KindZ: BlockSolidRed,
	KindJ: BlockSolidBlue,
	KindL: BlockSolidOrange,
}

// rotationOffsets holds the occupied cells of every rotation state as
// (row, col) offsets from the piece anchor. States are ordered 0, R, 2, L so
// advancing the index rotates clockwise.
var rotationOffsets = [NumKinds][RotationStates][4]Point{
	KindI: {
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	},
	KindO: {
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
	},
	KindT: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	KindS: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	KindZ: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	KindJ: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
	KindL: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
}

func (k Kind) Valid() bool {
	return k >= 0 && k < NumKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Block returns the color tag written into the matrix when k locks.
func (k Kind) Block() Block {
	if !k.Valid() {
		return BlockGarbage
	}

	return kindBlocks[k]
}

// Offsets returns the cells of rotation state r relative to the anchor. r is
// taken modulo RotationStates.
func (k Kind) Offsets(r int) [4]Point {
	return rotationOffsets[k][NormalizeRotation(r)]
}

// Bounds returns the smallest row and column offsets and the width and
// height of rotation state r.
func (k Kind) Bounds(r int) (minRow, minCol, width, height int) {
	o := k.Offsets(r)

	minRow, minCol = o[0].Row, o[0].Col
	maxRow, maxCol := minRow, minCol
	for _, p := range o[1:] {
		minRow = min(minRow, p.Row)
		minCol = min(minCol, p.Col)
		maxRow = max(maxRow, p.Row)
		maxCol = max(maxCol, p.Col)
	}

	return minRow, minCol, maxCol - minCol + 1, maxRow - minRow + 1
}

// Render draws rotation state r as rows of 'X' and '.'.
func (k Kind) Render(r int) string {
	minRow, minCol, w, h := k.Bounds(r)

	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(".", w))
	}
	for _, p := range k.Offsets(r) {
		grid[p.Row-minRow][p.Col-minCol] = 'X'
	}

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteRune('\n')
		}
		b.WriteString(string(row))
	}

	return b.String()
}

func NormalizeRotation(r int) int {
	r %= RotationStates
	if r < 0 {
		r += RotationStates
	}

	return r
}

func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("unknown piece kind %q", s)
}
