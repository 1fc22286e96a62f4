package mino

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

var ErrOutOfBounds = errors.New("position out of bounds")

// Matrix is the playfield. It holds B hidden buffer rows on top of H visible
// rows, W cells wide. Row 0 is the top buffer row (or the top visible row
// when B is 0). Only locked blocks live here; the falling piece is an
// overlay owned by the caller.
type Matrix struct {
	W int // Width
	H int // Height
	B int // Buffer height

	M []Block
}

func I(row int, col int, w int) int {
	return (row * w) + col
}

func NewMatrix(w int, h int, b int) *Matrix {
	if w <= 0 || h <= 0 || b < 0 {
		panic(fmt.Sprintf("invalid matrix size %dx%d+%d", w, h, b))
	}

	return &Matrix{W: w, H: h, B: b, M: make([]Block, w*(h+b))}
}

// Rows returns the total number of rows including the buffer.
func (m *Matrix) Rows() int {
	return m.H + m.B
}

func (m *Matrix) InBounds(row int, col int) bool {
	return col >= 0 && col < m.W && row >= 0 && row < m.H+m.B
}

func (m *Matrix) Block(row int, col int) (Block, error) {
	if !m.InBounds(row, col) {
		return BlockNone, fmt.Errorf("block at (%d,%d): %w", row, col, ErrOutOfBounds)
	}

	return m.M[I(row, col, m.W)], nil
}

func (m *Matrix) IsOccupied(row int, col int) (bool, error) {
	b, err := m.Block(row, col)
	if err != nil {
		return false, err
	}

	return b != BlockNone, nil
}

// CanPlace reports whether every cell is inside the matrix and empty.
func (m *Matrix) CanPlace(cells []Point) bool {
	for _, p := range cells {
		if !m.InBounds(p.Row, p.Col) || m.M[I(p.Row, p.Col, m.W)] != BlockNone {
			return false
		}
	}

	return true
}

// Lock writes cells permanently. Callers must have checked CanPlace; a
// collision or out of bounds cell here is a bug and panics.
func (m *Matrix) Lock(cells []Point, b Block) {
	if !b.Solid() {
		panic(fmt.Sprintf("failed to lock cells %v: block %d is not solid", cells, b))
	}

	for _, p := range cells {
		if !m.InBounds(p.Row, p.Col) {
			panic(fmt.Sprintf("failed to lock cells %v: point %s out of bounds", cells, p))
		}

		if m.M[I(p.Row, p.Col, m.W)] != BlockNone {
			panic(fmt.Sprintf("failed to lock cells %v: point %s already contains %d", cells, p, m.M[I(p.Row, p.Col, m.W)]))
		}
	}

	for _, p := range cells {
		m.M[I(p.Row, p.Col, m.W)] = b
	}
}

func (m *Matrix) LineFilled(row int) bool {
	for col := 0; col < m.W; col++ {
		if m.M[I(row, col, m.W)] == BlockNone {
			return false
		}
	}

	return true
}

// ClearFullRows removes every full row in one pass. The remaining rows keep
// their order and settle at the bottom; the rows exposed at the top are
// empty. The returned indices refer to rows before the clear, ascending.
func (m *Matrix) ClearFullRows() (int, []int) {
	var cleared []int

	rows := m.Rows()
	for row := 0; row < rows; row++ {
		if m.LineFilled(row) {
			cleared = append(cleared, row)
		}
	}

	if len(cleared) == 0 {
		return 0, nil
	}

	dst := rows - 1
	next := len(cleared) - 1
	for src := rows - 1; src >= 0; src-- {
		if next >= 0 && cleared[next] == src {
			next--
			continue
		}

		if dst != src {
			copy(m.M[I(dst, 0, m.W):I(dst+1, 0, m.W)], m.M[I(src, 0, m.W):I(src+1, 0, m.W)])
		}
		dst--
	}

	for row := dst; row >= 0; row-- {
		for col := 0; col < m.W; col++ {
			m.M[I(row, col, m.W)] = BlockNone
		}
	}

	return len(cleared), cleared
}

// SpawnTop is the row new pieces enter on: the last buffer row, or the top
// visible row when there is no buffer.
func (m *Matrix) SpawnTop() int {
	if m.B == 0 {
		return 0
	}

	return m.B - 1
}

// IsTopOccupied reports whether anything is locked in the spawn zone: the
// buffer rows, or the top row when there is no buffer.
func (m *Matrix) IsTopOccupied() bool {
	rows := m.B
	if rows == 0 {
		rows = 1
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < m.W; col++ {
			if m.M[I(row, col, m.W)] != BlockNone {
				return true
			}
		}
	}

	return false
}

// SetBlock writes a single block, refusing out of bounds or occupied cells.
func (m *Matrix) SetBlock(row int, col int, block Block) bool {
	if !m.InBounds(row, col) || !block.Solid() {
		return false
	}

	index := I(row, col, m.W)
	if m.M[index] != BlockNone {
		return false
	}

	m.M[index] = block

	return true
}

// Prefill fills cells with garbage from a comma separated list of x,y pairs.
// x is the column and y counts visible rows up from the bottom, starting at 0.
func (m *Matrix) Prefill(cells string) error {
	if strings.TrimSpace(cells) == "" {
		return nil
	}

	tokens := strings.Split(cells, ",")
	if len(tokens)%2 != 0 {
		return fmt.Errorf("failed to parse matrix %q: odd number of coordinates", cells)
	}

	var x int
	for i := range tokens {
		token, err := strconv.Atoi(strings.TrimSpace(tokens[i]))
		if err != nil {
			return fmt.Errorf("failed to parse matrix on token #%d: %w", i, err)
		}

		if i%2 == 0 {
			x = token
			continue
		}

		row := m.Rows() - 1 - token
		if !m.InBounds(row, x) || row < m.B {
			return fmt.Errorf("failed to prefill %d,%d: %w", x, token, ErrOutOfBounds)
		}

		m.SetBlock(row, x, BlockGarbage)
	}

	return nil
}

func (m *Matrix) Clear() {
	for i := range m.M {
		m.M[i] = BlockNone
	}
}

// Blocks returns a copy of the cells in row-major order.
func (m *Matrix) Blocks() []Block {
	newM := make([]Block, len(m.M))
	copy(newM, m.M)

	return newM
}

// Render dumps the visible rows, top first, using '.' for empty cells.
func (m *Matrix) Render() string {
	var b strings.Builder

	for row := m.B; row < m.Rows(); row++ {
		if row > m.B {
			b.WriteRune('\n')
		}

		for col := 0; col < m.W; col++ {
			block := m.M[I(row, col, m.W)]
			if block == BlockNone {
				b.WriteRune('.')
			} else {
				b.WriteRune(block.Rune())
			}
		}
	}

	return b.String()
}
