package mino

// Block is the content of a single matrix cell: empty, or a color tag.
type Block int

const (
	BlockNone Block = iota
	BlockGarbage
	BlockGhostBlue
	BlockGhostCyan
	BlockGhostRed
	BlockGhostYellow
	BlockGhostMagenta
	BlockGhostGreen
	BlockGhostOrange
	BlockSolidBlue
	BlockSolidCyan
	BlockSolidRed
	BlockSolidYellow
	BlockSolidMagenta
	BlockSolidGreen
	BlockSolidOrange
)

const ghostShift = BlockSolidBlue - BlockGhostBlue

func (b Block) String() string {
	return string(b.Rune())
}

// Rune is the character used by plain text dumps of the matrix.
func (b Block) Rune() rune {
	switch {
	case b == BlockNone:
		return ' '
	case b.Solid():
		return '█'
	case b.IsGhost():
		return '▓'
	default:
		return '?'
	}
}

// Solid reports whether b may be written into the matrix.
func (b Block) Solid() bool {
	return b == BlockGarbage || (b >= BlockSolidBlue && b <= BlockSolidOrange)
}

func (b Block) IsGhost() bool {
	return b >= BlockGhostBlue && b <= BlockGhostOrange
}

// Ghost returns the landing preview variant of a colored solid block.
// Garbage and empty blocks are returned unchanged.
func (b Block) Ghost() Block {
	if b >= BlockSolidBlue && b <= BlockSolidOrange {
		return b - ghostShift
	}

	return b
}
