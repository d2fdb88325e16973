package mino

// Block is the value held by a matrix cell. It doubles as the shape tag of a piece.
type Block int

const (
	BlockNone Block = iota
	BlockI
	BlockO
	BlockT
	BlockS
	BlockZ
	BlockJ
	BlockL
)

// AllBlocks lists every shape tag a piece can take, excluding BlockNone.
var AllBlocks = []Block{BlockI, BlockO, BlockT, BlockS, BlockZ, BlockJ, BlockL}

func (b Block) String() string {
	switch b {
	case BlockNone:
		return "None"
	case BlockI:
		return "I"
	case BlockO:
		return "O"
	case BlockT:
		return "T"
	case BlockS:
		return "S"
	case BlockZ:
		return "Z"
	case BlockJ:
		return "J"
	case BlockL:
		return "L"
	default:
		return "?"
	}
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockI, BlockO, BlockT, BlockS, BlockZ, BlockJ, BlockL:
		return '█'
	default:
		return '?'
	}
}
