package mino

import "fmt"

const (
	Rotation0 = 0
	RotationR = 1
	Rotation2 = 2
	RotationL = 3

	RotationStates = 4
)

var rotationNames = [RotationStates]string{
	Rotation0: "0",
	RotationR: "R",
	Rotation2: "2",
	RotationL: "L",
}

// AllOffsets holds the spawn orientation of every shape. Offsets are relative
// to the pivot with Y increasing downward, so a cell lands at
// (pivot.X+offset.X, pivot.Y-offset.Y) in the matrix.
var AllOffsets = map[Block]Mino{
	BlockNone: {{0, 0}, {0, 0}, {0, 0}, {0, 0}},
	BlockI:    {{0, -1}, {0, 0}, {0, 1}, {0, 2}},
	BlockO:    {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	BlockT:    {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	BlockS:    {{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
	BlockZ:    {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	BlockJ:    {{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
	BlockL:    {{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
}

// Piece is a shape placed at a pivot. Rotating returns a new piece; the
// original is never modified.
type Piece struct {
	Point
	Block    Block
	Mino     Mino
	Rotation int
}

func NewPiece(b Block, loc Point) *Piece {
	offsets, ok := AllOffsets[b]
	if !ok {
		b = BlockNone
		offsets = AllOffsets[BlockNone]
	}

	m := make(Mino, len(offsets))
	copy(m, offsets)

	return &Piece{Point: loc, Block: b, Mino: m}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s@%s %s", p.Block, p.Point, rotationNames[p.Rotation])
}

// RotateRight maps every offset (x, y) to (y, -x).
func (p *Piece) RotateRight() *Piece {
	return p.rotate(Point.Rotate90, 1)
}

// RotateLeft maps every offset (x, y) to (-y, x).
func (p *Piece) RotateLeft() *Piece {
	return p.rotate(Point.Rotate270, RotationStates-1)
}

func (p *Piece) rotate(f func(Point) Point, step int) *Piece {
	np := &Piece{Point: p.Point, Block: p.Block, Mino: make(Mino, len(p.Mino)), Rotation: p.Rotation}
	if p.Block == BlockO || p.Block == BlockNone {
		copy(np.Mino, p.Mino)
		return np
	}

	for i := range p.Mino {
		np.Mino[i] = f(p.Mino[i])
	}
	np.Rotation = (p.Rotation + step) % RotationStates

	return np
}

// At returns a copy of the piece moved to loc.
func (p *Piece) At(loc Point) *Piece {
	np := *p
	np.Mino = make(Mino, len(p.Mino))
	copy(np.Mino, p.Mino)
	np.Point = loc

	return &np
}

func (p *Piece) Offset(i int) Point {
	return p.Mino[i]
}

func (p *Piece) MinY() int {
	miny := p.Mino[0].Y
	for _, o := range p.Mino[1:] {
		if o.Y < miny {
			miny = o.Y
		}
	}

	return miny
}

// Cells returns the absolute matrix positions the piece covers when its pivot is at loc.
func (p *Piece) Cells(loc Point) Mino {
	cells := make(Mino, len(p.Mino))
	for i, o := range p.Mino {
		cells[i] = Point{loc.X + o.X, loc.Y - o.Y}
	}

	return cells
}
