package mino

import (
	"fmt"
	"strings"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 22
)

// Matrix is the grid of settled blocks. Row 0 is the bottom row.
//
// A Matrix is not safe for concurrent use; the owning game serialises access.
type Matrix struct {
	W int // Width
	H int // Height

	M []Block
}

func I(x int, y int, w int) int {
	return (y * w) + x
}

func NewMatrix(w int, h int) *Matrix {
	return &Matrix{W: w, H: h, M: make([]Block, w*h)}
}

func (m *Matrix) inBounds(x int, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

// IsEmptyAt reports whether the cell is on the matrix and holds no block.
func (m *Matrix) IsEmptyAt(x int, y int) bool {
	if !m.inBounds(x, y) {
		return false
	}

	return m.M[I(x, y, m.W)] == BlockNone
}

// Block returns the block at x, y or BlockNone when out of bounds.
func (m *Matrix) Block(x int, y int) Block {
	if !m.inBounds(x, y) {
		return BlockNone
	}

	return m.M[I(x, y, m.W)]
}

// SetBlock places b in an empty cell.
func (m *Matrix) SetBlock(x int, y int, b Block) bool {
	if !m.IsEmptyAt(x, y) {
		return false
	}

	m.M[I(x, y, m.W)] = b
	return true
}

// CanPlace reports whether every cell of p with its pivot at loc is on the
// matrix and empty.
func (m *Matrix) CanPlace(p *Piece, loc Point) bool {
	for _, o := range p.Mino {
		if !m.IsEmptyAt(loc.X+o.X, loc.Y-o.Y) {
			return false
		}
	}

	return true
}

// Commit writes the cells of p with its pivot at loc into the matrix.
// Nothing is written when any cell is out of bounds or occupied.
func (m *Matrix) Commit(p *Piece, loc Point) error {
	cells := p.Cells(loc)
	for _, c := range cells {
		if !m.inBounds(c.X, c.Y) {
			return fmt.Errorf("failed to commit %s at %s: point %s out of bounds", p.Block, loc, c)
		} else if b := m.M[I(c.X, c.Y, m.W)]; b != BlockNone {
			return fmt.Errorf("failed to commit %s at %s: point %s already contains %s", p.Block, loc, c, b)
		}
	}

	for _, c := range cells {
		m.M[I(c.X, c.Y, m.W)] = p.Block
	}

	return nil
}

func (m *Matrix) LineFilled(y int) bool {
	for x := 0; x < m.W; x++ {
		if m.M[I(x, y, m.W)] == BlockNone {
			return false
		}
	}

	return true
}

// ClearFullRows removes every filled row, shifting the rows above it down,
// and returns the number of rows removed.
func (m *Matrix) ClearFullRows() int {
	cleared := 0

	for y := 0; y < m.H; y++ {
		for {
			if !m.LineFilled(y) {
				break
			}

			copy(m.M[I(0, y, m.W):], m.M[I(0, y+1, m.W):])
			for x := 0; x < m.W; x++ {
				m.M[I(x, m.H-1, m.W)] = BlockNone
			}

			cleared++
		}
	}

	return cleared
}

func (m *Matrix) Reset() {
	for i := range m.M {
		m.M[i] = BlockNone
	}
}

// EachBlock calls f for every occupied cell, bottom row first.
func (m *Matrix) EachBlock(f func(x int, y int, b Block)) {
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if b := m.M[I(x, y, m.W)]; b != BlockNone {
				f(x, y, b)
			}
		}
	}
}

// Render draws the matrix as text, top row first.
func (m *Matrix) Render() string {
	var b strings.Builder

	for y := m.H - 1; y >= 0; y-- {
		for x := 0; x < m.W; x++ {
			b.WriteRune(m.Block(x, y).Rune())
		}

		if y == 0 {
			break
		}

		b.WriteRune('\n')
	}

	return b.String()
}
