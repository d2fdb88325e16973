package game

import (
	"time"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

func (g *Game) Size() (int, int) {
	g.Lock()
	defer g.Unlock()

	return g.matrix.W, g.matrix.H
}

// EachBlock calls f for every settled block. f must not call back into g.
func (g *Game) EachBlock(f func(x int, y int, b mino.Block)) {
	g.Lock()
	defer g.Unlock()

	g.matrix.EachBlock(f)
}

// Snapshot is a consistent copy of everything a frame draws.
type Snapshot struct {
	W, H int

	Blocks []mino.Cell
	Piece  []mino.Cell
	Ghost  []mino.Cell

	State State
	Score int
	Level int
	Best  int
}

// Snapshot reads the whole session under one lock, so a frame never mixes
// the state before and after a tick.
func (g *Game) Snapshot() *Snapshot {
	g.Lock()
	defer g.Unlock()

	s := &Snapshot{
		W:     g.matrix.W,
		H:     g.matrix.H,
		Piece: g.pieceCellsL(),
		Ghost: g.ghostCellsL(),
		State: g.state,
		Score: g.score,
		Level: Level(g.score),
		Best:  g.best,
	}

	g.matrix.EachBlock(func(x int, y int, b mino.Block) {
		s.Blocks = append(s.Blocks, mino.Cell{Point: mino.Point{X: x, Y: y}, Block: b})
	})

	return s
}

// PieceCells returns the cells of the active piece, or nil when there is none.
func (g *Game) PieceCells() []mino.Cell {
	g.Lock()
	defer g.Unlock()

	return g.pieceCellsL()
}

func (g *Game) pieceCellsL() []mino.Cell {
	if g.piece == nil {
		return nil
	}

	return cellsOf(g.piece, g.piece.Point)
}

// GhostCells returns where the active piece would land after a hard drop.
func (g *Game) GhostCells() []mino.Cell {
	g.Lock()
	defer g.Unlock()

	return g.ghostCellsL()
}

func (g *Game) ghostCellsL() []mino.Cell {
	p := g.piece
	if p == nil {
		return nil
	}

	loc := p.Point
	for g.matrix.CanPlace(p, mino.Point{X: loc.X, Y: loc.Y - 1}) {
		loc.Y--
	}

	return cellsOf(p, loc)
}

func cellsOf(p *mino.Piece, loc mino.Point) []mino.Cell {
	points := p.Cells(loc)

	cells := make([]mino.Cell, len(points))
	for i := range points {
		cells[i] = mino.Cell{Point: points[i], Block: p.Block}
	}

	return cells
}

func (g *Game) State() State {
	g.Lock()
	defer g.Unlock()

	return g.state
}

func (g *Game) Paused() bool {
	return g.State() == StatePaused
}

func (g *Game) GameOver() bool {
	return g.State() == StateGameOver
}

func (g *Game) Score() int {
	g.Lock()
	defer g.Unlock()

	return g.score
}

func (g *Game) Level() int {
	g.Lock()
	defer g.Unlock()

	return Level(g.score)
}

// Best returns the best score known to the session, negative when none.
func (g *Game) Best() int {
	g.Lock()
	defer g.Unlock()

	return g.best
}

func (g *Game) FallTime() time.Duration {
	g.Lock()
	defer g.Unlock()

	return g.fallTime
}
