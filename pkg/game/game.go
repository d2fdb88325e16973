package game

import (
	"sync"
	"time"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	CommandQueueSize = 10
	LogQueueSize     = 10
)

type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ScoreStore persists the best score. Load returns a negative value when no
// score has been recorded.
type ScoreStore interface {
	Load() int
	Save(score int) error
}

type PieceSource interface {
	Take() mino.Block
}

type TickSource interface {
	Start()
	Stop()
	SetInterval(d time.Duration)
}

type Config struct {
	Width  int
	Height int

	// Seed feeds the default piece source. Ignored when Pieces is set.
	Seed   int64
	Pieces PieceSource

	Store ScoreStore
	Clock TickSource

	Logger   chan<- string
	LogLevel int

	Draw  chan<- event.DrawObject
	Event chan<- interface{}
}

// Game is a single session. All exported methods are safe to call from the
// clock and input goroutines at the same time.
type Game struct {
	LogLevel int

	matrix *mino.Matrix
	piece  *mino.Piece

	state       State
	score       int
	best        int
	fallTime    time.Duration
	fallingDone bool

	pieces PieceSource
	store  ScoreStore
	clock  TickSource

	logger chan<- string
	draw   chan<- event.DrawObject
	event  chan<- interface{}

	*sync.Mutex
}

type nopClock struct{}

func (nopClock) Start()                    {}
func (nopClock) Stop()                     {}
func (nopClock) SetInterval(time.Duration) {}

type nopStore struct{}

func (nopStore) Load() int      { return -1 }
func (nopStore) Save(int) error { return nil }

func NewGame(cfg Config) *Game {
	if cfg.Width <= 0 {
		cfg.Width = mino.DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = mino.DefaultHeight
	}
	if cfg.Pieces == nil {
		cfg.Pieces = mino.NewRandomizer(cfg.Seed)
	}
	if cfg.Store == nil {
		cfg.Store = nopStore{}
	}
	if cfg.Clock == nil {
		cfg.Clock = nopClock{}
	}

	g := &Game{
		LogLevel: cfg.LogLevel,
		matrix:   mino.NewMatrix(cfg.Width, cfg.Height),
		fallTime: FallTime(0),
		pieces:   cfg.Pieces,
		store:    cfg.Store,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		draw:     cfg.Draw,
		event:    cfg.Event,
		Mutex:    new(sync.Mutex),
	}

	g.best = g.store.Load()
	g.clock.SetInterval(g.fallTime)

	return g
}

// Start begins a new session. It does nothing while the game is paused.
func (g *Game) Start() {
	g.Lock()
	defer g.Unlock()

	g.StartL()
}

func (g *Game) StartL() {
	if g.state == StatePaused {
		return
	}

	g.score = 0
	g.fallingDone = false
	g.piece = nil
	g.matrix.Reset()
	g.setFallTimeL()

	g.state = StateRunning
	g.Log(LogStandard, "Starting game")

	if !g.spawnL() {
		return
	}

	g.clock.Start()
	g.redraw(event.DrawAll)
}

// Tick lowers the active piece by one row, or spawns the next piece when the
// previous landing cleared rows.
func (g *Game) Tick() {
	g.Lock()
	defer g.Unlock()

	if g.state != StateRunning {
		return
	}

	if g.fallingDone {
		g.fallingDone = false
		g.spawnL()
		return
	} else if g.piece == nil {
		return
	}

	g.lowerPieceL()
}

func (g *Game) ProcessAction(a event.GameAction) {
	g.Lock()
	defer g.Unlock()

	if (g.state != StateRunning && g.state != StatePaused) || g.piece == nil {
		return
	}

	if a == event.ActionTogglePause {
		g.togglePauseL()
		return
	} else if g.state == StatePaused {
		return
	}

	g.Log(LogVerbose, "Action ", a)

	switch a {
	case event.ActionMoveLeft:
		g.movePieceL(-1, 0)
	case event.ActionMoveRight:
		g.movePieceL(1, 0)
	case event.ActionRotateCW:
		g.rotatePieceL(g.piece.RotateRight())
	case event.ActionRotateCCW:
		g.rotatePieceL(g.piece.RotateLeft())
	case event.ActionSoftDrop:
		g.lowerPieceL()
	case event.ActionHardDrop:
		for g.movePieceL(0, -1) {
		}
		g.landPieceL()
	}
}

func (g *Game) togglePauseL() {
	if g.state == StatePaused {
		g.state = StateRunning
		g.clock.Start()
	} else {
		g.state = StatePaused
		g.clock.Stop()
	}

	g.redraw(event.DrawAll)
}

func (g *Game) movePieceL(x int, y int) bool {
	loc := mino.Point{X: g.piece.X + x, Y: g.piece.Y + y}
	if !g.matrix.CanPlace(g.piece, loc) {
		return false
	}

	g.piece.Point = loc

	g.redraw(event.DrawMatrix)
	return true
}

func (g *Game) rotatePieceL(rotated *mino.Piece) bool {
	if !g.matrix.CanPlace(rotated, rotated.Point) {
		return false
	}

	g.piece = rotated

	g.redraw(event.DrawMatrix)
	return true
}

// lowerPieceL lowers the active piece by one row when possible, otherwise the
// piece is landed.
func (g *Game) lowerPieceL() {
	if !g.movePieceL(0, -1) {
		g.landPieceL()
	}
}

func (g *Game) landPieceL() {
	p := g.piece

	err := g.matrix.Commit(p, p.Point)
	if err != nil {
		g.Log(LogStandard, err)
	}

	cleared := g.matrix.ClearFullRows()
	if cleared == 0 {
		g.spawnL()
		return
	}

	g.score += cleared
	g.piece = nil
	g.fallingDone = true
	g.setFallTimeL()

	level := Level(g.score)
	g.Logf(LogDebug, "Cleared %d rows - score %d level %d", cleared, g.score, level)

	g.emit(&event.ScoreEvent{Lines: cleared, Score: g.score, Level: level})
	g.redraw(event.DrawAll)
}

func (g *Game) spawnL() bool {
	p := mino.NewPiece(g.pieces.Take(), mino.Point{})
	loc := mino.Point{X: g.matrix.W/2 + 1, Y: g.matrix.H - 1 + p.MinY()}

	if !g.matrix.CanPlace(p, loc) {
		g.setGameOverL()
		return false
	}

	g.piece = p.At(loc)
	g.Logf(LogVerbose, "Spawned %s covering %s", g.piece, g.piece.Cells(g.piece.Point))

	g.redraw(event.DrawMatrix)
	return true
}

func (g *Game) setGameOverL() {
	g.piece = nil
	g.fallingDone = false
	g.state = StateGameOver
	g.clock.Stop()

	previous := g.store.Load()
	newBest := g.score > previous
	if newBest {
		err := g.store.Save(g.score)
		if err != nil {
			g.Log(LogStandard, err)
		}

		g.best = g.score
	} else {
		g.best = previous
	}

	g.Logf(LogStandard, "Game over - score %d best %d", g.score, g.best)

	g.emit(&event.GameOverEvent{Score: g.score, Best: previous, NewBest: newBest})
	g.redraw(event.DrawAll)
}

func (g *Game) setFallTimeL() {
	g.fallTime = FallTime(Level(g.score))
	g.clock.SetInterval(g.fallTime)
}

func (g *Game) redraw(o event.DrawObject) {
	if g.draw == nil {
		return
	}

	select {
	case g.draw <- o:
	default:
	}
}

func (g *Game) emit(e interface{}) {
	if g.event == nil {
		return
	}

	select {
	case g.event <- e:
	default:
	}
}
