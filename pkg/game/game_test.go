package game

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

type fakeClock struct {
	started   bool
	intervals []time.Duration
}

func (c *fakeClock) Start()                      { c.started = true }
func (c *fakeClock) Stop()                       { c.started = false }
func (c *fakeClock) SetInterval(d time.Duration) { c.intervals = append(c.intervals, d) }

func (c *fakeClock) last() time.Duration {
	if len(c.intervals) == 0 {
		return 0
	}
	return c.intervals[len(c.intervals)-1]
}

type fakeStore struct {
	best  int
	saved []int
	err   error
}

func (s *fakeStore) Load() int { return s.best }

func (s *fakeStore) Save(score int) error {
	if s.err != nil {
		return s.err
	}

	s.saved = append(s.saved, score)
	s.best = score
	return nil
}

type sequence struct {
	blocks []mino.Block
	i      int
}

func (s *sequence) Take() mino.Block {
	b := s.blocks[s.i%len(s.blocks)]
	s.i++
	return b
}

type testGame struct {
	*Game
	clock  *fakeClock
	store  *fakeStore
	events chan interface{}
	logs   chan string
}

func newTestGame(w, h int, blocks ...mino.Block) *testGame {
	tg := &testGame{
		clock:  &fakeClock{},
		store:  &fakeStore{best: -1},
		events: make(chan interface{}, CommandQueueSize),
		logs:   make(chan string, LogQueueSize),
	}

	tg.Game = NewGame(Config{
		Width:    w,
		Height:   h,
		Pieces:   &sequence{blocks: blocks},
		Store:    tg.store,
		Clock:    tg.clock,
		Logger:   tg.logs,
		LogLevel: LogDebug,
		Event:    tg.events,
	})

	return tg
}

func points(cells []mino.Cell) []mino.Point {
	p := make([]mino.Point, len(cells))
	for i := range cells {
		p[i] = cells[i].Point
	}

	sort.Slice(p, func(i, j int) bool {
		return p[i].Y < p[j].Y || (p[i].Y == p[j].Y && p[i].X < p[j].X)
	})
	return p
}

func columns(cells []mino.Cell) (int, int) {
	minx, maxx := cells[0].X, cells[0].X
	for _, c := range cells[1:] {
		if c.X < minx {
			minx = c.X
		}
		if c.X > maxx {
			maxx = c.X
		}
	}

	return minx, maxx
}

func blockCount(g *Game) int {
	n := 0
	g.EachBlock(func(int, int, mino.Block) { n++ })
	return n
}

func (tg *testGame) nextEvent(t *testing.T) interface{} {
	select {
	case e := <-tg.events:
		return e
	default:
		t.Fatal("expected an event")
		return nil
	}
}

func TestStartSpawnsPiece(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockI)

	assert.Equal(t, StateNotStarted, g.State())
	assert.Nil(t, g.PieceCells())

	g.Start()

	require.Equal(t, StateRunning, g.State())
	assert.True(t, g.clock.started)
	assert.Equal(t, MaxFallTime, g.clock.last())
	assert.Equal(t, 0, g.Score())

	cells := g.PieceCells()
	require.Len(t, cells, 4)
	for _, c := range cells {
		assert.Equal(t, mino.BlockI, c.Block)
	}
	assert.Equal(t, []mino.Point{{X: 6, Y: 18}, {X: 6, Y: 19}, {X: 6, Y: 20}, {X: 6, Y: 21}}, points(cells))
}

func TestActionsIgnoredBeforeStart(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockT)

	g.ProcessAction(event.ActionMoveLeft)
	g.ProcessAction(event.ActionTogglePause)
	g.Tick()

	assert.Equal(t, StateNotStarted, g.State())
	assert.Nil(t, g.PieceCells())
	assert.Zero(t, blockCount(g.Game))
}

func TestMoveStopsAtWalls(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockT)
	g.Start()

	for i := 0; i < 20; i++ {
		g.ProcessAction(event.ActionMoveLeft)
	}
	minx, maxx := columns(g.PieceCells())
	assert.Equal(t, 0, minx)
	assert.Equal(t, 2, maxx)

	for i := 0; i < 20; i++ {
		g.ProcessAction(event.ActionMoveRight)
	}
	minx, maxx = columns(g.PieceCells())
	assert.Equal(t, mino.DefaultWidth-3, minx)
	assert.Equal(t, mino.DefaultWidth-1, maxx)
}

func TestRotate(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockI)
	g.Start()

	g.ProcessAction(event.ActionRotateCW)
	horizontal := points(g.PieceCells())
	assert.Equal(t, []mino.Point{{X: 5, Y: 20}, {X: 6, Y: 20}, {X: 7, Y: 20}, {X: 8, Y: 20}}, horizontal)

	// Rotating back to vertical would push a cell above the top row.
	g.ProcessAction(event.ActionRotateCW)
	assert.Equal(t, horizontal, points(g.PieceCells()))

	g.ProcessAction(event.ActionSoftDrop)
	g.ProcessAction(event.ActionRotateCCW)
	assert.Equal(t, []mino.Point{{X: 6, Y: 17}, {X: 6, Y: 18}, {X: 6, Y: 19}, {X: 6, Y: 20}}, points(g.PieceCells()))
}

func TestTickAndSoftDrop(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockO)
	g.Start()

	g.Tick()
	assert.Equal(t, []mino.Point{{X: 6, Y: 19}, {X: 7, Y: 19}, {X: 6, Y: 20}, {X: 7, Y: 20}}, points(g.PieceCells()))

	g.ProcessAction(event.ActionSoftDrop)
	assert.Equal(t, []mino.Point{{X: 6, Y: 18}, {X: 7, Y: 18}, {X: 6, Y: 19}, {X: 7, Y: 19}}, points(g.PieceCells()))
}

func TestTickLandsPiece(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockO)
	g.Start()

	ticks := 0
	for ; ticks < 30 && blockCount(g.Game) == 0; ticks++ {
		g.Tick()
	}

	// 20 rows of fall, then one tick that fails to lower the piece
	assert.Equal(t, 21, ticks)
	assert.Equal(t, 4, blockCount(g.Game))
	g.EachBlock(func(x int, y int, b mino.Block) {
		assert.True(t, (x == 6 || x == 7) && (y == 0 || y == 1), "unexpected block at (%d,%d)", x, y)
	})

	assert.Equal(t, []mino.Point{{X: 6, Y: 20}, {X: 7, Y: 20}, {X: 6, Y: 21}, {X: 7, Y: 21}}, points(g.PieceCells()))
	assert.Equal(t, StateRunning, g.State())
}

func TestSoftDropLandsAndClears(t *testing.T) {
	g := newTestGame(6, 6, mino.BlockO)
	g.Start()

	g.Lock()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			g.matrix.SetBlock(x, y, mino.BlockT)
		}
	}
	g.Unlock()

	drops := 0
	for ; drops < 10 && g.PieceCells() != nil; drops++ {
		g.ProcessAction(event.ActionSoftDrop)
	}

	assert.Equal(t, 5, drops)
	assert.Equal(t, 2, g.Score())
	assert.Zero(t, blockCount(g.Game))

	e, ok := g.nextEvent(t).(*event.ScoreEvent)
	require.True(t, ok)
	assert.Equal(t, 2, e.Lines)

	g.Tick()
	assert.Equal(t, []mino.Point{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 5}}, points(g.PieceCells()))
}

func TestHardDropLandsAndSpawns(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockO)
	g.Start()

	assert.Equal(t, []mino.Point{{X: 6, Y: 0}, {X: 7, Y: 0}, {X: 6, Y: 1}, {X: 7, Y: 1}}, points(g.GhostCells()))

	g.ProcessAction(event.ActionHardDrop)

	assert.Equal(t, 4, blockCount(g.Game))
	g.EachBlock(func(x int, y int, b mino.Block) {
		assert.Equal(t, mino.BlockO, b)
		assert.True(t, (x == 6 || x == 7) && (y == 0 || y == 1), "unexpected block at (%d,%d)", x, y)
	})

	assert.Equal(t, []mino.Point{{X: 6, Y: 20}, {X: 7, Y: 20}, {X: 6, Y: 21}, {X: 7, Y: 21}}, points(g.PieceCells()))
	assert.Equal(t, []mino.Point{{X: 6, Y: 2}, {X: 7, Y: 2}, {X: 6, Y: 3}, {X: 7, Y: 3}}, points(g.GhostCells()))
	assert.Equal(t, StateRunning, g.State())
}

func TestLineClear(t *testing.T) {
	g := newTestGame(6, 6, mino.BlockO)
	g.Start()

	for i := 0; i < 4; i++ {
		g.ProcessAction(event.ActionMoveLeft)
	}
	g.ProcessAction(event.ActionHardDrop)

	g.ProcessAction(event.ActionMoveLeft)
	g.ProcessAction(event.ActionMoveLeft)
	g.ProcessAction(event.ActionHardDrop)

	g.ProcessAction(event.ActionHardDrop)

	assert.Equal(t, 2, g.Score())
	assert.Equal(t, 0, g.Level())
	assert.Zero(t, blockCount(g.Game))
	assert.Nil(t, g.PieceCells(), "the next piece waits for a tick after a clear")

	e, ok := g.nextEvent(t).(*event.ScoreEvent)
	require.True(t, ok)
	assert.Equal(t, 2, e.Lines)
	assert.Equal(t, 2, e.Score)

	g.ProcessAction(event.ActionHardDrop)
	assert.Zero(t, blockCount(g.Game))

	g.Tick()
	assert.Len(t, g.PieceCells(), 4)
	assert.Equal(t, StateRunning, g.State())
}

func TestSpeedCurveApplied(t *testing.T) {
	g := newTestGame(6, 6, mino.BlockO)
	g.Start()

	g.Lock()
	g.score = 9
	for x := 0; x < 4; x++ {
		g.matrix.SetBlock(x, 0, mino.BlockT)
	}
	g.Unlock()

	g.ProcessAction(event.ActionHardDrop)

	assert.Equal(t, 10, g.Score())
	assert.Equal(t, 1, g.Level())
	assert.Equal(t, 340*time.Millisecond, g.FallTime())
	assert.Equal(t, 340*time.Millisecond, g.clock.last())

	g.Start()
	assert.Equal(t, MaxFallTime, g.FallTime())
}

func TestPause(t *testing.T) {
	g := newTestGame(0, 0, mino.BlockT)
	g.Start()

	g.ProcessAction(event.ActionTogglePause)
	require.True(t, g.Paused())
	assert.False(t, g.clock.started)

	g.Lock()
	g.score = 5
	g.Unlock()

	before := points(g.PieceCells())
	g.ProcessAction(event.ActionMoveLeft)
	g.ProcessAction(event.ActionHardDrop)
	g.Tick()
	g.Start()

	assert.Equal(t, before, points(g.PieceCells()))
	assert.Equal(t, 5, g.Score(), "start must not reset a paused game")
	assert.True(t, g.Paused())

	g.ProcessAction(event.ActionTogglePause)
	assert.Equal(t, StateRunning, g.State())
	assert.True(t, g.clock.started)
}

func TestGameOver(t *testing.T) {
	g := newTestGame(6, 4, mino.BlockO)
	g.Start()

	g.ProcessAction(event.ActionHardDrop)
	g.ProcessAction(event.ActionHardDrop)

	require.True(t, g.GameOver())
	assert.False(t, g.clock.started)
	assert.Nil(t, g.PieceCells())
	assert.Nil(t, g.GhostCells())
	assert.Equal(t, 8, blockCount(g.Game), "a failed spawn leaves the matrix untouched")

	assert.Equal(t, []int{0}, g.store.saved)
	assert.Equal(t, 0, g.Best())

	e, ok := g.nextEvent(t).(*event.GameOverEvent)
	require.True(t, ok)
	assert.Equal(t, 0, e.Score)
	assert.Equal(t, -1, e.Best)
	assert.True(t, e.NewBest)

	g.ProcessAction(event.ActionTogglePause)
	g.Tick()
	assert.True(t, g.GameOver())

	g.Start()
	assert.Equal(t, StateRunning, g.State())
	assert.Zero(t, blockCount(g.Game))
	assert.Len(t, g.PieceCells(), 4)
}

func TestGameOverKeepsBest(t *testing.T) {
	g := newTestGame(6, 4, mino.BlockO)
	g.store.best = 50

	g.Start()
	g.ProcessAction(event.ActionHardDrop)
	g.ProcessAction(event.ActionHardDrop)

	require.True(t, g.GameOver())
	assert.Empty(t, g.store.saved)
	assert.Equal(t, 50, g.Best())

	e, ok := g.nextEvent(t).(*event.GameOverEvent)
	require.True(t, ok)
	assert.False(t, e.NewBest)
	assert.Equal(t, 50, e.Best)
}

func TestGameOverSaveFailure(t *testing.T) {
	g := newTestGame(6, 4, mino.BlockO)
	g.store.err = errors.New("disk full")

	g.Start()
	g.ProcessAction(event.ActionHardDrop)
	g.ProcessAction(event.ActionHardDrop)

	require.True(t, g.GameOver())
	assert.Equal(t, 0, g.Best())

	var logged []string
	for len(g.logs) > 0 {
		logged = append(logged, <-g.logs)
	}
	assert.Contains(t, logged, "disk full")
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(6, 6, mino.BlockO)

	s := g.Snapshot()
	assert.Equal(t, 6, s.W)
	assert.Equal(t, 6, s.H)
	assert.Equal(t, StateNotStarted, s.State)
	assert.Nil(t, s.Piece)
	assert.Nil(t, s.Ghost)
	assert.Empty(t, s.Blocks)
	assert.Equal(t, -1, s.Best)

	g.Start()
	g.ProcessAction(event.ActionHardDrop)
	g.Tick()

	s = g.Snapshot()
	assert.Equal(t, StateRunning, s.State)
	assert.Equal(t, g.PieceCells(), s.Piece)
	assert.Equal(t, g.GhostCells(), s.Ghost)
	assert.Equal(t, []mino.Point{{X: 4, Y: 3}, {X: 5, Y: 3}, {X: 4, Y: 4}, {X: 5, Y: 4}}, points(s.Piece))
	assert.Equal(t, []mino.Point{{X: 4, Y: 2}, {X: 5, Y: 2}, {X: 4, Y: 3}, {X: 5, Y: 3}}, points(s.Ghost))

	require.Len(t, s.Blocks, 4)
	for _, c := range s.Blocks {
		assert.Equal(t, mino.BlockO, c.Block)
		assert.True(t, c.Y < 2, "unexpected block at %s", c.Point)
	}

	g.Lock()
	g.score = 23
	g.Unlock()

	s = g.Snapshot()
	assert.Equal(t, 23, s.Score)
	assert.Equal(t, 2, s.Level)
}

func TestClock(t *testing.T) {
	cl := NewClock(time.Millisecond)
	require.True(t, cl.Paused())
	assert.Equal(t, "1ms (stopped)", cl.String())

	ticks := make(chan struct{}, 100)
	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		cl.Run(ctx, func() {
			select {
			case ticks <- struct{}{}:
			default:
			}
		})
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, ticks, 0, "a stopped clock must not tick")

	cl.Start()
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("failed to receive tick from started clock")
	}

	cl.SetInterval(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, cl.Interval())
	assert.Equal(t, "5ms", cl.String())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("failed to stop clock after cancel")
	}
}
