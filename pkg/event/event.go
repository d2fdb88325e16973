package event

// DrawObject tells the renderer which part of the screen is stale.
type DrawObject int

const (
	DrawAll DrawObject = iota
	DrawMatrix
	DrawSide
)

// ScoreEvent is sent after a landing cleared at least one row.
type ScoreEvent struct {
	Lines int
	Score int
	Level int
}

// GameOverEvent is sent once the session has ended and the score store has
// been consulted. Best is the record held before this session.
type GameOverEvent struct {
	Score   int
	Best    int
	NewBest bool
}
