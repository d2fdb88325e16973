package game

import "time"

const (
	MinFallTime   = 100 * time.Millisecond
	MaxFallTime   = 370 * time.Millisecond
	FallTimeStep  = 30 * time.Millisecond
	LinesPerLevel = 10
)

func Level(score int) int {
	return score / LinesPerLevel
}

// FallTime is the tick interval for a level.
func FallTime(level int) time.Duration {
	d := MaxFallTime - time.Duration(level)*FallTimeStep
	if d < MinFallTime {
		return MinFallTime
	}

	return d
}
