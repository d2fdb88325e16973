package game

import (
	"fmt"
	"log"
	"os"
)

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

// InitLog sends the standard logger to dest. The terminal belongs to the UI
// while a game is running.
func InitLog(dest, prefix string) error {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", dest, err)
	}

	log.SetOutput(f)
	log.SetPrefix(prefix)
	return nil
}

func (g *Game) Log(level int, a ...interface{}) {
	if g.logger == nil || level > g.LogLevel {
		return
	}

	select {
	case g.logger <- fmt.Sprint(a...):
	default:
	}
}

func (g *Game) Logf(level int, format string, a ...interface{}) {
	if g.logger == nil || level > g.LogLevel {
		return
	}

	select {
	case g.logger <- fmt.Sprintf(format, a...):
	default:
	}
}
