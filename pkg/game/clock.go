package game

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Clock is the tick source of a game. It starts stopped.
type Clock struct {
	interval time.Duration
	paused   bool

	reset chan struct{}
	sync.Mutex
}

func NewClock(interval time.Duration) *Clock {
	return &Clock{interval: interval, paused: true, reset: make(chan struct{}, 1)}
}

func (cl *Clock) String() string {
	cl.Lock()
	defer cl.Unlock()

	if cl.paused {
		return fmt.Sprintf("%s (stopped)", cl.interval)
	}
	return cl.interval.String()
}

// Run calls tick once per interval while the clock is started, until ctx is done.
func (cl *Clock) Run(ctx context.Context, tick func()) {
	t := time.NewTicker(cl.Interval())
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cl.reset:
			t.Reset(cl.Interval())
		case <-t.C:
			if cl.Paused() {
				continue
			}

			tick()
		}
	}
}

func (cl *Clock) Start() {
	cl.Lock()
	cl.paused = false
	cl.Unlock()

	cl.restart()
}

func (cl *Clock) Stop() {
	cl.Lock()
	defer cl.Unlock()

	cl.paused = true
}

func (cl *Clock) SetInterval(d time.Duration) {
	cl.Lock()
	cl.interval = d
	cl.Unlock()

	cl.restart()
}

func (cl *Clock) Interval() time.Duration {
	cl.Lock()
	defer cl.Unlock()

	return cl.interval
}

func (cl *Clock) Paused() bool {
	cl.Lock()
	defer cl.Unlock()

	return cl.paused
}

func (cl *Clock) restart() {
	select {
	case cl.reset <- struct{}{}:
	default:
	}
}
