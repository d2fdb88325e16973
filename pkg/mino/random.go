package mino

import (
	"math/rand"
	"sync"
	"time"
)

// Randomizer picks shapes uniformly from AllBlocks.
type Randomizer struct {
	Seed int64

	r *rand.Rand
	*sync.Mutex
}

// NewRandomizer returns a randomizer seeded with seed, or with the current
// time when seed is 0.
func NewRandomizer(seed int64) *Randomizer {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	return &Randomizer{Seed: seed, r: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}
}

func (r *Randomizer) Take() Block {
	r.Lock()
	defer r.Unlock()

	return AllBlocks[r.r.Intn(len(AllBlocks))]
}
