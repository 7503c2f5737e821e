package bot

import (
	"math/rand"
	"sync"
	"time"
)

// Picker selects which of n canned replies to use. The selection strategy is
// injectable so tests can pin the outcome.
type Picker interface {
	Pick(n int) int
}

// randPicker selects uniformly at random from its own seeded source
type randPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandPicker returns a Picker backed by a time-seeded random source
func NewRandPicker() Picker {
	return &randPicker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *randPicker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Intn(n)
}
