package services

import (
	"math/rand"
	"sync"
	"time"
)

// Picker chooses among equivalent canned phrasings
type Picker interface {
	Intn(n int) int
}

// lockedRand is a seedable Picker safe for concurrent sessions
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPicker returns a Picker. A zero seed means time based.
func NewPicker(seed int64) Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

func pick(p Picker, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[p.Intn(len(options))]
}
