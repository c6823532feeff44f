package telemetry

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource yields uniformly distributed values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a goroutine-safe source seeded from the clock.
func NewRandomSource() RandomSource {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

// NewSeededSource returns a goroutine-safe source with a fixed seed.
func NewSeededSource(seed uint64) RandomSource {
	return &lockedSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}
