package emphasis

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness capability used for tie-breaking and for
// picking one occurrence among equals. IntN returns a uniformly
// distributed integer in [0, n) and is only called with n > 0.
type Source interface {
	IntN(n int) int
}

// lockedSource serializes access to a *rand.Rand so that one Emphasizer can
// be shared between goroutines.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a seeded, goroutine-safe Source. Equal seeds yield
// equal sequences.
func NewSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// coin returns true with probability one half.
func coin(src Source) bool {
	return src.IntN(2) == 0
}
