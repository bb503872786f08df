// Package generator holds the local (non-LLM) name generators: poetry
// fragments and element compensation.
package generator

import (
	"math/rand"
	"sync"
	"time"

	"qiming/domain/name"
)

// shuffler wraps a rand source so concurrently running generators can
// share one seeded stream in tests.
type shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newShuffler(rng *rand.Rand) *shuffler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &shuffler{rng: rng}
}

func (s *shuffler) shuffle(cands []name.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(cands), func(i, j int) {
		cands[i], cands[j] = cands[j], cands[i]
	})
}

func truncate(cands []name.Candidate, count int) []name.Candidate {
	if count >= 0 && len(cands) > count {
		return cands[:count]
	}
	return cands
}

func runeAt(s string, i int) (string, bool) {
	runes := []rune(s)
	if i < 0 || i >= len(runes) {
		return "", false
	}
	return string(runes[i]), true
}

func fixedIndex(pos name.FixedPosition) int {
	if pos == name.PositionSecond {
		return 1
	}
	return 0
}
