package rng

import "math/rand"

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a deterministic Generator. It is only suitable for tests and replays.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a Generator that always produces the same sequence for a seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a number in [0, n)
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}
