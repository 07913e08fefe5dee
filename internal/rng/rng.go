package rng

import (
	"math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// NewSeeded returns a deterministic generator. The same seed always yields the same sequence.
// The returned generator is not safe for concurrent use.
func NewSeeded(seed int64) Generator {
	return rand.New(rand.NewSource(seed)) // nolint:gosec
}

// Sequence replays a fixed list of values, each reduced modulo n.
// Once the values are exhausted it starts over. Useful for rigging outcomes in tests.
type Sequence struct {
	Values []int
	next   int
}

// Intn returns the next value in the sequence modulo n
func (s *Sequence) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}

	v := s.Values[s.next%len(s.Values)]
	s.next++

	v %= n
	if v < 0 {
		v += n
	}

	return v
}
