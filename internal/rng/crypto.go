package rng

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Crypto draws from crypto/rand. It is the generator used for real-money rounds
// and is safe for concurrent use.
type Crypto struct{}

// Intn returns a uniformly distributed number in [0, n). It panics if n <= 0.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rng: invalid argument to Intn: %d", n))
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Errorf("rng: could not read random bytes: %w", err))
	}

	return int(b.Int64())
}
