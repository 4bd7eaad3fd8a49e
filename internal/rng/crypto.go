package rng

import (
	"crypto/rand"
	"math/big"
)

var _ Generator = Crypto{}

// Crypto draws from crypto/rand. Deck shuffles use it in production.
type Crypto struct{}

// Intn returns a random number in [0, n)
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}

	return int(b.Int64())
}
