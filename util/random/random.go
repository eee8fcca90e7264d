package random

import (
	crypto_rand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/db47h/rand64/v3/splitmix64"
)

// NewSeed returns a cryptographically random seed for math/rand style
// sources.
func NewSeed() int64 {
	const MaxUint = ^uint(0)
	const MaxInt = int(MaxUint >> 1)
	nBig, err := crypto_rand.Int(crypto_rand.Reader, big.NewInt(int64(MaxInt)))
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}

	return nBig.Int64()
}

// NewRand returns a deterministic splitmix64-backed generator for the
// given seed. Simulation runs use this so a failing sequence can be
// replayed from its logged seed.
func NewRand(seed int64) *rand.Rand {
	src := splitmix64.Rng{}
	src.Seed(seed)
	return rand.New(&src)
}
