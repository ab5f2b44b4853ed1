package mondrian

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Rand is the random source consumed by the subdivider and the strategies.
// IntN returns a uniform integer in [0, n) and may panic if n <= 0.
//
// *rand.Rand from math/rand/v2 satisfies Rand.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed source seeded with seed.
// The same seed always yields the same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed returns a fresh non-zero seed from the operating system's entropy source.
func NewSeed() uint64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return rand.Uint64() | 1
	}
	if s := binary.LittleEndian.Uint64(b[:]); s != 0 {
		return s
	}
	return 1
}
