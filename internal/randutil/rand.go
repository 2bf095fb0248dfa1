package randutil

import (
	"crypto/sha256"
	"encoding/binary"
	rand "math/rand/v2"
)

// FromString returns a *rand.Rand whose stream is a pure function of the
// seed string. The two 64-bit PCG seeds are taken from the SHA-256 of the
// input, so the sequence is identical on every platform and Go release
// that ships the same PCG implementation.
func FromString(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	hi := binary.BigEndian.Uint64(sum[0:8])
	lo := binary.BigEndian.Uint64(sum[8:16])
	return rand.New(rand.NewPCG(hi, lo))
}
