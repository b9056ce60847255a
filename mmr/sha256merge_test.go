package mmr

import "crypto/sha256"

// sha256Merge is the reference Merge used throughout the test suite: it
// concatenates left and right and hashes the result. It is deliberately not
// exported; production callers are expected to bind their own domain
// separated Merge, but the tests only care about exercising the engine
// against a realistic, non-commutative combiner.
type sha256Merge struct{}

func (sha256Merge) Merge(left, right [32]byte) ([32]byte, error) {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return sha256.Sum256(buf[:]), nil
}

func leafHash(b byte) [32]byte {
	return sha256.Sum256([]byte{b})
}
