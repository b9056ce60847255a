package mmr

import "math/bits"

// BitLength64 returns the number of bits required to represent num, ie the
// position of its highest set bit plus one. BitLength64(0) is 0.
func BitLength64(num uint64) uint64 {
	return uint64(bits.Len64(num))
}

// AllOnes reports whether num, in binary, is all 1 bits (2^k - 1 for some k).
// This is the signature of a one based position that sits at the root of a
// perfect subtree.
func AllOnes(num uint64) bool {
	return (uint64(1)<<bits.OnesCount64(num) - 1) == num
}
