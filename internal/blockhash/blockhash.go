// Package blockhash provides the node's content-addressing hash and the
// mmr.Merge implementation bound into the node's block log.
package blockhash

import (
	"github.com/meridianchain/meridian/mmr"
	"lukechampine.com/blake3"
)

// Hash is a 32 byte BLAKE3 digest: the node's element type for both block
// header hashing and the merkle log.
type Hash = [32]byte

// Sum returns the BLAKE3 digest of data.
func Sum(data []byte) Hash {
	return blake3.Sum256(data)
}

// Merge implements mmr.Merge[Hash] by hashing the concatenation of left and
// right. It never fails.
type Merge struct{}

func (Merge) Merge(left, right Hash) (Hash, error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return Sum(buf), nil
}

var _ mmr.Merge[Hash] = Merge{}
