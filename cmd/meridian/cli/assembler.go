package cli

import (
	"math/big"
	"time"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/internal/headercheck"
)

// toyAssembler produces a minimally valid next header: block construction
// and proof-of-work search are out of scope for the merkle log itself, so
// this exists only to drive the miner loop end to end.
type toyAssembler struct {
	target *big.Int
}

func newToyAssembler() *toyAssembler {
	// A maximally permissive target: any hash satisfies it, since search
	// difficulty is not this node's concern.
	target := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	return &toyAssembler{target: target}
}

func (a *toyAssembler) Assemble(parent *headercheck.Header) (*headercheck.Header, blockhash.Hash, error) {
	number := uint64(0)
	parentSum := blockhash.Hash{}
	if parent != nil {
		number = parent.Number + 1
		parentSum = parent.ParentSum
	}

	leaf := blockhash.Sum(append(parentSum[:], byte(number)))
	powHash := new(big.Int).SetBytes(leaf[:])

	candidate := &headercheck.Header{
		Version:   headercheck.HeaderVersion,
		Number:    number,
		Timestamp: time.Now(),
		ParentSum: leaf,
		Target:    a.target,
		PowHash:   powHash,
	}
	return candidate, leaf, nil
}
