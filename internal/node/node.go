// Package node wires the merkle log engine to a concrete store and exposes
// the handful of operations the RPC surface and the miner loop need,
// satisfying both collaborators' narrow Log interfaces without either
// depending on the engine's package directly.
package node

import (
	"fmt"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/mmr"
)

// Log wraps an *mmr.MMR[blockhash.Hash] and its batch, one commit at a time.
type Log struct {
	engine *mmr.MMR[blockhash.Hash]
	batch  *mmr.Batch[blockhash.Hash]
}

// New constructs a Log over store at mmrSize, merging with blockhash.Merge.
func New(mmrSize uint64, store mmr.Store[blockhash.Hash]) *Log {
	batch := mmr.NewBatch[blockhash.Hash](store)
	engine := mmr.New[blockhash.Hash](mmrSize, batch, blockhash.Merge{})
	return &Log{engine: engine, batch: batch}
}

func (l *Log) MMRSize() uint64 {
	return l.engine.MMRSize()
}

func (l *Log) Empty() bool {
	return l.engine.Empty()
}

func (l *Log) Push(leaf blockhash.Hash) (uint64, error) {
	return l.engine.Push(leaf)
}

func (l *Log) Root() (blockhash.Hash, error) {
	return l.engine.Root()
}

func (l *Log) GenProof(pos uint64) (*mmr.MerkleProof[blockhash.Hash], error) {
	return l.engine.GenProof(pos)
}

// Commit flushes the batch's staged writes to the underlying store.
func (l *Log) Commit() error {
	return l.batch.Commit()
}

// Discard drops the batch's staged writes without touching the store,
// leaving mmrSize unchanged on the caller's next New call.
func (l *Log) Discard() {
	l.batch.Discard()
}

// PeakElements returns the elements at the current peak positions, in
// decreasing-height order, reading through the batch so staged-but-not-yet
// committed peaks are still visible.
func (l *Log) PeakElements() ([]blockhash.Hash, error) {
	peaks := mmr.GetPeaks(l.engine.MMRSize())
	elems := make([]blockhash.Hash, 0, len(peaks))
	for _, pos := range peaks {
		elem, found, err := l.peek(pos)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("node: peak position %d missing from store", pos)
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

func (l *Log) peek(pos uint64) (blockhash.Hash, bool, error) {
	return l.batch.GetElem(pos)
}

// Elem returns the element stored at pos, whether it is a leaf or an
// internal node, or found=false if pos has never been written.
func (l *Log) Elem(pos uint64) (elem blockhash.Hash, found bool, err error) {
	return l.peek(pos)
}
