package node

import (
	"testing"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/mmr"
	"github.com/stretchr/testify/require"
)

func TestPushRootAndProofRoundTrip(t *testing.T) {
	store := mmr.NewMemStore[blockhash.Hash]()
	log := New(0, store)

	var positions []uint64
	for i := 0; i < 9; i++ {
		leaf := blockhash.Sum([]byte{byte(i)})
		pos, err := log.Push(leaf)
		require.NoError(t, err)
		positions = append(positions, pos)
	}
	require.NoError(t, log.Commit())

	root, err := log.Root()
	require.NoError(t, err)

	proof, err := log.GenProof(positions[2])
	require.NoError(t, err)

	ok, err := proof.Verify(root, positions[2], blockhash.Sum([]byte{2}))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPeakElementsCountMatchesGetPeaks(t *testing.T) {
	store := mmr.NewMemStore[blockhash.Hash]()
	log := New(0, store)

	for i := 0; i < 5; i++ {
		_, err := log.Push(blockhash.Sum([]byte{byte(i)}))
		require.NoError(t, err)
	}
	require.NoError(t, log.Commit())

	peaks, err := log.PeakElements()
	require.NoError(t, err)
	require.NotEmpty(t, peaks)
	require.Len(t, peaks, len(mmr.GetPeaks(log.MMRSize())))
}
