package mmr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMMR(t *testing.T) (*MMR[[32]byte], *MemStore[[32]byte], *Batch[[32]byte]) {
	t.Helper()
	store := NewMemStore[[32]byte]()
	batch := NewBatch[[32]byte](store)
	m := New[[32]byte](0, batch, sha256Merge{})
	return m, store, batch
}

func pushLeaves(t *testing.T, m *MMR[[32]byte], batch *Batch[[32]byte], n int) []uint64 {
	t.Helper()
	positions := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		pos, err := m.Push(leafHash(byte(i)))
		require.NoError(t, err)
		require.NoError(t, batch.Commit())
		positions = append(positions, pos)
	}
	return positions
}

// TestLeafPositions checks the exact leaf position sequence for the first
// eight leaves pushed into an empty mmr.
func TestLeafPositions(t *testing.T) {
	m, _, batch := newTestMMR(t)
	want := []uint64{0, 1, 3, 4, 7, 8, 10, 11}
	got := pushLeaves(t, m, batch, len(want))
	require.Equal(t, want, got)
}

// TestPushIsDeterministic checks that pushing the same sequence of leaves
// into two independent mmrs produces identical roots at every step.
func TestPushIsDeterministic(t *testing.T) {
	m1, _, b1 := newTestMMR(t)
	m2, _, b2 := newTestMMR(t)

	for i := 0; i < 20; i++ {
		_, err := m1.Push(leafHash(byte(i)))
		require.NoError(t, err)
		require.NoError(t, b1.Commit())

		_, err = m2.Push(leafHash(byte(i)))
		require.NoError(t, err)
		require.NoError(t, b2.Commit())

		require.Equal(t, m1.MMRSize(), m2.MMRSize())

		r1, err := m1.Root()
		require.NoError(t, err)
		r2, err := m2.Root()
		require.NoError(t, err)
		require.Equal(t, r1, r2)
	}
}

// TestMMRSizeMonotonic checks that mmrSize strictly increases with every
// push and never regresses on commit.
func TestMMRSizeMonotonic(t *testing.T) {
	m, _, batch := newTestMMR(t)
	prev := m.MMRSize()
	for i := 0; i < 50; i++ {
		_, err := m.Push(leafHash(byte(i)))
		require.NoError(t, err)
		require.NoError(t, batch.Commit())
		require.Greater(t, m.MMRSize(), prev)
		prev = m.MMRSize()
	}
}

// TestRootOnEmpty checks that Root on a freshly constructed mmr fails with
// ErrGetRootOnEmpty rather than returning a zero value silently.
func TestRootOnEmpty(t *testing.T) {
	m, _, _ := newTestMMR(t)
	require.True(t, m.Empty())
	_, err := m.Root()
	require.ErrorIs(t, err, ErrGetRootOnEmpty)
}

// TestRootSingleLeaf checks that a one element mmr's root is that element,
// unmerged.
func TestRootSingleLeaf(t *testing.T) {
	m, _, batch := newTestMMR(t)
	leaf := leafHash(7)
	_, err := m.Push(leaf)
	require.NoError(t, err)
	require.NoError(t, batch.Commit())

	root, err := m.Root()
	require.NoError(t, err)
	require.Equal(t, leaf, root)
}

// TestRootChangesOnEveryPush checks that appending a new leaf always changes
// the root: an MMR with no deletion or mutation should never collide roots
// across different prefixes of the same leaf sequence.
func TestRootChangesOnEveryPush(t *testing.T) {
	m, _, batch := newTestMMR(t)
	seen := make(map[[32]byte]int)
	for i := 0; i < 40; i++ {
		_, err := m.Push(leafHash(byte(i)))
		require.NoError(t, err)
		require.NoError(t, batch.Commit())

		root, err := m.Root()
		require.NoError(t, err)
		if prior, ok := seen[root]; ok {
			t.Fatalf("root repeated at leaf %d, first seen at push %d", i, prior)
		}
		seen[root] = i
	}
}

// TestBatchDiscardRollsBackStaging checks that a discarded batch leaves the
// underlying store untouched: the store holds the same number of elements
// after the discarded push as before it.
func TestBatchDiscardRollsBackStaging(t *testing.T) {
	m, store, batch := newTestMMR(t)
	_, err := m.Push(leafHash(0))
	require.NoError(t, err)
	require.NoError(t, batch.Commit())

	sizeBefore := store.Len()

	// stage a push directly against the batch without committing, then
	// discard it
	staging := NewBatch[[32]byte](store)
	mStaging := New[[32]byte](m.MMRSize(), staging, sha256Merge{})
	_, err = mStaging.Push(leafHash(1))
	require.NoError(t, err)
	staging.Discard()

	require.Equal(t, sizeBefore, store.Len())
}
