package mmr

import "testing"

func TestPosHeightInTree(t *testing.T) {
	tests := []struct {
		name string
		pos  uint64
		want uint64
	}{
		{"first leaf", 0, 0},
		{"second leaf", 1, 0},
		{"first parent", 2, 1},
		{"third leaf", 3, 0},
		{"next height parent", 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PosHeightInTree(tt.pos); got != tt.want {
				t.Errorf("PosHeightInTree(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestParentAndSiblingOffset(t *testing.T) {
	for h := uint64(0); h < 10; h++ {
		if got, want := ParentOffset(h), uint64(2)<<h; got != want {
			t.Errorf("ParentOffset(%d) = %d, want %d", h, got, want)
		}
		if got, want := SiblingOffset(h), (uint64(2)<<h)-1; got != want {
			t.Errorf("SiblingOffset(%d) = %d, want %d", h, got, want)
		}
	}
}

func TestGetPeaks(t *testing.T) {
	tests := []struct {
		name    string
		mmrSize uint64
		want    []uint64
	}{
		{"empty", 0, nil},
		{"single leaf", 1, []uint64{0}},
		{"two leaves, one parent", 3, []uint64{2}},
		{"two peaks", 10, []uint64{6, 9}},
		{"size 11 gives three peaks", 11, []uint64{6, 9, 10}},
		{"size 26 gives four peaks", 26, []uint64{14, 21, 24, 25}},
		{"invalid size gives nil", 13, nil},
		{"perfectly filled size gives a single peak", 15, []uint64{14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetPeaks(tt.mmrSize)
			if len(got) != len(tt.want) {
				t.Fatalf("GetPeaks(%d) = %v, want %v", tt.mmrSize, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("GetPeaks(%d) = %v, want %v", tt.mmrSize, got, tt.want)
				}
			}
		})
	}
}

func TestGetPeaksDecreasingHeight(t *testing.T) {
	// for every valid size up to a few hundred leaves, the peaks, once found,
	// must be strictly increasing in position (equivalently strictly
	// decreasing in height)
	size := uint64(0)
	store := NewMemStore[uint64]()
	batch := NewBatch[uint64](store)
	m := New[uint64](0, batch, sumMerge{})
	for i := uint64(0); i < 500; i++ {
		if _, err := m.Push(i); err != nil {
			t.Fatalf("Push: %v", err)
		}
		if err := batch.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		size = m.MMRSize()

		peaks := GetPeaks(size)
		for j := 1; j < len(peaks); j++ {
			if peaks[j] <= peaks[j-1] {
				t.Fatalf("peaks not strictly increasing in position for size %d: %v", size, peaks)
			}
			if PosHeightInTree(peaks[j]) >= PosHeightInTree(peaks[j-1]) {
				t.Fatalf("peaks not strictly decreasing in height for size %d: %v", size, peaks)
			}
		}
	}
}

// sumMerge is a trivial Merge used by arithmetic-only tests that don't care
// about hashing, just that push/peaks bookkeeping is internally consistent.
type sumMerge struct{}

func (sumMerge) Merge(left, right uint64) (uint64, error) {
	return left + right + 1, nil
}
