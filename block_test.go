package xalloc

import "testing"

func TestPackUnpackWord(t *testing.T) {
	cases := []struct {
		size      int64
		allocated bool
	}{
		{16, true},
		{16, false},
		{4096, true},
		{0, true},
	}
	for _, c := range cases {
		w := packWord(c.size, c.allocated)
		gotSize, gotAlloc := unpackWord(w)
		if gotSize != c.size {
			t.Errorf("packWord(%d,%v) size = %d, want %d", c.size, c.allocated, gotSize, c.size)
		}
		if gotAlloc != c.allocated {
			t.Errorf("packWord(%d,%v) allocated = %v, want %v", c.size, c.allocated, gotAlloc, c.allocated)
		}
	}
}

func TestAlignUp(t *testing.T) {
	cases := map[int64]int64{
		0:  0,
		1:  8,
		7:  8,
		8:  8,
		9:  16,
		24: 24,
	}
	for in, want := range cases {
		if got := alignUp(in); got != want {
			t.Errorf("alignUp(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAdjustRequestNeverBelowMinBlock(t *testing.T) {
	for _, n := range []int64{-1, 0, 1, 7, 8} {
		if got := adjustRequest(n); got < minBlock {
			t.Errorf("adjustRequest(%d) = %d, below minBlock %d", n, got, minBlock)
		}
	}
}

func TestAdjustRequestAlignedAndHonoring(t *testing.T) {
	for _, n := range []int64{1, 8, 9, 100, 4089} {
		got := adjustRequest(n)
		if got%alignment != 0 {
			t.Errorf("adjustRequest(%d) = %d, not %d-aligned", n, got, alignment)
		}
		if got < n+2*wordSize {
			t.Errorf("adjustRequest(%d) = %d, too small to hold payload plus tags", n, got)
		}
	}
}
