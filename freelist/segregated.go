package freelist

// Segregated is an optional Lister using power-of-two size classes, the
// same bucket boundaries lldb's flt (FLTPowersOf2) uses for its free
// list table and the Go runtime's small-object size classes
// (cloudfly-readgo/runtime/msize.go) use for mspan selection. It trades
// first-fit's single linear scan for near-O(1) class selection at the
// cost of coarser fit: a request is satisfied by the first block that
// fits, scanning from the smallest class that can hold it upward.
//
// It is not the default — the core allocator uses Explicit unless
// Options.Lister overrides it — but implements the exact same Lister
// contract, so a caller who wants size-class locality for an
// allocation-heavy workload can opt in without touching xalloc.Allocator.
type Segregated struct {
	classes []int64
	heads   []int64
}

// NewSegregated returns a Segregated list with the classic power-of-two
// class table: 16, 32, 64, ... 8192; the 8192 class also takes
// anything larger.
func NewSegregated() *Segregated {
	return &Segregated{
		classes: []int64{16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192},
		heads:   make([]int64, 10),
	}
}

func (s *Segregated) classOf(n int64) int {
	for i, c := range s.classes {
		if n <= c {
			return i
		}
	}
	return len(s.classes) - 1
}

// Head implements Lister: returns any non-empty bucket's head, used only
// for diagnostic list walks, not for placement.
func (s *Segregated) Head() int64 {
	for _, h := range s.heads {
		if h != 0 {
			return h
		}
	}
	return 0
}

// Insert implements Lister.
func (s *Segregated) Insert(b Blocks, bp int64) error {
	sz, err := b.Size(bp)
	if err != nil {
		return err
	}

	ix := s.classOf(sz)
	head := s.heads[ix]
	if err := b.SetPrev(bp, 0); err != nil {
		return err
	}
	if err := b.SetNext(bp, head); err != nil {
		return err
	}
	if head != 0 {
		if err := b.SetPrev(head, bp); err != nil {
			return err
		}
	}
	s.heads[ix] = bp
	return nil
}

// Remove implements Lister.
func (s *Segregated) Remove(b Blocks, bp int64) error {
	sz, err := b.Size(bp)
	if err != nil {
		return err
	}
	ix := s.classOf(sz)

	prev, err := b.Prev(bp)
	if err != nil {
		return err
	}
	next, err := b.Next(bp)
	if err != nil {
		return err
	}

	switch {
	case prev == 0 && next == 0:
		s.heads[ix] = 0
	case prev == 0:
		if err := b.SetPrev(next, 0); err != nil {
			return err
		}
		s.heads[ix] = next
	case next == 0:
		if err := b.SetNext(prev, 0); err != nil {
			return err
		}
	default:
		if err := b.SetNext(prev, next); err != nil {
			return err
		}
		if err := b.SetPrev(next, prev); err != nil {
			return err
		}
	}
	return nil
}

// FirstFit implements Lister: scan the smallest class that can hold
// need, then every larger class, returning the first block that fits.
func (s *Segregated) FirstFit(b Blocks, need int64) (int64, error) {
	for ix := s.classOf(need); ix < len(s.classes); ix++ {
		for bp := s.heads[ix]; bp != 0; {
			sz, err := b.Size(bp)
			if err != nil {
				return 0, err
			}
			if sz >= need {
				return bp, nil
			}

			bp, err = b.Next(bp)
			if err != nil {
				return 0, err
			}
		}
	}
	return 0, nil
}
