// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

// place installs an allocated block of size need at free block bp
// (which is at least need bytes). If the leftover is big enough to
// host a minBlock-sized free block of its own, it is split off and
// reinserted into the free list; otherwise the whole block is handed
// out to avoid donating an unusably small fragment.
func (a *Allocator) place(bp, need int64) error {
	free, err := a.size(bp)
	if err != nil {
		return err
	}

	if err := a.list.Remove(a.blocks(), bp); err != nil {
		return err
	}

	leftover := free - need
	if leftover < minBlock {
		return a.writeBlock(bp, free, true)
	}

	if err := a.writeBlock(bp, need, true); err != nil {
		return err
	}

	remainder := bp + need
	if err := a.writeBlock(remainder, leftover, false); err != nil {
		return err
	}
	return a.list.Insert(a.blocks(), remainder)
}

// firstFit delegates to the configured Lister to find a candidate free
// block at least need bytes, returning 0 if none qualifies.
func (a *Allocator) firstFit(need int64) (int64, error) {
	return a.list.FirstFit(a.blocks(), need)
}
