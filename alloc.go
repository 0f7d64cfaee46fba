// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

// Alloc returns the payload address of a new block able to hold
// requested bytes, or (0, false) if requested is zero or the region
// provider refused to grow.
func (a *Allocator) Alloc(requested int64) (int64, bool) {
	if requested == 0 {
		return 0, false
	}

	need := adjustRequest(requested)

	bp, err := a.firstFit(need)
	if err != nil {
		return 0, false
	}
	if bp == 0 {
		bp, err = a.extendHeap(need)
		if err != nil {
			return 0, false
		}
	}

	if err := a.place(bp, need); err != nil {
		return 0, false
	}
	return bp, true
}

// Free marks bp's block unallocated and eagerly coalesces it with its
// physical neighbors, inserting the (possibly merged) result into the
// free list. bp must be a payload address previously returned by Alloc
// or Realloc and not already freed; violating that is caller error and
// is not detected here.
func (a *Allocator) Free(bp int64) {
	size, err := a.size(bp)
	if err != nil {
		return
	}
	if err := a.writeBlock(bp, size, false); err != nil {
		return
	}
	if err := a.list.Insert(a.blocks(), bp); err != nil {
		return
	}
	a.coalesce(bp)
}

// Realloc resizes the block at bp to hold requested bytes, preferring
// in-place resolution — shrink in place, or grow into a free right
// neighbor — before falling back to allocate-copy-free. bp == 0 behaves
// as Alloc(requested); requested == 0 frees bp and returns (0, false).
func (a *Allocator) Realloc(bp, requested int64) (int64, bool) {
	if bp == 0 {
		return a.Alloc(requested)
	}
	if requested == 0 {
		a.Free(bp)
		return 0, false
	}

	need := adjustRequest(requested)

	oldSize, err := a.size(bp)
	if err != nil {
		return 0, false
	}

	if need <= oldSize {
		if err := a.shrinkInPlace(bp, oldSize, need); err != nil {
			return 0, false
		}
		return bp, true
	}

	grew, err := a.growRight(bp, oldSize, need)
	if err != nil {
		return 0, false
	}
	if grew {
		return bp, true
	}

	newBp, ok := a.Alloc(requested)
	if !ok {
		return 0, false
	}
	if err := a.copyPayload(bp, newBp, oldSize-2*wordSize); err != nil {
		return 0, false
	}
	a.Free(bp)
	return newBp, true
}

// shrinkInPlace splits off a trailing free block when the leftover from
// shrinking bp to need is at least minBlock; otherwise the block keeps
// its current size rather than split below the minimum.
func (a *Allocator) shrinkInPlace(bp, oldSize, need int64) error {
	leftover := oldSize - need
	if leftover < minBlock {
		return nil
	}

	if err := a.writeBlock(bp, need, true); err != nil {
		return err
	}
	remainder := bp + need
	if err := a.writeBlock(remainder, leftover, false); err != nil {
		return err
	}
	if err := a.list.Insert(a.blocks(), remainder); err != nil {
		return err
	}
	a.coalesce(remainder)
	return nil
}

// growRight absorbs a free right physical neighbor in place when it,
// combined with bp's current size, is enough to hold need. Returns
// false (no error) when the neighbor is absent, allocated, or too
// small, leaving bp untouched so the caller can fall back to Alloc.
func (a *Allocator) growRight(bp, oldSize, need int64) (bool, error) {
	rightBp := a.nextPhys(bp, oldSize)
	rightAlloc, err := a.allocated(rightBp)
	if err != nil {
		return false, err
	}
	if rightAlloc {
		return false, nil
	}
	rightSize, err := a.size(rightBp)
	if err != nil {
		return false, err
	}

	combined := oldSize + rightSize
	if combined < need {
		return false, nil
	}

	if err := a.list.Remove(a.blocks(), rightBp); err != nil {
		return false, err
	}

	leftover := combined - need
	if leftover < minBlock {
		return true, a.writeBlock(bp, combined, true)
	}

	if err := a.writeBlock(bp, need, true); err != nil {
		return false, err
	}
	remainder := bp + need
	if err := a.writeBlock(remainder, leftover, false); err != nil {
		return false, err
	}
	return true, a.list.Insert(a.blocks(), remainder)
}

// copyPayload moves n bytes of payload from one block to another,
// reading through a fixed-size staging buffer so it works regardless of
// which region.Provider backs the heap.
func (a *Allocator) copyPayload(src, dst, n int64) error {
	const bufSize = 4096
	buf := make([]byte, bufSize)
	for off := int64(0); off < n; off += bufSize {
		chunk := n - off
		if chunk > bufSize {
			chunk = bufSize
		}
		if _, err := a.region.ReadAt(buf[:chunk], src+off); err != nil {
			return err
		}
		if _, err := a.region.WriteAt(buf[:chunk], dst+off); err != nil {
			return err
		}
	}
	return nil
}
