// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

import "github.com/cznic/mathutil"

// coalesce merges the free block at bp with whichever physical
// neighbors are also free, the four-case boundary-tag merge, the same
// shape lldb's own falloc.go free-list merge performs on
// handle-addressed blocks. The prologue and epilogue
// sentinels are permanently allocated, so a real block never merges
// across either end of the heap. bp must already be a member of the
// free list (every caller inserts it before coalescing); coalesce
// removes it, along with any neighbor it absorbs, and reinserts
// whichever address survives. Returns the payload address of the
// (possibly now larger) merged free block.
func (a *Allocator) coalesce(bp int64) (int64, error) {
	size, err := a.size(bp)
	if err != nil {
		return 0, err
	}
	if err := a.list.Remove(a.blocks(), bp); err != nil {
		return 0, err
	}

	leftBp, err := a.prevPhys(bp)
	if err != nil {
		return 0, err
	}
	leftAlloc, err := a.allocated(leftBp)
	if err != nil {
		return 0, err
	}
	leftSize, err := a.size(leftBp)
	if err != nil {
		return 0, err
	}

	rightBp := a.nextPhys(bp, size)
	rightAlloc, err := a.allocated(rightBp)
	if err != nil {
		return 0, err
	}
	rightSize, err := a.size(rightBp)
	if err != nil {
		return 0, err
	}

	winner := bp
	merged := size
	if !leftAlloc {
		if err := a.list.Remove(a.blocks(), leftBp); err != nil {
			return 0, err
		}
		winner = leftBp
		merged += leftSize
	}
	if !rightAlloc {
		if err := a.list.Remove(a.blocks(), rightBp); err != nil {
			return 0, err
		}
		merged += rightSize
	}

	if err := a.writeBlock(winner, merged, false); err != nil {
		return 0, err
	}
	if err := a.list.Insert(a.blocks(), winner); err != nil {
		return 0, err
	}
	return winner, nil
}

// extendHeap grows the region by at least want bytes (floored against
// a.chunk), installs a new free block over the old epilogue's spot, a
// fresh epilogue past it, threads the new block into the free list,
// coalesces it with whatever free block preceded the old epilogue, and
// returns the resulting block's payload address.
func (a *Allocator) extendHeap(want int64) (int64, error) {
	bytes := alignUp(mathutil.MaxInt64(want, a.chunk))

	oldEpilogue := a.epilogue
	if _, err := a.region.Extend(bytes); err != nil {
		return 0, &ErrNoMem{Requested: bytes, ChunkSize: a.chunk, Err: err}
	}

	newBp := oldEpilogue + wordSize
	if err := a.writeBlock(newBp, bytes, false); err != nil {
		return 0, err
	}

	a.epilogue = oldEpilogue + bytes
	if err := a.writeWordAt(a.epilogue, packWord(0, true)); err != nil {
		return 0, err
	}

	if err := a.list.Insert(a.blocks(), newBp); err != nil {
		return 0, err
	}

	a.extensions++
	return a.coalesce(newBp)
}
