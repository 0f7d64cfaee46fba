// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

// Stats summarizes a heap's shape as of a Verify pass, the byte-range
// analogue of lldb.Allocator's AllocStats.
type Stats struct {
	TotalBytes  int64
	AllocBytes  int64
	AllocBlocks int64
	FreeBytes   int64
	FreeBlocks  int64
	Extensions  int64
}

// Verify walks the heap from the prologue to the epilogue checking
// every structural invariant a valid heap must hold, then cross-checks
// free list membership against the allocated bit in both directions. Each
// problem found is reported to log; if log returns false, Verify stops
// early and returns the first error seen. A nil log means "always continue until
// the whole heap is walked"; Verify then returns the first error seen,
// if any, alongside whatever Stats it accumulated.
func (a *Allocator) Verify(log func(error) bool) (*Stats, error) {
	st := &Stats{Extensions: a.extensions}
	report := func(err error) bool {
		if log == nil {
			return true
		}
		return log(err)
	}

	var firstErr error
	note := func(err error) bool {
		if firstErr == nil {
			firstErr = err
		}
		return report(err)
	}

	for _, off := range []int64{a.prologue, a.epilogue} {
		if w, err := a.readWordAt(off); err != nil {
			return st, err
		} else if _, al := unpackWord(w); !al && !note(&ErrILSEQ{Type: ErrSentinelDamaged, Off: off}) {
			return st, firstErr
		}
	}

	prevAlloc := true // prologue is always allocated
	bp := a.prologue + wordSize
	for bp != a.epilogue+wordSize {
		hdr, err := a.readWordAt(headerOffset(bp))
		if err != nil {
			return st, err
		}
		size, allocated := unpackWord(hdr)

		if size > 0 {
			ftr, err := a.readWordAt(footerOffset(bp, size))
			if err != nil {
				return st, err
			}
			fsize, falloc := unpackWord(ftr)
			if fsize != size || falloc != allocated {
				if !note(&ErrILSEQ{Type: ErrHeaderFooterMismatch, Off: headerOffset(bp), Arg: size, Arg2: fsize}) {
					return st, firstErr
				}
			}
		}

		if bp%alignment != 0 {
			if !note(&ErrILSEQ{Type: ErrMisaligned, Off: bp}) {
				return st, firstErr
			}
		}

		if !allocated && !prevAlloc {
			if !note(&ErrILSEQ{Type: ErrAdjacentFree, Off: headerOffset(bp)}) {
				return st, firstErr
			}
		}

		if allocated {
			st.AllocBytes += size
			st.AllocBlocks++
		} else {
			st.FreeBytes += size
			st.FreeBlocks++
		}

		prevAlloc = allocated
		if size == 0 {
			break // zero-size header before the epilogue: stop rather than loop
		}
		bp = a.nextPhys(bp, size)
	}
	st.TotalBytes = st.AllocBytes + st.FreeBytes

	seen := make(map[int64]bool)
	for bp := a.list.Head(); bp != 0; {
		if seen[bp] {
			if !note(&ErrILSEQ{Type: ErrListCycle, Off: bp}) {
				return st, firstErr
			}
			break
		}
		seen[bp] = true

		if bp < a.region.Lo() || bp >= a.region.Hi() {
			if !note(&ErrILSEQ{Type: ErrOutOfBounds, Off: bp}) {
				return st, firstErr
			}
			break
		}

		allocated, err := a.allocated(bp)
		if err != nil {
			return st, err
		}
		if allocated {
			if !note(&ErrILSEQ{Type: ErrFreeFlagMismatch, Off: bp}) {
				return st, firstErr
			}
		}

		next, err := a.blocks().Next(bp)
		if err != nil {
			return st, err
		}
		bp = next
	}
	if int64(len(seen)) != st.FreeBlocks {
		if !note(&ErrILSEQ{Type: ErrUnreachableFree, Arg: st.FreeBlocks, Arg2: int64(len(seen))}) {
			return st, firstErr
		}
	}

	return st, firstErr
}
