// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

import "fmt"

// ErrINVAL reports an invalid argument passed to a public operation or
// to NewAllocator, mirroring lldb's ErrINVAL.
type ErrINVAL struct {
	Msg string
	Arg interface{}
}

func (e *ErrINVAL) Error() string { return fmt.Sprintf("xalloc: %s: %v", e.Msg, e.Arg) }

// ErrNoMem reports that the region provider refused to grow the heap.
// Alloc and Realloc never return this directly — they surface
// out-of-memory as a nil/false sentinel — but it is available to
// callers that want the underlying cause, e.g. via errors.As on a
// wrapped error from a diagnostic tool.
type ErrNoMem struct {
	Requested int64
	ChunkSize int64
	Err       error
}

func (e *ErrNoMem) Error() string {
	return fmt.Sprintf("xalloc: out of memory extending heap by %d bytes (chunk %d): %v", e.Requested, e.ChunkSize, e.Err)
}

func (e *ErrNoMem) Unwrap() error { return e.Err }

// ErrILSEQType enumerates the structural problems Verify can detect,
// trimmed from lldb's larger ErrILSEQ taxonomy to the invariants that
// actually apply to a byte-addressed, in-memory heap.
type ErrILSEQType int

const (
	// ErrHeaderFooterMismatch: a block's header and footer disagree.
	ErrHeaderFooterMismatch ErrILSEQType = iota
	// ErrAdjacentFree: two physically adjacent blocks are both free.
	ErrAdjacentFree
	// ErrMisaligned: a block's payload address is not A-aligned.
	ErrMisaligned
	// ErrFreeFlagMismatch: a free-list member's allocated-bit is set.
	ErrFreeFlagMismatch
	// ErrUnreachableFree: a free block is not reachable from the list head.
	ErrUnreachableFree
	// ErrOutOfBounds: a free-list member falls outside [Lo, Hi).
	ErrOutOfBounds
	// ErrListCycle: free-list traversal did not terminate.
	ErrListCycle
	// ErrSentinelDamaged: the prologue or epilogue is no longer allocated.
	ErrSentinelDamaged
)

// ErrILSEQ reports a structural corruption found by Verify: an "illegal
// sequence" of heap bytes, mirroring lldb's ErrILSEQ.
type ErrILSEQ struct {
	Type      ErrILSEQType
	Off       int64
	Arg, Arg2 int64
}

func (e *ErrILSEQ) Error() string {
	return fmt.Sprintf("xalloc: illegal heap sequence %d at offset %#x (arg %d, arg2 %d)", e.Type, e.Off, e.Arg, e.Arg2)
}
