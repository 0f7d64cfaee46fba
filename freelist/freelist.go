// Package freelist implements the strategies an Allocator uses to track
// free blocks: where a just-freed block gets threaded in, and how a
// placement request picks a candidate out of what's threaded.
package freelist

// Blocks is the minimal access a host heap exposes so a Lister can
// thread next/prev links through free-block payloads without knowing
// anything about header/footer wire format. bp is always the payload
// address of a block currently free.
type Blocks interface {
	Size(bp int64) (int64, error)
	Next(bp int64) (int64, error)
	SetNext(bp, v int64) error
	Prev(bp int64) (int64, error)
	SetPrev(bp, v int64) error
}

// Lister is a free-list strategy. xalloc.Allocator uses exactly one
// Lister instance for the lifetime of a heap; its own correctness
// (no cycles, no duplicates, membership iff allocated-bit clear) is the
// caller's responsibility to preserve by only calling Insert once per
// free transition and Remove once per reuse.
type Lister interface {
	// Insert threads bp (already marked free) into the list.
	Insert(b Blocks, bp int64) error

	// Remove splices bp (currently in the list) back out.
	Remove(b Blocks, bp int64) error

	// FirstFit returns the address of a free block of size >= need, or
	// 0 if none qualifies.
	FirstFit(b Blocks, need int64) (int64, error)

	// Head returns an arbitrary member of the list, or 0 if empty. Used
	// by Verify to walk list membership independently of heap order.
	Head() int64
}
