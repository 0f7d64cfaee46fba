// Package region implements the raw storage providers an Allocator draws
// heap bytes from: a byte-addressable space that only ever grows.
package region

import "errors"

// ErrInvalidExtend is returned by Extend when asked to grow by a
// non-positive number of bytes.
var ErrInvalidExtend = errors.New("region: extend size must be positive")

// Provider is the contract the allocator core requires from a raw
// memory region: a byte-addressable space that only ever grows, never
// shrinks, and exposes its current bounds.
//
// A Provider is not safe for concurrent use; like lldb.Filer, it is
// meant to be driven by a single caller (here, one Allocator).
type Provider interface {
	// Lo returns the first valid offset in the region. It never changes
	// after the region has been created.
	Lo() int64

	// Hi returns one past the last valid offset. It only increases,
	// and only via Extend.
	Hi() int64

	// Extend grows the region by exactly n bytes and returns the offset
	// at which the new bytes begin (the Hi before growing). It returns
	// ErrInvalidExtend for n <= 0, and a provider-specific fault error
	// if the underlying storage cannot grow.
	Extend(n int64) (int64, error)

	// ReadAt copies len(b) bytes starting at off into b. It is an error
	// to read outside [Lo, Hi).
	ReadAt(b []byte, off int64) (int, error)

	// WriteAt copies b into the region starting at off. It is an error
	// to write outside [Lo, Hi).
	WriteAt(b []byte, off int64) (int, error)
}
