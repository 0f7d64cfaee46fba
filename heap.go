// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

import (
	"github.com/kristinnv12/malloclab/freelist"
	"github.com/kristinnv12/malloclab/region"
)

// Options configures a new Allocator, generalizing dbm.Options' pattern
// of exported fields plus a setDefaults step run once at open time.
type Options struct {
	// Region backs the heap. Required: NewAllocator returns ErrINVAL if
	// it is nil.
	Region region.Provider

	// ChunkSize is how many bytes extendHeap requests from Region at a
	// time, floored against the caller's immediate need. Zero means
	// defaultChunkSize.
	ChunkSize int64

	// Lister selects the free-list strategy. Nil means
	// freelist.NewExplicit(), the default.
	Lister freelist.Lister
}

func (o *Options) setDefaults() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.Lister == nil {
		o.Lister = freelist.NewExplicit()
	}
}

// DefaultOptions returns an Options wired to an in-memory region.Memory
// and the explicit free list, suitable for tests and for callers who
// don't need a custom backing store.
func DefaultOptions() Options {
	return Options{
		Region:    region.NewMemory(),
		ChunkSize: defaultChunkSize,
		Lister:    freelist.NewExplicit(),
	}
}

// Allocator is a dynamic memory allocator over a single, contiguous,
// monotonically growing byte region. It is not safe for concurrent use;
// callers that need concurrency serialize their own calls.
type Allocator struct {
	region region.Provider
	list   freelist.Lister
	chunk  int64

	prologue int64 // header offset of the prologue sentinel
	epilogue int64 // header offset of the epilogue sentinel

	extensions int64 // times extendHeap has grown the region
}

// NewAllocator lays out a fresh heap in opts.Region: a one-word
// alignment pad, a minBlock prologue sentinel (always allocated), and a
// zero-size epilogue sentinel (always allocated), then calls
// extendHeap once to obtain the first usable free block. This mirrors
// the prologue/epilogue bootstrap every boundary-tag allocator in the
// malloclab family performs before the first real Alloc.
func NewAllocator(opts Options) (*Allocator, error) {
	if opts.Region == nil {
		return nil, &ErrINVAL{Msg: "Options.Region must not be nil", Arg: nil}
	}
	opts.setDefaults()

	a := &Allocator{
		region: opts.Region,
		list:   opts.Lister,
		chunk:  opts.ChunkSize,
	}
	if err := a.init(); err != nil {
		return nil, err
	}
	return a, nil
}

// init writes the alignment pad and the prologue/epilogue sentinels,
// then performs the first heap extension.
func (a *Allocator) init() error {
	lo := a.region.Lo()
	// One word of padding so the prologue's payload address (lo +
	// 2*wordSize) lands on an 8-byte boundary.
	if _, err := a.region.Extend(wordSize); err != nil {
		return err
	}

	a.prologue = lo + wordSize
	prologuePayload := a.prologue + wordSize
	if _, err := a.region.Extend(minBlock); err != nil {
		return err
	}
	if err := a.writeBlock(prologuePayload, minBlock, true); err != nil {
		return err
	}

	a.epilogue = a.prologue + minBlock
	if _, err := a.region.Extend(wordSize); err != nil {
		return err
	}
	if err := a.writeWordAt(a.epilogue, packWord(0, true)); err != nil {
		return err
	}

	_, err := a.extendHeap(a.chunk)
	return err
}

// blocksAdapter implements freelist.Blocks over an Allocator's own
// boundary-tag-addressed blocks, threading next/prev links through the
// first two words of a free block's payload. It exists so package
// freelist never has to know about headers, footers or region.Provider.
type blocksAdapter struct {
	a *Allocator
}

func (a *Allocator) blocks() freelist.Blocks { return blocksAdapter{a} }

func (x blocksAdapter) Size(bp int64) (int64, error) { return x.a.size(bp) }

func (x blocksAdapter) Next(bp int64) (int64, error) {
	w, err := x.a.readWordAt(bp)
	if err != nil {
		return 0, err
	}
	return int64(w), nil
}

func (x blocksAdapter) SetNext(bp, v int64) error {
	return x.a.writeWordAt(bp, uint32(v))
}

func (x blocksAdapter) Prev(bp int64) (int64, error) {
	w, err := x.a.readWordAt(bp + wordSize)
	if err != nil {
		return 0, err
	}
	return int64(w), nil
}

func (x blocksAdapter) SetPrev(bp, v int64) error {
	return x.a.writeWordAt(bp+wordSize, uint32(v))
}
