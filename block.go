// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

import "encoding/binary"

const (
	// wordSize is the width of a header/footer word.
	wordSize = 4

	// alignment is A: every payload address handed back by Alloc and
	// every block size is a multiple of this.
	alignment = 8

	// minBlock is the smallest block the allocator ever places: header
	// + two link words + footer, all rounded up to alignment. 4W == 16.
	minBlock = 4 * wordSize

	// defaultChunkSize is how much the heap grows by when extendHeap
	// needs more than the request and Options.ChunkSize is unset.
	defaultChunkSize = 4096

	// sizeMask clears the low 3 bits of a header/footer word, leaving
	// the encoded size; allocMask reads the allocated bit out of bit 0.
	sizeMask  = ^int64(0x7)
	allocMask = int64(0x1)
)

// packWord encodes a block size (already a multiple of 8) and its
// allocated flag into a single header/footer word, mirroring the
// size|allocated bit-packing every boundary-tag allocator since K&R
// uses.
func packWord(size int64, allocated bool) uint32 {
	w := uint32(size) &^ 0x7
	if allocated {
		w |= 0x1
	}
	return w
}

// unpackWord splits a header/footer word back into size and allocated.
func unpackWord(w uint32) (size int64, allocated bool) {
	return int64(w) & sizeMask, w&uint32(allocMask) != 0
}

// readWordAt and writeWordAt are the allocator's only points of contact
// with the backing region.Provider for header/footer words: little
// endian, wordSize bytes.
func (a *Allocator) readWordAt(off int64) (uint32, error) {
	var buf [wordSize]byte
	if _, err := a.region.ReadAt(buf[:], off); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (a *Allocator) writeWordAt(off int64, w uint32) error {
	var buf [wordSize]byte
	binary.LittleEndian.PutUint32(buf[:], w)
	_, err := a.region.WriteAt(buf[:], off)
	return err
}

// headerOffset and footerOffset locate a block's boundary tags relative
// to its payload address bp. The header sits one word before bp; the
// footer sits at bp + size - 2*wordSize (size includes both tags).
func headerOffset(bp int64) int64 { return bp - wordSize }

func footerOffset(bp, size int64) int64 { return bp + size - 2*wordSize }

// size reads a block's size out of its header.
func (a *Allocator) size(bp int64) (int64, error) {
	w, err := a.readWordAt(headerOffset(bp))
	if err != nil {
		return 0, err
	}
	sz, _ := unpackWord(w)
	return sz, nil
}

// allocated reads a block's allocated bit out of its header.
func (a *Allocator) allocated(bp int64) (bool, error) {
	w, err := a.readWordAt(headerOffset(bp))
	if err != nil {
		return false, err
	}
	_, al := unpackWord(w)
	return al, nil
}

// writeBlock stamps both the header and footer of the block at bp with
// size and allocated, the single primitive every other operation in
// this package funnels boundary-tag writes through.
func (a *Allocator) writeBlock(bp, size int64, allocated bool) error {
	w := packWord(size, allocated)
	if err := a.writeWordAt(headerOffset(bp), w); err != nil {
		return err
	}
	return a.writeWordAt(footerOffset(bp, size), w)
}

// prevPhys and nextPhys locate the payload addresses of the blocks
// immediately to the left and right of bp in physical heap order, using
// only boundary tags: footer-of-prev sits right before bp's header, and
// bp's own size (from its header) tells us where the next block starts.
func (a *Allocator) nextPhys(bp, size int64) int64 {
	return bp + size
}

func (a *Allocator) prevPhys(bp int64) (int64, error) {
	footerW, err := a.readWordAt(bp - 2*wordSize)
	if err != nil {
		return 0, err
	}
	prevSize, _ := unpackWord(footerW)
	return bp - prevSize, nil
}

// alignUp rounds n up to the next multiple of alignment.
func alignUp(n int64) int64 {
	if r := n % alignment; r != 0 {
		n += alignment - r
	}
	return n
}

// adjustRequest turns a caller's requested payload size into the block
// size actually placed: header + footer + payload, aligned up, and
// never below minBlock. Ties at exactly alignment round up to minBlock
// since two link words must still fit when the block is later freed.
func adjustRequest(n int64) int64 {
	if n <= 0 {
		return minBlock
	}
	sz := alignUp(n + 2*wordSize)
	if sz < minBlock {
		sz = minBlock
	}
	return sz
}
