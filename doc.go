// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xalloc implements a general-purpose dynamic memory allocator
// over a single, contiguous, monotonically growing byte region obtained
// from a region.Provider.
//
// xalloc assumes a single caller (no internal locking) and exposes four
// operations: NewAllocator (initialize), Alloc, Free and Realloc. Every
// payload address it returns is 8-byte aligned and stays valid until
// freed; the allocator never moves a live allocation except as Realloc's
// contract already permits.
//
// Internally, every block — free or allocated — carries a header and
// footer boundary tag recording its size and allocated-bit. Free blocks
// are threaded into an explicit doubly linked list (package freelist)
// through their own payload bytes; placement is first-fit with
// splitting, and freeing eagerly coalesces with both physical neighbors
// using the block's boundary tags, the same four-case merge lldb's
// falloc.go performs on its own (handle, not byte) addressed blocks.
package xalloc
