// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Xaheapd replays a single allocator request script against a fresh
// heap and reports the resulting Stats, the reference driver for the
// scripts cmd/xadump verifies in bulk.
package main

import (
	"flag"
	"log"
	"os"

	xalloc "github.com/kristinnv12/malloclab"
	"github.com/kristinnv12/malloclab/internal/trace"
	"github.com/kristinnv12/malloclab/region"
)

var (
	script    = flag.String("f", "", "trace script path (required)")
	chunkSize = flag.Int64("chunk", 0, "heap extension chunk size in bytes (0: default)")
	mapped    = flag.Bool("mmap", false, "back the heap with an anonymous mmap region instead of memory pages")
	verify    = flag.Bool("verify", true, "run Verify after replaying the script")
)

func main() {
	log.SetFlags(0)
	flag.Parse()
	if *script == "" {
		log.Fatal("xaheapd: -f is required")
	}

	f, err := os.Open(*script)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	ops, err := trace.Parse(f)
	if err != nil {
		log.Fatal(err)
	}

	opts := xalloc.DefaultOptions()
	if *chunkSize > 0 {
		opts.ChunkSize = *chunkSize
	}
	if *mapped {
		r, err := region.NewMapped(opts.ChunkSize)
		if err != nil {
			log.Fatal(err)
		}
		opts.Region = r
	}

	a, err := xalloc.NewAllocator(opts)
	if err != nil {
		log.Fatal(err)
	}

	if err := trace.Run(ops, a); err != nil {
		log.Fatal(err)
	}

	if *verify {
		st, err := a.Verify(func(err error) bool {
			log.Print(err)
			return true
		})
		if err != nil {
			log.Fatalf("verify found corruption: %v", err)
		}
		log.Printf("total=%d alloc=%d/%d free=%d/%d extensions=%d",
			st.TotalBytes, st.AllocBytes, st.AllocBlocks, st.FreeBytes, st.FreeBlocks, st.Extensions)
	}
}
