// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Xadump verifies a batch of allocator request scripts concurrently,
// one fresh heap per script, and reports pass/fail for each plus a
// combined exit status. It is the bulk counterpart to cmd/xaheapd.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	xalloc "github.com/kristinnv12/malloclab"
	"github.com/kristinnv12/malloclab/internal/trace"
)

var concurrency = flag.Int("j", 4, "max scripts verified concurrently")

type result struct {
	path string
	st   *xalloc.Stats
	err  error
}

func checkScript(path string) result {
	f, err := os.Open(path)
	if err != nil {
		return result{path: path, err: err}
	}
	defer f.Close()

	ops, err := trace.Parse(f)
	if err != nil {
		return result{path: path, err: err}
	}

	a, err := xalloc.NewAllocator(xalloc.DefaultOptions())
	if err != nil {
		return result{path: path, err: err}
	}

	if err := trace.Run(ops, a); err != nil {
		return result{path: path, err: err}
	}

	st, err := a.Verify(nil)
	return result{path: path, st: st, err: err}
}

func main() {
	log.SetFlags(0)
	flag.Parse()
	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("xadump: usage: xadump [-j N] script [script...]")
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*concurrency)

	results := make([]result, len(paths))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = checkScript(p)
			return nil
		})
	}
	// errgroup only short-circuits on a returned error; checkScript
	// reports failures through result.err instead, so every script
	// always gets a verdict.
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Printf("OK   %s: total=%d alloc=%d/%d free=%d/%d extensions=%d\n",
			r.path, r.st.TotalBytes, r.st.AllocBytes, r.st.AllocBlocks, r.st.FreeBytes, r.st.FreeBlocks, r.st.Extensions)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
