// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xalloc

import (
	"encoding/json"
	"os"

	"github.com/fsnotify/fsnotify"
)

// tunables is the on-disk shape WatchChunkSize reloads. Only ChunkSize
// is hot-reloadable today; growing this struct is how a future tunable
// gets added without touching the watch plumbing.
type tunables struct {
	ChunkSize int64 `json:"chunk_size"`
}

// SetChunkSize updates the heap's extension size for future extendHeap
// calls. Like every other Allocator method it assumes a single caller;
// a host that wires WatchChunkSize to it from a goroutine must still
// serialize with Alloc/Free/Realloc itself.
func (a *Allocator) SetChunkSize(n int64) {
	if n <= 0 {
		return
	}
	a.chunk = n
}

// WatchChunkSize watches path for writes and decodes it as tunables
// JSON on every change, pushing successfully decoded ChunkSize values
// onto the returned channel. This is the same fsnotify
// create-a-watcher-drain-its-events-into-a-buffered-channel shape used
// elsewhere in the retrieval pack for live config reload; xalloc itself
// never calls this — a host process wires it to Allocator.SetChunkSize.
// The returned close func stops the watcher and must be called exactly
// once.
func WatchChunkSize(path string) (<-chan int64, <-chan error, func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, nil, nil, err
	}

	values := make(chan int64, 8)
	errs := make(chan error, 8)

	go func() {
		defer close(values)
		defer close(errs)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				t, err := readTunables(path)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					continue
				}
				if t.ChunkSize > 0 {
					select {
					case values <- t.ChunkSize:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				default:
				}
			}
		}
	}()

	return values, errs, watcher.Close, nil
}

func readTunables(path string) (tunables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return tunables{}, err
	}
	var t tunables
	if err := json.Unmarshal(b, &t); err != nil {
		return tunables{}, err
	}
	return t, nil
}
