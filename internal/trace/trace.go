// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace parses the allocator request scripts the cmd/xaheapd
// and cmd/xadump harnesses replay, a line-oriented format descended
// from the trace files in the malloclab exercise these tools exercise.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	xalloc "github.com/kristinnv12/malloclab"
)

// Verb identifies which of the three operations a line requests.
type Verb byte

const (
	Alloc   Verb = 'a'
	Free    Verb = 'f'
	Realloc Verb = 'r'
)

// Op is one parsed trace line: "a <id> <size>", "f <id>" or
// "r <id> <size>". id is an arbitrary caller-chosen token a script uses
// to refer back to a previous allocation; it is not a heap address.
type Op struct {
	Verb Verb
	ID   string
	Size int64
	Line int
}

// Parse reads a trace script, skipping blank lines and lines starting
// with '#'.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		op := Op{Line: lineNo}
		switch fields[0] {
		case "a":
			if len(fields) != 3 {
				return nil, fmt.Errorf("trace:%d: want 'a id size', got %q", lineNo, line)
			}
			op.Verb = Alloc
			op.ID = fields[1]
			sz, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("trace:%d: bad size: %w", lineNo, err)
			}
			op.Size = sz

		case "f":
			if len(fields) != 2 {
				return nil, fmt.Errorf("trace:%d: want 'f id', got %q", lineNo, line)
			}
			op.Verb = Free
			op.ID = fields[1]

		case "r":
			if len(fields) != 3 {
				return nil, fmt.Errorf("trace:%d: want 'r id size', got %q", lineNo, line)
			}
			op.Verb = Realloc
			op.ID = fields[1]
			sz, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("trace:%d: bad size: %w", lineNo, err)
			}
			op.Size = sz

		default:
			return nil, fmt.Errorf("trace:%d: unknown verb %q", lineNo, fields[0])
		}

		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// Run replays ops against a, resolving each op's ID against the
// pointers earlier ops in the same script returned. It stops at the
// first operation the allocator refuses and returns an error naming
// the offending line.
func Run(ops []Op, a *xalloc.Allocator) error {
	live := make(map[string]int64)
	for _, op := range ops {
		switch op.Verb {
		case Alloc:
			bp, ok := a.Alloc(op.Size)
			if !ok {
				return fmt.Errorf("trace:%d: alloc(%d) failed", op.Line, op.Size)
			}
			live[op.ID] = bp

		case Free:
			bp, ok := live[op.ID]
			if !ok {
				return fmt.Errorf("trace:%d: free of unknown id %q", op.Line, op.ID)
			}
			a.Free(bp)
			delete(live, op.ID)

		case Realloc:
			bp, ok := live[op.ID]
			if !ok {
				return fmt.Errorf("trace:%d: realloc of unknown id %q", op.Line, op.ID)
			}
			newBp, ok := a.Realloc(bp, op.Size)
			if !ok {
				return fmt.Errorf("trace:%d: realloc(%d) failed", op.Line, op.Size)
			}
			live[op.ID] = newBp
		}
	}
	return nil
}
