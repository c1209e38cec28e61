// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Implicit free-list best-fit search: a linear scan of every block,
// free or allocated, from the first real block to the end sentinel.
// Complexity is proportional to total block count.

package heap

import "github.com/cznic/mathutil"

// isBetterFit reports whether a candidate free block of size beats the
// current best of bestSize, the way lldb.Allocator.Verify clamps a
// read request with mathutil.MinInt64 rather than a hand-rolled if.
func isBetterFit(bestSize, size uintptr) bool {
	return mathutil.MinInt64(int64(size), int64(bestSize)) < int64(bestSize)
}

// searchImplicit returns the header offset of a smallest-adequate free
// block (best fit, ties broken by first-encountered), or 0 if none
// exists. It never grows the heap; that is findFit's job.
func (h *Heap) searchImplicit(asize int) int {
	b := h.p.Bytes()

	var best int
	var bestSize uintptr

	header := h.start
	for header < h.end {
		tag := readTag(b, header)
		size := tagSize(tag)
		if size == 0 {
			abort(&ErrInvariantViolation{Kind: InvTraversalOverrun, Off: header})
		}

		if !tagAllocated(tag) && size >= uintptr(asize) {
			if size == uintptr(asize) {
				return header
			}
			if best == 0 || isBetterFit(bestSize, size) {
				best, bestSize = header, size
			}
		}

		header += int(size)
	}

	if header != h.end {
		abort(&ErrInvariantViolation{Kind: InvTraversalOverrun, Off: header})
	}

	return best
}
