// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The diagnostic self-check: a read-only traversal that verifies every
// universal invariant (spec §8 I1-I5) and reports a tabular summary,
// the way lldb.Allocator.Verify walks a Filer and fills an AllocStats.

package heap

import (
	"fmt"
	"sort"

	"github.com/cznic/sortutil"
)

// Stats summarizes a successful Check, a direct descendant of
// lldb.AllocStats renamed to this package's vocabulary.
type Stats struct {
	TotalBlocks    int
	FreeBlocks     int
	AllocatedBytes int
	FreeBytes      int

	// LargestFree holds the usable payload size of each free block
	// (block size minus header and footer), largest first — the
	// "tabular dump" spec §6 asks check() to print.
	LargestFree []int
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"blocks=%d (free=%d) allocated=%dB free=%dB largest-free=%v",
		s.TotalBlocks, s.FreeBlocks, s.AllocatedBytes, s.FreeBytes, s.LargestFree,
	)
}

// Check traverses the entire heap, verifying I1-I5, and returns a
// Stats summary. Any structural violation it finds is fatal (spec §7
// category 3) and aborts the process rather than being returned,
// since it indicates client-side corruption that cannot be safely
// recovered from.
func (h *Heap) Check() Stats {
	b := h.p.Bytes()

	var st Stats
	var freeSizes []int64
	var prevFree bool
	var total uintptr

	for header := h.start; header < h.end; {
		tag := readTag(b, header)
		size := tagSize(tag)

		if size == 0 || size%align != 0 {
			abort(&ErrInvariantViolation{Kind: InvSizeNotMultipleOf32, Off: header, Info: fmt.Sprintf("size=%d", size)})
		}

		footer := readTag(b, footerOff(header, size))
		if footer != tag {
			abort(&ErrInvariantViolation{Kind: InvHeaderFooterMismatch, Off: header})
		}

		allocated := tagAllocated(tag)
		st.TotalBlocks++
		total += size

		if allocated {
			st.AllocatedBytes += int(size) - overhead
			prevFree = false
		} else {
			if prevFree {
				abort(&ErrInvariantViolation{Kind: InvAdjacentFree, Off: header})
			}
			st.FreeBlocks++
			st.FreeBytes += int(size) - overhead
			freeSizes = append(freeSizes, int64(size)-overhead)
			prevFree = true
		}

		header += int(size)
	}

	if int(total) != h.end-h.start {
		abort(&ErrInvariantViolation{Kind: InvTraversalOverrun, Off: h.start, Info: "sum of block sizes != usable region length"})
	}

	startTag := readTag(b, h.start-wordSize)
	endTag := readTag(b, h.end)
	if startTag != sentinelTag || endTag != sentinelTag {
		abort(&ErrInvariantViolation{Kind: InvSentinelCorrupt})
	}

	if h.policy == Explicit {
		h.checkFreeList(b, st.FreeBlocks)
	}

	sort.Sort(sort.Reverse(sortutil.Int64Slice(freeSizes)))
	st.LargestFree = make([]int, len(freeSizes))
	for i, v := range freeSizes {
		st.LargestFree[i] = int(v)
	}

	return st
}

// checkFreeList verifies I5: the free-list contains exactly the
// traversal-discovered free blocks, in both link directions.
func (h *Heap) checkFreeList(b []byte, wantFree int) {
	count := 0
	prev := 0
	for header := h.freeHead; header != 0; header = readFreeNext(b, header) {
		count++
		if count > wantFree {
			abort(&ErrInvariantViolation{Kind: InvFreeListInconsistent, Off: header, Info: "free list longer than free block count"})
		}

		tag := readTag(b, header)
		if tagAllocated(tag) {
			abort(&ErrInvariantViolation{Kind: InvFreeListInconsistent, Off: header, Info: "listed block not free"})
		}

		if readFreePrev(b, header) != prev {
			abort(&ErrInvariantViolation{Kind: InvFreeListInconsistent, Off: header, Info: "prev pointer mismatch"})
		}

		prev = header
	}

	if count != wantFree {
		abort(&ErrInvariantViolation{Kind: InvFreeListInconsistent, Info: "free list shorter than free block count"})
	}
}
