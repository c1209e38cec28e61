// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Boundary-tag block layout: the on-heap encoding of a block's header
// and footer, word size, alignment, and the sentinel tags that frame
// the usable region.

package heap

const (
	// wordSize is the size, in bytes, of a header or footer tag.
	wordSize = 8

	// align is the block alignment/granularity in bytes. Every block
	// size is a multiple of align and every block begins at an
	// align-aligned offset relative to the heap's first usable byte.
	align = 32

	// minBlockSize is the smallest legal block: one header word, one
	// footer word, and 16 bytes of payload (which, while free, hold
	// the next/prev free-list pointers of the explicit policy).
	minBlockSize = align

	// overhead is the header+footer bytes charged against every block,
	// i.e. the difference between a block's size and its usable
	// payload length.
	overhead = 2 * wordSize

	// statusMask covers the low 3 reserved bits of a tag; only bit 0 is
	// currently meaningful, leaving room to encode further flags later
	// without changing the layout.
	statusMask = 0x7
	sizeMask   = ^uintptr(statusMask)

	statusFree      = 0
	statusAllocated = 1
)

// packTag packs a block size and allocation status into a single word-sized
// value, as stored in both the header and the footer.
func packTag(size uintptr, allocated bool) uintptr {
	t := size &^ statusMask
	if allocated {
		t |= statusAllocated
	}
	return t
}

func tagSize(t uintptr) uintptr { return t & sizeMask }
func tagAllocated(t uintptr) bool { return t&statusAllocated != 0 }

// roundUp32 rounds n plus the header/footer overhead up to the next
// multiple of align, with a floor of minBlockSize — the asize
// computation of spec §4.4 step 2.
func roundUp32(n int) int {
	if n < 0 {
		n = 0
	}
	asize := n + overhead
	if rem := asize % align; rem != 0 {
		asize += align - rem
	}
	if asize < minBlockSize {
		asize = minBlockSize
	}
	return asize
}

// sentinelTag is the tag value written into both framing sentinels:
// size 0, allocated, so that neighbor-lookups and traversal stop
// without a special-cased boundary test.
const sentinelTag = uintptr(statusAllocated)
