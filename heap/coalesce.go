// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Invariant-preserving block transformations: splitting a free block
// on allocation, and the four-case coalesce rule on free. Modeled on
// lldb.Allocator.free2's isolated/right-join/left-join/middle-join
// switch, adapted from handle-relative unlink/link to this package's
// single free list.

package heap

// split carves asize bytes off the free block at header, marks that
// prefix allocated, and — if at least minBlockSize bytes remain —
// emits a free remainder block immediately after it. The caller MUST
// have already removed header from the free list (Explicit policy);
// split only links the remainder back in.
func (h *Heap) split(b []byte, header int, asize int) {
	total := tagSize(readTag(b, header))

	if int(total)-asize >= minBlockSize {
		writeBlockTags(b, header, uintptr(asize), true)

		remHeader := header + asize
		remSize := total - uintptr(asize)
		writeBlockTags(b, remHeader, remSize, false)

		if h.policy == Explicit {
			h.linkFree(b, remHeader)
		}
		h.logf(2, "split block@%d into alloc %d + free@%d %d", header, asize, remHeader, int(remSize))
		return
	}

	// Exact fit: the difference is always either 0 or >= minBlockSize
	// because both asize and total are multiples of align (spec §4.4
	// step 5).
	writeBlockTags(b, header, total, true)
}

// leftNeighbor reports whether the block immediately preceding header
// is free, and if so its header offset and size.
func (h *Heap) leftNeighbor(b []byte, header int) (free bool, leftHeader int, leftSize uintptr) {
	if header == h.start {
		return false, 0, 0
	}

	tag := readTag(b, header-wordSize)
	if tagAllocated(tag) {
		return false, 0, 0
	}

	size := tagSize(tag)
	return true, header - int(size), size
}

// rightNeighbor reports whether the block immediately following the
// block of size at header is free, and if so its header offset and
// size. isTail reports whether there is no right neighbor at all
// (header+size is the end sentinel).
func (h *Heap) rightNeighbor(b []byte, header int, size uintptr) (free bool, rightHeader int, rightSize uintptr, isTail bool) {
	next := header + int(size)
	if next == h.end {
		return false, 0, 0, true
	}

	tag := readTag(b, next)
	if tagAllocated(tag) {
		return false, 0, 0, false
	}

	return true, next, tagSize(tag), false
}

// coalesceFree applies the four-case coalesce rule to the
// newly-freed block at header (size bytes) and writes the resulting
// merged block's header/footer exactly once, per spec §4.5.
func (h *Heap) coalesceFree(b []byte, header int, size uintptr) {
	leftFree, leftHeader, leftSize := h.leftNeighbor(b, header)
	rightFree, rightHeader, rightSize, _ := h.rightNeighbor(b, header, size)

	switch {
	case !leftFree && !rightFree:
		writeBlockTags(b, header, size, false)
		if h.policy == Explicit {
			h.linkFree(b, header)
		}
	case leftFree && !rightFree:
		if h.policy == Explicit {
			h.unlinkFree(b, leftHeader)
		}
		merged := leftSize + size
		writeBlockTags(b, leftHeader, merged, false)
		if h.policy == Explicit {
			h.linkFree(b, leftHeader)
		}
	case !leftFree && rightFree:
		if h.policy == Explicit {
			h.unlinkFree(b, rightHeader)
		}
		merged := size + rightSize
		writeBlockTags(b, header, merged, false)
		if h.policy == Explicit {
			h.linkFree(b, header)
		}
	default: // leftFree && rightFree
		if h.policy == Explicit {
			h.unlinkFree(b, leftHeader)
			h.unlinkFree(b, rightHeader)
		}
		merged := leftSize + size + rightSize
		writeBlockTags(b, leftHeader, merged, false)
		if h.policy == Explicit {
			h.linkFree(b, leftHeader)
		}
	}
	h.logf(2, "coalesced block@%d (left free=%t right free=%t)", header, leftFree, rightFree)
}
