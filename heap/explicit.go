// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Explicit free-list: a single doubly-linked list of free blocks,
// threaded through payload space (next at payload+0, prev at
// payload+8), in the spirit of lldb's FLT/flt.link/flt.unlink but
// without lldb's size-segregated buckets — spec §3 describes one
// list, not a table of lists.

package heap

// searchExplicit returns the header offset of a smallest-adequate free
// block (best fit), or 0 if the free list holds nothing big enough.
// Complexity is proportional to the free block count, not the total
// block count — the whole motivation for this policy (spec §4.3).
func (h *Heap) searchExplicit(asize int) int {
	b := h.p.Bytes()

	var best int
	var bestSize uintptr

	for header := h.freeHead; header != 0; header = readFreeNext(b, header) {
		tag := readTag(b, header)
		if tagAllocated(tag) {
			abort(&ErrInvariantViolation{Kind: InvFreeListInconsistent, Off: header, Info: "free-list entry not free"})
		}

		size := tagSize(tag)
		if size >= uintptr(asize) {
			if size == uintptr(asize) {
				return header
			}
			if best == 0 || isBetterFit(bestSize, size) {
				best, bestSize = header, size
			}
		}
	}

	return best
}

// linkFree inserts the free block at header at the head of the free
// list. Head insertion is the simplest strategy that preserves the "no
// two adjacent free blocks" invariant, which spec §4.5 explicitly
// leaves to the implementer.
func (h *Heap) linkFree(b []byte, header int) {
	next := h.freeHead
	writeFreeNext(b, header, next)
	writeFreePrev(b, header, 0)
	if next != 0 {
		writeFreePrev(b, next, header)
	}
	h.freeHead = header
}

// unlinkFree removes the free block at header from the free list.
func (h *Heap) unlinkFree(b []byte, header int) {
	prev := readFreePrev(b, header)
	next := readFreeNext(b, header)

	if prev != 0 {
		writeFreeNext(b, prev, next)
	} else {
		h.freeHead = next
	}

	if next != 0 {
		writeFreePrev(b, next, prev)
	}
}

// search dispatches to the active policy's best-fit search. It is the
// single matching site the design notes call for in place of a
// function-pointer dispatch table.
func (h *Heap) search(asize int) int {
	switch h.policy {
	case Explicit:
		return h.searchExplicit(asize)
	default:
		return h.searchImplicit(asize)
	}
}
