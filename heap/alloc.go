// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The public API: Allocate, ZeroAllocate, Resize, Free. Orchestrates
// boundary-tag layout, the growth controller, the active search
// policy, and coalescing/splitting, the way lldb.Allocator's
// Alloc/Free/Realloc orchestrate nfo/link/unlink/makeFree.

package heap

// findFit locates a free block of at least asize bytes, growing the
// heap by one chunk and retrying exactly once on a miss (spec §4.3: "a
// miss triggers extend_heap followed by one recursive retry", bounded
// here to a loop rather than actual recursion per the design notes).
// The provider is always extended by exactly chunkSize (spec §6: Extend
// "is called only with n = CHUNK"); a request larger than one chunk
// can fail even after growth, which is the expected OutOfMemory path.
func (h *Heap) findFit(asize int) (int, error) {
	if header := h.search(asize); header != 0 {
		return header, nil
	}

	if err := h.growHeap(h.chunkSize); err != nil {
		return 0, err
	}

	if header := h.search(asize); header != 0 {
		return header, nil
	}

	return 0, outOfMemory(asize, nil)
}

// Allocate reserves n payload bytes and returns a Ptr to them, or the
// null Ptr if n == 0. It returns a non-nil error only for ErrOutOfMemory;
// all other failures are fatal and abort the process.
func (h *Heap) Allocate(n int) (Ptr, error) {
	if n == 0 {
		return 0, nil
	}

	asize := roundUp32(n)
	header, err := h.findFit(asize)
	if err != nil {
		return 0, err
	}

	b := h.p.Bytes()
	if h.policy == Explicit {
		h.unlinkFree(b, header)
	}

	h.split(b, header, asize)

	h.logf(2, "allocate(%d) -> block@%d", n, header)
	return Ptr(header + wordSize), nil
}

// ZeroAllocate is calloc(m, n): allocate(m*n) with the payload zeroed.
func (h *Heap) ZeroAllocate(m, n int) (Ptr, error) {
	total := m * n
	ptr, err := h.Allocate(total)
	if err != nil || ptr == 0 {
		return ptr, err
	}

	b := h.p.Bytes()
	off := int(ptr)
	clear(b[off : off+total])
	return ptr, nil
}

// Free releases the block backing ptr. A null ptr is a no-op. Freeing
// an already-free block is a fatal double-free (spec §7 category 2).
func (h *Heap) Free(ptr Ptr) {
	if ptr == 0 {
		return
	}

	header := int(ptr) - wordSize
	b := h.p.Bytes()

	tag := readTag(b, header)
	if !tagAllocated(tag) {
		abort(&ErrDoubleFree{Ptr: uintptr(ptr)})
	}

	size := tagSize(tag)
	h.coalesceFree(b, header, size)
	h.maybeShrink()
}

// Resize changes the payload size backing ptr, returning a new Ptr
// (which may equal ptr) or the null Ptr. Resize(nil, 0) returns null
// without side effects; Resize(ptr, 0) frees ptr and returns null, per
// spec §6/§4.6.
func (h *Heap) Resize(ptr Ptr, n int) (Ptr, error) {
	if ptr == 0 {
		return h.Allocate(n)
	}
	if n == 0 {
		h.Free(ptr)
		return 0, nil
	}

	header := int(ptr) - wordSize
	b := h.p.Bytes()

	tag := readTag(b, header)
	if !tagAllocated(tag) {
		abort(&ErrUseAfterFree{Ptr: uintptr(ptr)})
	}

	size := tagSize(tag)
	asize := roundUp32(n)

	if asize <= int(size) {
		return ptr, h.shrinkInPlace(b, header, size, asize)
	}

	if newPtr, grew := h.growIntoNext(b, header, size, asize); grew {
		return newPtr, nil
	}

	return h.relocate(ptr, header, size, n)
}

// shrinkInPlace implements spec §4.6 step 1: rewrite the block at the
// smaller size, then — if at least minBlockSize bytes remain — turn
// the remainder into a free block, coalescing it with the following
// block if that is free. The remainder's left neighbor check in
// coalesceFree necessarily sees the block just rewritten as allocated
// above, since that write happens first (see DESIGN.md's Open Question
// note on this ordering).
func (h *Heap) shrinkInPlace(b []byte, header int, size uintptr, asize int) error {
	writeBlockTags(b, header, uintptr(asize), true)

	remSize := size - uintptr(asize)
	if remSize == 0 {
		return nil
	}

	remHeader := header + asize
	writeBlockTags(b, remHeader, remSize, false)
	h.coalesceFree(b, remHeader, remSize)
	h.maybeShrink()
	return nil
}

// growIntoNext implements spec §4.6 step 2: if the immediately
// following block is free and the combined size covers asize, absorb
// it in place (splitting off a new remainder if one is left over).
func (h *Heap) growIntoNext(b []byte, header int, size uintptr, asize int) (Ptr, bool) {
	rightFree, rightHeader, rightSize, isTail := h.rightNeighbor(b, header, size)
	if isTail || !rightFree {
		return 0, false
	}

	combined := size + rightSize
	if combined < uintptr(asize) {
		return 0, false
	}

	if h.policy == Explicit {
		h.unlinkFree(b, rightHeader)
	}

	if int(combined)-asize >= minBlockSize {
		writeBlockTags(b, header, uintptr(asize), true)
		remHeader := header + asize
		remSize := combined - uintptr(asize)
		writeBlockTags(b, remHeader, remSize, false)
		if h.policy == Explicit {
			h.linkFree(b, remHeader)
		}
	} else {
		writeBlockTags(b, header, combined, true)
	}

	return Ptr(header + wordSize), true
}

// relocate implements spec §4.6 step 3: allocate a new block, copy the
// old usable payload verbatim, free the old block. On allocation
// failure the original block is left intact and null is returned.
func (h *Heap) relocate(ptr Ptr, header int, size uintptr, n int) (Ptr, error) {
	newPtr, err := h.Allocate(n)
	if err != nil {
		return 0, err
	}

	b := h.p.Bytes() // Allocate may have grown the heap; re-fetch.
	copyLen := int(size) - overhead
	copy(b[int(newPtr):int(newPtr)+copyLen], b[int(ptr):int(ptr)+copyLen])

	h.Free(ptr)
	return newPtr, nil
}
