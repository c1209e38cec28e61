// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The segment growth controller: wraps a Provider, grows the segment
// in fixed chunks, installs/relocates the framing sentinels, and fuses
// a newly reclaimed tail with any free block that was already there.

package heap

import (
	"log"
	"os"
)

// Heap is the allocator's global, single-threaded state: the segment
// provider, the active policy, and (for the Explicit policy) the
// free-list head. Every public entry point hangs off *Heap, the way
// every lldb.Allocator method hangs off *Allocator — packaged as one
// state object passed through every call rather than process-wide
// globals, even though a package-level convenience wrapper could
// re-expose the same thing as free functions if ever needed.
type Heap struct {
	p Provider

	policy          Policy
	chunkSize       int
	shrinkThreshold int

	start int // offset of the first real block's header; fixed at 32.
	end   int // offset of the current end sentinel's header.

	freeHead int // explicit policy only; 0 means the list is empty.

	logger   *log.Logger
	logLevel int
}

// New constructs a Heap bound to provider but does not yet install any
// blocks; callers must call Initialize before any other method.
func New(provider Provider) *Heap {
	return &Heap{
		p:      provider,
		logger: log.New(os.Stderr, "heap: ", log.LstdFlags),
	}
}

// Initialize installs the initial sentinels and the first free block
// spanning one chunk. It must precede all other calls and fails fatally
// (spec §7 category 2, a programmer error) if the segment is not empty.
func (h *Heap) Initialize(opts Options) error {
	if err := opts.check(); err != nil {
		abort(err)
	}

	if n := len(h.p.Bytes()); n != 0 {
		abort(&ErrNullHeapOnInit{Size: n})
	}

	h.policy = opts.Policy
	h.chunkSize = opts.ChunkSize
	h.shrinkThreshold = opts.ShrinkThreshold
	h.logLevel = opts.LogLevel

	if pg := h.p.PageSize(); pg > 0 && h.chunkSize%pg != 0 {
		h.logf(1, "chunk size %d is not a multiple of the provider page size %d", h.chunkSize, pg)
	}

	return h.growHeap(h.chunkSize)
}

// growHeap requests n more bytes from the provider, installs a new end
// sentinel n bytes later, and either fuses the reclaimed tail space
// with an already-free block or emits a brand new free block there.
func (h *Heap) growHeap(n int) error {
	oldLen := len(h.p.Bytes())

	newLen, err := h.p.Extend(n)
	if err != nil {
		return outOfMemory(n, err)
	}

	b := h.p.Bytes()

	if oldLen == 0 {
		h.start = align
		writeTag(b, h.start-wordSize, sentinelTag) // initial footer-only sentinel
		h.end = newLen - align
		writeTag(b, h.end, sentinelTag) // end header-only sentinel

		freeSize := uintptr(newLen - 2*align)
		writeBlockTags(b, h.start, freeSize, false)
		if h.policy == Explicit {
			h.freeHead = 0
			h.linkFree(b, h.start)
		}

		h.logf(1, "initialized heap: %d bytes usable", int(freeSize))
		return nil
	}

	oldEnd := oldLen - align
	newEnd := newLen - align

	prevFooter := oldEnd - wordSize
	prevTag := readTag(b, prevFooter)
	if !tagAllocated(prevTag) {
		prevSize := tagSize(prevTag)
		prevHeader := oldEnd - int(prevSize)
		writeBlockTags(b, prevHeader, prevSize+uintptr(n), false)
		h.logf(1, "grew heap by %d bytes, fused with free block@%d", n, prevHeader)
	} else {
		newHeader := oldEnd
		writeBlockTags(b, newHeader, uintptr(n), false)
		if h.policy == Explicit {
			h.linkFree(b, newHeader)
		}
		h.logf(1, "grew heap by %d bytes, new free block@%d", n, newHeader)
	}

	writeTag(b, newEnd, sentinelTag)
	h.end = newEnd
	return nil
}

// maybeShrink removes whole trailing chunks of free space once the
// heap's final block is free and at least ShrinkThreshold bytes long.
// It only ever discards complete chunkSize-sized units from the tail,
// per spec §4.2's "Shrink (optional)" — the Provider.Shrink call is a
// pure optimization, never required for correctness.
func (h *Heap) maybeShrink() {
	b := h.p.Bytes()
	footer := h.end - wordSize
	tag := readTag(b, footer)
	if tagAllocated(tag) {
		return
	}

	size := tagSize(tag)
	if int(size) < h.shrinkThreshold {
		return
	}

	chunks := int(size) / h.chunkSize
	if chunks == 0 {
		return
	}
	shrinkBy := chunks * h.chunkSize
	header := h.end - int(size)

	if err := h.p.Shrink(shrinkBy); err != nil {
		h.logf(1, "shrink by %d bytes failed: %v", shrinkBy, err)
		return
	}

	b = h.p.Bytes() // Shrink may have reallocated; re-fetch Bytes()
	if h.policy == Explicit {
		h.unlinkFree(b, header)
	}

	remaining := size - uintptr(shrinkBy)
	if remaining > 0 {
		writeBlockTags(b, header, remaining, false)
		if h.policy == Explicit {
			h.linkFree(b, header)
		}
	}

	h.end -= shrinkBy
	writeTag(b, h.end, sentinelTag)
	h.logf(1, "shrank heap by %d bytes", shrinkBy)
}

// SetLogLevel sets the diagnostic verbosity switch of spec §6. 0
// silences diagnostics; 1 logs growth/shrink events; 2 additionally
// logs every split/coalesce.
func (h *Heap) SetLogLevel(level int) {
	h.logLevel = level
}

func (h *Heap) logf(level int, format string, args ...interface{}) {
	if h.logLevel >= level {
		h.logger.Printf(format, args...)
	}
}
