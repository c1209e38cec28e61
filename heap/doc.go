// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package heap implements a user-space dynamic memory allocator over a
single contiguous segment granted by a Provider. It is the classical
allocate/free/resize/zero-allocate interface built out of boundary-tag
bookkeeping, best-fit search, coalescing, and splitting.

The terms MUST or MUST NOT, where used in this documentation, are a
requirement for any alternative implementation aiming for compatibility
with this one.

Segment

A segment is a linear, contiguous sequence of bytes obtained from a
Provider (see the Provider interface). It grows in fixed-size chunks
(65536 bytes unless Options.ChunkSize says otherwise) and, optionally,
shrinks by whole chunks at the tail.

Blocks

The segment is carved into variable-size blocks, each framed by a
header and a footer boundary tag. A tag packs the block's total byte
length (header+payload+footer) and a 3-bit status, of which only bit 0
(allocated/free) is currently meaningful. Every block is a multiple of
32 bytes and begins at a 32-byte aligned offset.

	+--------+------------------------------+--------+
	| header |           payload            | footer |
	+--------+------------------------------+--------+
	  8 bytes         size - 16 bytes         8 bytes

A free block's payload holds, in its first two words, the next and
previous free-block offsets of the Explicit policy's doubly-linked free
list. These are irrelevant, and may be overwritten, once the block is
allocated.

Sentinels

A footer-only sentinel of size 0 (tagged allocated) immediately
precedes the first real block; a header-only sentinel of the same
shape immediately follows the last real block. Both terminate
traversal without special-case tests, exactly mirroring spec's sentinel
design: neither ever transitions out of the allocated state.

Pointers

Blocks are addressed by Ptr, an integer offset into whatever byte
slice the bound Provider currently exposes via Provider.Bytes — not a
raw unsafe.Pointer, since the Provider is free to reallocate its
backing array on growth. No two valid Ptrs refer to the same block
while both remain live.

Policies

Implicit scans every block in address order; Explicit scans only the
free list. Both implement best fit: the smallest free block at least
as large as the request, ties broken by first-encountered. A miss
triggers one heap growth and one retry; a second miss is OutOfMemory.

Concurrency

The allocator is single-threaded by contract: no method is safe for
concurrent use, and no method suspends or blocks except for whatever
the bound Provider's Extend chooses to do. Callers using a *Heap from
multiple goroutines MUST serialize externally.

*/
package heap
