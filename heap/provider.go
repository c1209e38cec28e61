// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The segment provider abstraction. Mirrors the shape of lldb.Filer
// (ReadAt/WriteAt-by-offset, Size, Truncate) but narrowed to bounds,
// extend and page size, plus a tail shrink.
// The provider owns the only mutable backing store; the allocator never
// allocates or moves memory on its own.

package heap

// Provider is the lower interface: a single contiguous segment that can
// only grow (and, for providers that support it, shrink at the tail).
// A Provider is not safe for concurrent use, matching the allocator's
// own single-threaded contract.
type Provider interface {
	// Bytes returns a slice view of the currently committed segment.
	// The slice's identity may change after a call to Extend or
	// Shrink; callers MUST NOT cache a slice across such a call.
	Bytes() []byte

	// Extend grows the segment by exactly n bytes and returns the new
	// length. n is always a whole multiple of the grower's chunk size
	// in practice, but Provider implementations must not assume that.
	Extend(n int) (newLen int, err error)

	// Shrink removes the trailing n bytes of the segment: after a nil
	// return, Bytes MUST be exactly n bytes shorter, because the
	// segment growth controller derives the end sentinel's position
	// from the segment length. The controller only calls it to give
	// back whole free chunks at the tail, never to satisfy a
	// correctness requirement.
	Shrink(n int) error

	// PageSize reports the provider's native page size, used only for
	// a sanity check at initialization.
	PageSize() int
}
