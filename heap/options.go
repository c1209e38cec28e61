// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Policy selects how the allocator tracks free blocks.
type Policy int

const (
	// Implicit scans every block, free or allocated, in address order.
	Implicit Policy = iota
	// Explicit scans only a doubly-linked list of free blocks.
	Explicit
)

func (p Policy) String() string {
	switch p {
	case Implicit:
		return "implicit"
	case Explicit:
		return "explicit"
	default:
		return "invalid"
	}
}

const (
	// defaultChunkSize is CHUNK from spec §4.2: the growth unit.
	defaultChunkSize = 65536
	// defaultShrinkThreshold is SHRINKTHLD from spec §4.2.
	defaultShrinkThreshold = 16384
)

// Options amends the behavior of Initialize, the way dbm.Options
// amends DB creation. The zero value is a valid Options: it defaults
// to the Implicit policy, a 64KiB chunk size, and a 16KiB shrink
// threshold, so existing call sites that only care about picking a
// policy can write Options{Policy: Explicit} and get sensible defaults
// for everything else.
type Options struct {
	Policy          Policy
	ChunkSize       int
	ShrinkThreshold int
	LogLevel        int

	checked bool
}

// check validates and defaults o in place, mirroring (*dbm.Options).check.
func (o *Options) check() error {
	if o.checked {
		return nil
	}

	switch o.Policy {
	case Implicit, Explicit:
	default:
		return &ErrInvalidPolicy{Policy: o.Policy}
	}

	if o.ChunkSize == 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.ChunkSize%align != 0 || o.ChunkSize <= 64 {
		return &ErrInvariantViolation{Kind: InvSizeNotMultipleOf32, Info: "ChunkSize must be a multiple of 32 greater than 64"}
	}

	if o.ShrinkThreshold == 0 {
		o.ShrinkThreshold = defaultShrinkThreshold
	}

	o.checked = true
	return nil
}
