// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrOutOfMemory is returned (not panicked) whenever the segment
// provider refuses to grow the heap far enough to satisfy a request.
// The heap remains valid; a caller may retry later.
type ErrOutOfMemory struct {
	Requested int
	Cause     error
}

func (e *ErrOutOfMemory) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("heap: out of memory requesting %d bytes: %v", e.Requested, e.Cause)
	}
	return fmt.Sprintf("heap: out of memory requesting %d bytes", e.Requested)
}

func (e *ErrOutOfMemory) Unwrap() error { return e.Cause }

func outOfMemory(requested int, cause error) *ErrOutOfMemory {
	if cause != nil {
		cause = errors.Wrap(cause, "segment provider")
	}
	return &ErrOutOfMemory{Requested: requested, Cause: cause}
}

// ErrDoubleFree is a fatal programmer error: the client called Free on
// a pointer that does not back a currently allocated block.
type ErrDoubleFree struct {
	Ptr uintptr
}

func (e *ErrDoubleFree) Error() string {
	return fmt.Sprintf("heap: double free of block at %#x", e.Ptr)
}

// ErrUseAfterFree is a fatal programmer error: the client called
// Resize on a pointer that does not back a currently allocated block.
// Same category as ErrDoubleFree (spec §7 category 2) — the block
// itself is structurally fine, it is simply not the caller's to touch.
type ErrUseAfterFree struct {
	Ptr uintptr
}

func (e *ErrUseAfterFree) Error() string {
	return fmt.Sprintf("heap: Resize of a freed block at %#x", e.Ptr)
}

// ErrNullHeapOnInit is the panic value of Initialize when the segment
// is not empty at entry; NewFileProvider returns it for a non-empty
// file.
type ErrNullHeapOnInit struct {
	Size int
}

func (e *ErrNullHeapOnInit) Error() string {
	return fmt.Sprintf("heap: Initialize called on non-empty segment (%d bytes)", e.Size)
}

// ErrInvalidPolicy is returned by Options.check, and is the panic value
// of Initialize, for an unrecognized Policy.
type ErrInvalidPolicy struct {
	Policy Policy
}

func (e *ErrInvalidPolicy) Error() string {
	return fmt.Sprintf("heap: invalid policy %d", e.Policy)
}

// InvariantKind enumerates the structural invariants Check verifies.
type InvariantKind int

const (
	// InvHeaderFooterMismatch: a block's header tag and footer tag disagree.
	InvHeaderFooterMismatch InvariantKind = iota
	// InvSizeNotMultipleOf32: a block's size is not a positive multiple of 32.
	InvSizeNotMultipleOf32
	// InvTraversalOverrun: block traversal ran past the end sentinel.
	InvTraversalOverrun
	// InvAdjacentFree: two adjacent blocks are both free.
	InvAdjacentFree
	// InvFreeListInconsistent: the explicit free-list content disagrees
	// with the set of free blocks found during traversal.
	InvFreeListInconsistent
	// InvSentinelCorrupt: an initial or end sentinel is not allocated/size-0.
	InvSentinelCorrupt
)

func (k InvariantKind) String() string {
	switch k {
	case InvHeaderFooterMismatch:
		return "header/footer mismatch"
	case InvSizeNotMultipleOf32:
		return "size not a multiple of 32"
	case InvTraversalOverrun:
		return "traversal overrun"
	case InvAdjacentFree:
		return "adjacent free blocks"
	case InvFreeListInconsistent:
		return "free-list inconsistent"
	case InvSentinelCorrupt:
		return "sentinel corrupt"
	default:
		return fmt.Sprintf("invariant(%d)", int(k))
	}
}

// ErrInvariantViolation is fatal: it indicates heap corruption detected
// by Check, most likely caused by client-side memory corruption.
// Options.check also reports a ChunkSize that is not a multiple of 32
// greater than 64 with this type.
type ErrInvariantViolation struct {
	Kind InvariantKind
	Off  int
	Info string
}

func (e *ErrInvariantViolation) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("heap: invariant violation (%s) at offset %d: %s", e.Kind, e.Off, e.Info)
	}
	return fmt.Sprintf("heap: invariant violation (%s) at offset %d", e.Kind, e.Off)
}

// abort is the fatal-error path for programmer errors and invariant
// violations: categories 2 and 3 of spec §7 are not locally
// recoverable and must not be silently papered over.
func abort(err error) {
	panic(err)
}
