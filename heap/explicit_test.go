// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

// TestExplicitFreeListOrdering exercises linkFree/unlinkFree directly,
// verifying head-insertion order and correct relinking on removal from
// the middle of the list, the way falloc_test.go pokes at FLT linkage.
func TestExplicitFreeListOrdering(t *testing.T) {
	h := newTestHeap(t, Explicit)
	b := h.p.Bytes()

	// The fresh heap's one free block is already on the list.
	first := h.freeHead
	if first == 0 {
		t.Fatal("freeHead is 0 after Initialize under the Explicit policy")
	}

	// Carve it into three same-size free blocks by hand so link order
	// is easy to reason about, bypassing Allocate/split.
	size := tagSize(readTag(b, first))
	h.unlinkFree(b, first)
	if h.freeHead != 0 {
		t.Fatalf("freeHead = %d after unlinking the only entry, want 0", h.freeHead)
	}

	third := size / 3 / align * align
	if third < align {
		t.Skip("chunk too small for this test to carve three blocks")
	}
	a, c, e := first, first+int(third), first+int(2*third)
	writeBlockTags(b, a, uintptr(third), false)
	writeBlockTags(b, c, uintptr(third), false)
	writeBlockTags(b, e, size-2*uintptr(third), false)

	h.linkFree(b, a)
	h.linkFree(b, c)
	h.linkFree(b, e)

	// Head insertion order: last linked is first out.
	if h.freeHead != e {
		t.Fatalf("freeHead = %d, want %d (last linked)", h.freeHead, e)
	}
	if readFreeNext(b, e) != c || readFreeNext(b, c) != a || readFreeNext(b, a) != 0 {
		t.Fatal("free list order does not match head-insertion order")
	}
	if readFreePrev(b, c) != e || readFreePrev(b, a) != c {
		t.Fatal("free list back-links are inconsistent")
	}

	// Unlinking the middle entry must relink its neighbors.
	h.unlinkFree(b, c)
	if readFreeNext(b, e) != a {
		t.Fatalf("after unlinking middle entry, head's next = %d, want %d", readFreeNext(b, e), a)
	}
	if readFreePrev(b, a) != e {
		t.Fatalf("after unlinking middle entry, tail's prev = %d, want %d", readFreePrev(b, a), e)
	}

	// Restore the original single free block for Check()'s benefit:
	// three adjacent free blocks would violate the no-adjacent-free
	// invariant Check enforces.
	h.unlinkFree(b, e)
	h.unlinkFree(b, a)
	writeBlockTags(b, first, size, false)
	h.linkFree(b, first)
	_ = h.Check()
}

// TestSearchExplicitPanicsOnCorruptEntry is a defensive check that
// searchExplicit notices free-list corruption rather than silently
// returning a bogus block (spec §7 category 3).
func TestSearchExplicitPanicsOnCorruptEntry(t *testing.T) {
	h := newTestHeap(t, Explicit)
	b := h.p.Bytes()

	header := h.freeHead
	writeTag(b, header, packTag(tagSize(readTag(b, header)), true)) // corrupt: mark allocated

	defer func() {
		if recover() == nil {
			t.Fatal("searchExplicit over a corrupt free-list entry: expected panic, got none")
		}
	}()
	h.searchExplicit(32)
}

func TestIsBetterFit(t *testing.T) {
	tab := []struct {
		best, size uintptr
		want       bool
	}{
		{128, 64, true},   // strictly smaller candidate wins
		{128, 128, false}, // tie does not replace (first-encountered wins)
		{64, 128, false},  // larger candidate loses
	}
	for _, x := range tab {
		if g := isBetterFit(x.best, x.size); g != x.want {
			t.Fatalf("isBetterFit(%d, %d) = %t, want %t", x.best, x.size, g, x.want)
		}
	}
}
