// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestCheckReportsStats(t *testing.T) {
	h := newTestHeap(t, Implicit)

	a, err := h.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.Allocate(16); err != nil {
		t.Fatal(err)
	}
	h.Free(a)

	st := h.Check()
	if st.TotalBlocks < 2 {
		t.Fatalf("got %+v, want at least 2 blocks", st)
	}
	if st.FreeBlocks == 0 {
		t.Fatalf("got %+v, want at least one free block after Free", st)
	}
	if len(st.LargestFree) != st.FreeBlocks {
		t.Fatalf("LargestFree has %d entries, want %d", len(st.LargestFree), st.FreeBlocks)
	}
	for i := 1; i < len(st.LargestFree); i++ {
		if st.LargestFree[i-1] < st.LargestFree[i] {
			t.Fatalf("LargestFree not sorted descending: %v", st.LargestFree)
		}
	}
	if s := st.String(); s == "" {
		t.Fatal("Stats.String() returned empty")
	}
}

func TestCheckDetectsHeaderFooterMismatch(t *testing.T) {
	h := newTestHeap(t, Implicit)
	b := h.p.Bytes()

	writeTag(b, h.start, packTag(64, false)) // footer left untouched at the old size

	defer func() {
		if recover() == nil {
			t.Fatal("corrupted header/footer pair: expected Check to panic")
		}
	}()
	h.Check()
}

func TestCheckDetectsAdjacentFreeBlocks(t *testing.T) {
	h := newTestHeap(t, Implicit)
	b := h.p.Bytes()

	// The whole usable region is one free block; carve it into two
	// adjacent free blocks by hand, which must never happen through
	// the public API (coalesceFree forbids it) but which Check must
	// still catch if it does.
	size := tagSize(readTag(b, h.start))
	half := size / 2 / align * align
	if half < align {
		t.Skip("chunk too small to carve in half")
	}
	writeBlockTags(b, h.start, half, false)
	writeBlockTags(b, h.start+int(half), size-half, false)

	defer func() {
		if recover() == nil {
			t.Fatal("two adjacent free blocks: expected Check to panic")
		}
	}()
	h.Check()
}

func TestCheckDetectsSentinelCorruption(t *testing.T) {
	h := newTestHeap(t, Implicit)
	b := h.p.Bytes()
	writeTag(b, h.end, packTag(0, false)) // end sentinel must never be free

	defer func() {
		if recover() == nil {
			t.Fatal("corrupted end sentinel: expected Check to panic")
		}
	}()
	h.Check()
}
