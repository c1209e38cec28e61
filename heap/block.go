// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Block-level primitives: reading/writing boundary tags and the
// explicit policy's free-list pointers threaded through payload space.
//
// Blocks are addressed the way lldb addresses blocks: not by a raw
// unsafe.Pointer into possibly-relocated memory, but by an integer
// offset into whatever byte slice the current Provider.Bytes() call
// returns. Ptr plays the role lldb's int64 handle plays — a stable
// coordinate that survives the backing array being reallocated on
// growth, as long as every access goes back through the Provider.

package heap

// Ptr is an opaque reference to an allocated block's payload, returned
// by Allocate/ZeroAllocate/Resize and consumed by Free/Resize. The
// zero value is the null pointer.
type Ptr int

// readTag reads the word-sized tag at byte offset off.
func readTag(b []byte, off int) uintptr {
	var v uintptr
	for i := 0; i < wordSize; i++ {
		v = v<<8 | uintptr(b[off+i])
	}
	return v
}

// writeTag writes the word-sized tag v at byte offset off.
func writeTag(b []byte, off int, v uintptr) {
	for i := wordSize - 1; i >= 0; i-- {
		b[off+i] = byte(v)
		v >>= 8
	}
}

// footerOff returns the offset of header h's footer, given its size.
func footerOff(header int, size uintptr) int {
	return header + int(size) - wordSize
}

// writeBlockTags writes identical header and footer tags for a block
// of the given size and status — the only place either tag is ever
// written, so header == footer (invariant I2) holds by construction.
func writeBlockTags(b []byte, header int, size uintptr, allocated bool) {
	tag := packTag(size, allocated)
	writeTag(b, header, tag)
	writeTag(b, footerOff(header, size), tag)
}

// Free-list pointers occupy the first two payload words of a free
// block: next at payload+0, prev at payload+8 (payload == header+8).
func freeNextOff(header int) int { return header + wordSize }
func freePrevOff(header int) int { return header + 2*wordSize }

func readFreeNext(b []byte, header int) int { return int(readTag(b, freeNextOff(header))) }
func readFreePrev(b []byte, header int) int { return int(readTag(b, freePrevOff(header))) }

func writeFreeNext(b []byte, header, v int) { writeTag(b, freeNextOff(header), uintptr(v)) }
func writeFreePrev(b []byte, header, v int) { writeTag(b, freePrevOff(header), uintptr(v)) }
