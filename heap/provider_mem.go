// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"fmt"
	"os"
)

var _ Provider = (*MemProvider)(nil)

// MemProvider is the default, in-process Provider: a single growable
// byte slice. It is the segment-provider analogue of lldb.MemFiler,
// simplified because the segment here is always genuinely contiguous
// (never sparse) — a plain []byte suffices, no paged backing map is
// needed.
type MemProvider struct {
	buf []byte
}

// NewMemProvider returns an empty MemProvider.
func NewMemProvider() *MemProvider {
	return &MemProvider{}
}

// Bytes implements Provider.
func (p *MemProvider) Bytes() []byte { return p.buf }

// Extend implements Provider.
func (p *MemProvider) Extend(n int) (int, error) {
	if n < 0 {
		return len(p.buf), fmt.Errorf("heap: MemProvider.Extend: negative n (%d)", n)
	}

	grown := make([]byte, len(p.buf)+n)
	copy(grown, p.buf)
	p.buf = grown
	return len(p.buf), nil
}

// Shrink implements Provider. It trims the trailing n bytes. Because a
// Go slice's backing array cannot be partially released back to the
// OS, it copies the kept prefix into a fresh, shorter slice and leaves
// the old array to the garbage collector; the allocator must never
// rely on Shrink for correctness, only as an optional optimization, per
// spec §4.2.
func (p *MemProvider) Shrink(n int) error {
	if n < 0 || n > len(p.buf) {
		return fmt.Errorf("heap: MemProvider.Shrink: n (%d) out of range for a %d-byte segment", n, len(p.buf))
	}

	kept := make([]byte, len(p.buf)-n)
	copy(kept, p.buf[:len(kept)])
	p.buf = kept
	return nil
}

// PageSize implements Provider.
func (p *MemProvider) PageSize() int {
	return os.Getpagesize()
}
