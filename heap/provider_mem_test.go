// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestMemProviderExtend(t *testing.T) {
	p := NewMemProvider()
	if g := len(p.Bytes()); g != 0 {
		t.Fatalf("fresh provider: got %d bytes, want 0", g)
	}

	n, err := p.Extend(128)
	if err != nil {
		t.Fatal(err)
	}
	if n != 128 || len(p.Bytes()) != 128 {
		t.Fatalf("got len %d/%d, want 128", n, len(p.Bytes()))
	}

	for i := range p.Bytes() {
		p.Bytes()[i] = byte(i)
	}

	n, err = p.Extend(64)
	if err != nil {
		t.Fatal(err)
	}
	if n != 192 {
		t.Fatalf("got %d, want 192", n)
	}
	for i := 0; i < 128; i++ {
		if g, e := p.Bytes()[i], byte(i); g != e {
			t.Fatalf("byte %d: got %d want %d, Extend did not preserve data", i, g, e)
		}
	}
}

func TestMemProviderExtendNegative(t *testing.T) {
	p := NewMemProvider()
	if _, err := p.Extend(-1); err == nil {
		t.Fatal("Extend(-1): expected error, got nil")
	}
}

func TestMemProviderShrink(t *testing.T) {
	p := NewMemProvider()
	if _, err := p.Extend(256); err != nil {
		t.Fatal(err)
	}
	for i := range p.Bytes() {
		p.Bytes()[i] = byte(i)
	}

	if err := p.Shrink(64); err != nil {
		t.Fatal(err)
	}
	if g := len(p.Bytes()); g != 192 {
		t.Fatalf("got %d, want 192", g)
	}
	for i := 0; i < 192; i++ {
		if g, e := p.Bytes()[i], byte(i); g != e {
			t.Fatalf("byte %d: got %d want %d", i, g, e)
		}
	}
}

func TestMemProviderShrinkOutOfRange(t *testing.T) {
	p := NewMemProvider()
	if _, err := p.Extend(32); err != nil {
		t.Fatal(err)
	}
	if err := p.Shrink(64); err == nil {
		t.Fatal("Shrink(64) on a 32-byte segment: expected error, got nil")
	}
	if err := p.Shrink(-1); err == nil {
		t.Fatal("Shrink(-1): expected error, got nil")
	}
}

func TestMemProviderPageSize(t *testing.T) {
	p := NewMemProvider()
	if g := p.PageSize(); g <= 0 {
		t.Fatalf("got %d, want > 0", g)
	}
}
