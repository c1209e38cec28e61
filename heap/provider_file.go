// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"os"

	"github.com/cznic/fileutil"
	"golang.org/x/sys/unix"
)

var _ Provider = (*FileProvider)(nil)

// FileProvider is an os.File backed Provider, the segment-provider
// analogue of lldb.SimpleFileFiler: it does not implement any
// transactional machinery, same as the teacher's "simple" variant, and
// is intended for use where persistence is not required.
//
// Unlike SimpleFileFiler it exposes the segment as a real []byte via
// mmap, because the allocator operates on the segment directly rather
// than through ReadAt/WriteAt — the heap IS the address space here,
// not a record store layered over one.
type FileProvider struct {
	file *os.File
	mem  []byte
}

// NewFileProvider returns a FileProvider backed by f, which must be
// empty (size 0) so that Initialize's "segment not empty" check (spec
// §6) behaves the same regardless of which Provider is used.
func NewFileProvider(f *os.File) (*FileProvider, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() != 0 {
		return nil, &ErrNullHeapOnInit{Size: int(fi.Size())}
	}

	return &FileProvider{file: f}, nil
}

// Bytes implements Provider.
func (p *FileProvider) Bytes() []byte { return p.mem }

// Extend implements Provider.
func (p *FileProvider) Extend(n int) (int, error) {
	if p.mem != nil {
		if err := unix.Munmap(p.mem); err != nil {
			return 0, err
		}
		p.mem = nil
	}

	newLen := 0
	if p.file != nil {
		fi, err := p.file.Stat()
		if err != nil {
			return 0, err
		}
		newLen = int(fi.Size()) + n
	}

	if err := p.file.Truncate(int64(newLen)); err != nil {
		return 0, err
	}

	mem, err := unix.Mmap(int(p.file.Fd()), 0, newLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return 0, err
	}

	p.mem = mem
	return newLen, nil
}

// Shrink implements Provider: it punches a real hole at the tail via
// fileutil.PunchHole, then truncates — the only Provider in this repo
// that actually returns pages to the OS, matching spec §4.2's "Shrink
// (optional)".
func (p *FileProvider) Shrink(n int) error {
	if n <= 0 {
		return nil
	}

	size := int64(len(p.mem))
	if err := unix.Munmap(p.mem); err != nil {
		return err
	}
	p.mem = nil

	if err := fileutil.PunchHole(p.file, size-int64(n), int64(n)); err != nil {
		return err
	}

	if err := p.file.Truncate(size - int64(n)); err != nil {
		return err
	}

	newLen := int(size - int64(n))
	if newLen == 0 {
		return nil
	}

	mem, err := unix.Mmap(int(p.file.Fd()), 0, newLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	p.mem = mem
	return nil
}

// PageSize implements Provider.
func (p *FileProvider) PageSize() int {
	return os.Getpagesize()
}

// Close unmaps the segment and closes the backing file.
func (p *FileProvider) Close() error {
	if p.mem != nil {
		if err := unix.Munmap(p.mem); err != nil {
			return err
		}
		p.mem = nil
	}
	return p.file.Close()
}
