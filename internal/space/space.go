// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package space implements the primitive bump allocator the garbage
// collector copies objects into and out of. A Space is a single
// contiguous, page-aligned byte region acquired from the OS with
// mmap; allocation only ever advances a bump pointer, there is no
// freelist and no per-object bookkeeping.
package space

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ErrNoSpace is returned by Allocate when the Space does not have
// enough free bytes to satisfy a request. It is the Space-level
// building block for heap.ErrNoSpace; callers above this package
// should check for it with errors.Is.
var ErrNoSpace = errors.New("space: no space")

// A Space is a contiguous, page-aligned region of memory with a bump
// allocator over it. It never shrinks; the only way to reclaim its
// bytes is to Close it (the copying collector does this by
// discarding the old Space wholesale after a successful collection).
type Space struct {
	base unsafe.Pointer
	size int
	next int // offset from base of the first free byte
}

// New acquires a page-aligned region of the requested size from the
// OS. The region is zeroed by the kernel on mapping.
func New(size int) (*Space, error) {
	if size <= 0 {
		panic(fmt.Sprintf("space: invalid size %d", size))
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("space: mmap %d bytes: %w", size, err)
	}
	return &Space{
		base: unsafe.Pointer(&b[0]),
		size: size,
	}, nil
}

// Size returns the total capacity of the Space in bytes.
func (s *Space) Size() int {
	return s.size
}

// Used returns the number of bytes already allocated.
func (s *Space) Used() int {
	return s.next
}

// Free returns the number of bytes still available.
func (s *Space) Free() int {
	return s.size - s.next
}

// Allocate reserves n contiguous, zero-filled bytes and returns a
// pointer to the start of the reservation. It fails with ErrNoSpace
// if the Space does not have n free bytes; the Space is left
// unchanged on failure.
func (s *Space) Allocate(n int) (unsafe.Pointer, error) {
	if n < 0 {
		panic(fmt.Sprintf("space: invalid allocation size %d", n))
	}
	if n > s.size-s.next {
		return nil, ErrNoSpace
	}
	p := unsafe.Add(s.base, s.next)
	s.next += n
	return p, nil
}

// Base returns the address of the first byte of the region.
func (s *Space) Base() unsafe.Pointer {
	return s.base
}

// Contains reports whether p lies within the occupied portion of the
// Space (used by tests and diagnostics, not required by the hot
// allocation path).
func (s *Space) Contains(p unsafe.Pointer) bool {
	start := uintptr(s.base)
	off := uintptr(p) - start
	return off < uintptr(s.next)
}

// Close zeroes the occupied region and releases the mapping back to
// the OS. Close must be called at most once.
func (s *Space) Close() error {
	if s.base == nil {
		return nil
	}
	b := unsafe.Slice((*byte)(s.base), s.size)
	for i := range b[:s.next] {
		b[i] = 0
	}
	err := unix.Munmap(b)
	s.base = nil
	s.next = 0
	s.size = 0
	if err != nil {
		return fmt.Errorf("space: munmap: %w", err)
	}
	return nil
}
