// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package space

import (
	"errors"
	"testing"
	"unsafe"
)

func newSpace(t *testing.T, size int) *Space {
	t.Helper()
	s, err := New(size)
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})
	return s
}

func TestAllocateExactFree(t *testing.T) {
	s := newSpace(t, 64)
	if _, err := s.Allocate(64); err != nil {
		t.Fatalf("Allocate(64) on a 64 byte space: %v", err)
	}
	if s.Free() != 0 {
		t.Fatalf("Free() = %d, want 0", s.Free())
	}
	if _, err := s.Allocate(1); !errors.Is(err, ErrNoSpace) {
		t.Fatalf("Allocate(1) past capacity = %v, want ErrNoSpace", err)
	}
}

func TestAllocateIsContiguousAndZeroed(t *testing.T) {
	s := newSpace(t, 32)
	p1, err := s.Allocate(8)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.Allocate(8)
	if err != nil {
		t.Fatal(err)
	}
	if uintptr(p2)-uintptr(p1) != 8 {
		t.Fatalf("second allocation is not contiguous with the first")
	}
	if s.Used() != 16 {
		t.Fatalf("Used() = %d, want 16", s.Used())
	}
	for i, b := range unsafe.Slice((*byte)(p1), 16) {
		if b != 0 {
			t.Fatalf("allocated byte %d = %#x, want 0", i, b)
		}
	}
}

func TestContains(t *testing.T) {
	s := newSpace(t, 16)
	p, err := s.Allocate(8)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains(p) {
		t.Fatalf("Contains() false for an address inside the occupied region")
	}
}
