// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tagged

import (
	"testing"

	"github.com/RubberDuckEng/vmgc/internal/space"
)

func newSpace(t *testing.T, size int) *space.Space {
	t.Helper()
	sp, err := space.New(size)
	if err != nil {
		t.Fatalf("space.New(%d): %v", size, err)
	}
	t.Cleanup(func() {
		if err := sp.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})
	return sp
}

func TestNewHeaderAllocSize(t *testing.T) {
	sp := newSpace(t, 256)
	hp, err := NewHeader(sp, 8, Host)
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	h := hp.header()
	if h.PayloadSize() != 8 {
		t.Fatalf("PayloadSize() = %d, want 8", h.PayloadSize())
	}
	if h.AllocSize() != HeaderSize()+8 {
		t.Fatalf("AllocSize() = %d, want %d", h.AllocSize(), HeaderSize()+8)
	}
	if h.Type() != Host {
		t.Fatalf("Type() = %v, want Host", h.Type())
	}
	if _, ok := h.Forwarding(); ok {
		t.Fatal("freshly allocated header already has a forwarding pointer")
	}
}

func TestObjectPtrHeaderRoundTrip(t *testing.T) {
	sp := newSpace(t, 256)
	hp, err := NewHeader(sp, 16, Host)
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	op := hp.ObjectPtr()
	if op.HeaderPtr().Addr() != hp.Addr() {
		t.Fatalf("ObjectPtr.HeaderPtr() does not round-trip to the original header")
	}
}

func TestCopyObjectIsForwardingFree(t *testing.T) {
	src := newSpace(t, 256)
	dst := newSpace(t, 256)
	hp, err := NewHeader(src, 8, Host)
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	want := uintptr(42)
	hp.ObjectPtr().SetPayloadWord(want)

	newHp, err := CopyObject(dst, hp)
	if err != nil {
		t.Fatalf("CopyObject: %v", err)
	}
	if newHp.ObjectPtr().PayloadWord() != want {
		t.Fatal("CopyObject did not preserve the payload bytes")
	}
	if newHp.header().AllocSize() != hp.header().AllocSize() {
		t.Fatal("CopyObject changed the object's recorded size")
	}
	if _, ok := newHp.header().Forwarding(); ok {
		t.Fatal("copy of an unforwarded object carries a forwarding pointer")
	}
}
