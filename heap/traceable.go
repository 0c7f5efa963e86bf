// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"unsafe"

	"github.com/RubberDuckEng/vmgc/internal/tagged"
)

// Traceable is the capability every heap object's boxed native must
// provide: it must be able to visit every HeapHandle it transitively
// owns. Types that want content-based hashing or equality (for use as
// Map keys) additionally implement ObjectHasher and ObjectEqualer;
// everything else gets identity-based hash and equality on the
// object's address.
type Traceable interface {
	Trace(v *Visitor)
}

// ObjectHasher is an optional capability a Traceable implements to
// override the default address-based hash, the way a native string
// hashes its contents.
type ObjectHasher interface {
	ObjectHash() uint64
}

// ObjectEqualer is an optional capability a Traceable implements to
// override the default address-based equality.
type ObjectEqualer interface {
	ObjectEqual(other Traceable) bool
}

// Finalizer is an optional capability a Traceable implements to run
// cleanup when a collection determines it did not survive. It is the
// closest Go equivalent of a destructor; Collect guarantees it runs
// at most once, after the Space swap, so a Finalize method may safely
// allocate on the same Heap.
type Finalizer interface {
	Finalize()
}

// HostObject is the capability used for allocation dispatch: a type
// usable with Create/Take must be Traceable and
// (when created with Create) default-constructible.
type HostObject interface {
	Traceable
}

// traceableBox is the one Go-heap allocation a host object owns. It
// is the only strong reference to v; the payload word written into a
// Space never needs to be dereferenced as a Go pointer by anything
// other than the owning Heap, and the Heap always keeps box alive
// independently through its weaks table (see heap.go) for as long
// as the corresponding Space object exists. space.Space is backed by
// an OS mmap mapping, which the Go runtime's garbage collector does
// not scan, so the payload word is stored as an opaque uintptr
// handle rather than a live unsafe.Pointer.
type traceableBox struct {
	v Traceable
}

func storeTraceable(op tagged.ObjectPtr, box *traceableBox) {
	op.SetPayloadWord(uintptr(unsafe.Pointer(box)))
}

func loadTraceableBox(op tagged.ObjectPtr) *traceableBox {
	return (*traceableBox)(unsafe.Pointer(op.PayloadWord()))
}

func loadTraceable(op tagged.ObjectPtr) Traceable {
	return loadTraceableBox(op).v
}

// valueHash implements §4.3's bisection: non-objects hash their bit
// pattern, objects delegate to ObjectHash (falling back to address
// identity).
func valueHash(v tagged.TaggedValue) uint64 {
	if !v.IsObject() {
		return v.Bits()
	}
	ptr, err := v.TryObjectPtr()
	if err != nil {
		return v.Bits()
	}
	box := loadTraceableBox(ptr)
	if h, ok := box.v.(ObjectHasher); ok {
		return h.ObjectHash()
	}
	return uint64(uintptr(ptr.Addr()))
}

// valuesEqual implements §4.3's equality rules: non-objects compare
// bit-identical, objects delegate to ObjectEqual (falling back to
// address identity).
func valuesEqual(a, b tagged.TaggedValue) bool {
	if a.IsObject() != b.IsObject() {
		return false
	}
	if !a.IsObject() {
		return a.Bits() == b.Bits()
	}
	pa, errA := a.TryObjectPtr()
	pb, errB := b.TryObjectPtr()
	if errA != nil || errB != nil {
		return false
	}
	boxA := loadTraceableBox(pa)
	boxB := loadTraceableBox(pb)
	if e, ok := boxA.v.(ObjectEqualer); ok {
		return e.ObjectEqual(boxB.v)
	}
	return pa.Addr() == pb.Addr()
}
