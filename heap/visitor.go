// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"github.com/RubberDuckEng/vmgc/internal/space"
	"github.com/RubberDuckEng/vmgc/internal/tagged"
)

// Visitor is the copy-phase worker of a collection. Given a
// destination Space it copies every reachable object forward,
// installs a forwarding pointer in the object's old header, and
// rewrites every HeapHandle it encounters to point into the
// destination. It is only ever used for the duration of a single
// Heap.Collect call.
type Visitor struct {
	dst   *space.Space
	queue []tagged.ObjectPtr
}

func newVisitor(dst *space.Space) *Visitor {
	return &Visitor{dst: dst}
}

// visitHeader copies the object at src forward if it has not already
// been copied during this collection, and returns the header of the
// (possibly just-created) copy in the destination Space.
//
// A second visit of the same header during one collection returns the
// address chosen by the first visit (M2): visitHeader is a no-op on
// an object that already carries a forwarding pointer.
func (v *Visitor) visitHeader(src tagged.HeaderPtr) tagged.HeaderPtr {
	if fwd, ok := src.Header().Forwarding(); ok {
		return fwd
	}
	dstHeader, err := tagged.CopyObject(v.dst, src)
	if err != nil {
		// The destination was sized to hold every survivor; running
		// out here means the caller's capacity estimate was wrong.
		// Heap.Collect always allocates a destination the same size
		// as the source Space, so every survivor fits and this path
		// is unreachable from Collect.
		panic(err)
	}
	src.Header().SetForwarding(dstHeader)
	v.queue = append(v.queue, dstHeader.ObjectPtr())
	return dstHeader
}

// visit rewrites a single HeapHandle in place, copying its referent
// forward if it holds an object.
func (v *Visitor) visit(h *HeapHandle[Any]) {
	h.trace(v)
}

// TraceHandles visits every handle in a slice, in order.
func TraceHandles[T any](v *Visitor, handles []HeapHandle[T]) {
	for i := range handles {
		handles[i].trace(v)
	}
}

// TraceMaybeHandles visits every present handle in a slice of
// optional handles, in order, skipping empty (nil) slots, the shape
// of the sparse globals table.
func TraceMaybeHandles[T any](v *Visitor, handles []*HeapHandle[T]) {
	for _, h := range handles {
		if h != nil {
			h.trace(v)
		}
	}
}

// drain pops queued objects and traces their internals until no new
// object has been discovered. Each dequeued pointer addresses an
// object already copied into the destination Space; tracing it may
// enqueue further copies.
func (v *Visitor) drain() {
	for len(v.queue) > 0 {
		op := v.queue[0]
		v.queue = v.queue[1:]
		loadTraceable(op).Trace(v)
	}
}
