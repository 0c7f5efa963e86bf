// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap implements a precise, moving, semi-space garbage
// collector paired with a 64-bit NaN-boxed tagged value and a
// handle-based rooting API, in the spirit of the lower-level
// internal/core and internal/gocore packages this module is built
// from: a small, unsafe-heavy representation of in-memory objects
// (internal/tagged, internal/space) with a typed, safe-to-use API
// layered on top (this package).
//
// A host (for example a bytecode interpreter) opens a HandleScope,
// allocates objects through it, mutates them, and lets the scope go
// out of scope; it calls Heap.Collect to reclaim unreachable objects
// and relocate survivors.
package heap

import (
	"github.com/RubberDuckEng/vmgc/internal/space"
	"github.com/RubberDuckEng/vmgc/internal/tagged"
)

const wordSize = 8 // bytes reserved for a Host payload's handle word

// weakEntry is one owning reference to a boxed Traceable. The Heap's
// weaks table is the only place a *traceableBox is kept reachable by
// an ordinary, GC-visible Go pointer; see traceable.go's box comment
// for why that matters.
type weakEntry struct {
	ptr tagged.ObjectPtr
	box *traceableBox
}

// Heap owns one active Space, the scope stack, the global root
// table, and the weaks table that owns every live boxed native.
type Heap struct {
	space   *space.Space
	sizeHalf int
	scopes  [][]HeapHandle[Any]
	globals []*HeapHandle[Any] // nil entries are free slots
	weaks   []weakEntry
}

// New acquires a Space of sizeBytes/2 bytes (the other half is
// reserved for the destination Space a future Collect allocates), so
// that the true peak footprint across a collection never exceeds
// sizeBytes. See SPEC_FULL.md's "Half-capacity destination Space"
// note.
func New(sizeBytes int) (*Heap, error) {
	half := sizeBytes / 2
	sp, err := space.New(half)
	if err != nil {
		return nil, wrapOutOfMemory(err)
	}
	return &Heap{space: sp, sizeHalf: half}, nil
}

// Used returns the number of bytes occupied in the active Space.
func (h *Heap) Used() int {
	return h.space.Used()
}

// Close releases the active Space. It is the caller's responsibility
// to call Close exactly once when the Heap is no longer needed;
// dropping every root first lets Collect reclaim everything, but
// Close is what actually returns the backing memory to the OS.
func (h *Heap) Close() error {
	return h.space.Close()
}

// emplace reserves a Host object in the active Space, registers its
// boxed native in the weaks table, and returns its ObjectPtr. The
// box is not yet rooted by any scope or global; the caller is
// responsible for rooting it (HandleScope.add does this for every
// creator in scope.go) before anything can trigger a collection.
func (h *Heap) emplace(v Traceable) (tagged.ObjectPtr, error) {
	hp, err := tagged.NewHeader(h.space, wordSize, tagged.Host)
	if err != nil {
		return tagged.ObjectPtr{}, wrapNoSpace(err)
	}
	op := hp.ObjectPtr()
	box := &traceableBox{v: v}
	storeTraceable(op, box)
	h.weaks = append(h.weaks, weakEntry{ptr: op, box: box})
	return op, nil
}

// Collect walks every root (every scope frame and every occupied
// global slot), copies every reachable object into a fresh Space,
// rewrites every root and every HeapHandle reachable from a root to
// point into it, drops boxed natives that did not survive, and swaps
// the fresh Space in as the active one.
//
// Ordering follows §5: trace roots, drain the copy queue, sweep
// weaks, swap Spaces, and only then finalize (run finalizers/drop
// doomed boxes) — so every reachable HeapHandle has already been
// rewritten before any destructor-equivalent runs, and destructors
// never observe a partially swapped heap.
func (h *Heap) Collect() error {
	dst, err := space.New(h.sizeHalf)
	if err != nil {
		return wrapOutOfMemory(err)
	}

	v := newVisitor(dst)
	for _, g := range h.globals {
		if g != nil {
			v.visit(g)
		}
	}
	for _, scope := range h.scopes {
		TraceHandles(v, scope)
	}
	v.drain()

	survivors := h.weaks[:0]
	var doomed []*traceableBox
	for _, entry := range h.weaks {
		if fwd, ok := entry.ptr.HeaderPtr().Header().Forwarding(); ok {
			survivors = append(survivors, weakEntry{ptr: fwd.ObjectPtr(), box: entry.box})
		} else {
			doomed = append(doomed, entry.box)
		}
	}
	h.weaks = survivors

	old := h.space
	h.space = dst
	if err := old.Close(); err != nil {
		return err
	}

	for _, box := range doomed {
		if f, ok := box.v.(Finalizer); ok {
			f.Finalize()
		}
	}
	return nil
}
