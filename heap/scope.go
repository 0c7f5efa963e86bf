// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/RubberDuckEng/vmgc/internal/tagged"

// HandleScope is a stack frame for roots. Opening a scope pushes a
// fresh frame onto the Heap's scope stack; closing it (Close) pops
// the frame, invalidating every LocalHandle issued from it. Scopes
// nest strictly: a HandleScope must be closed before any scope opened
// before it closes, which callers express naturally with defer.
//
// Reading or writing a LocalHandle after its HandleScope has closed
// is a programming error this package does not detect at runtime,
// the same documented (not enforced) contract the source this
// package follows describes for any host language without Rust's
// borrow checker.
type HandleScope struct {
	heap  *Heap
	index int
}

// NewHandleScope opens a new root frame on heap.
func NewHandleScope(heap *Heap) *HandleScope {
	index := len(heap.scopes)
	heap.scopes = append(heap.scopes, nil)
	return &HandleScope{heap: heap, index: index}
}

// Close pops this scope's frame. Close must be called exactly once,
// and only after every scope opened after this one has already
// closed; defer scope.Close() right after NewHandleScope achieves
// this automatically.
func (s *HandleScope) Close() {
	s.heap.scopes = s.heap.scopes[:s.index]
}

func (s *HandleScope) add(v tagged.TaggedValue) int {
	cells := &s.heap.scopes[s.index]
	index := len(*cells)
	*cells = append(*cells, HeapHandle[Any]{value: v})
	return index
}

func (s *HandleScope) getValue(index int) tagged.TaggedValue {
	return s.heap.scopes[s.index][index].value
}

func (s *HandleScope) setValue(index int, v tagged.TaggedValue) {
	s.heap.scopes[s.index][index].value = v
}

func newLocal[T any](s *HandleScope, v tagged.TaggedValue) LocalHandle[T] {
	return LocalHandle[T]{scope: s, index: s.add(v)}
}

// CreateNum roots a float64.
func (s *HandleScope) CreateNum(f float64) LocalHandle[float64] {
	return newLocal[float64](s, tagged.FromFloat64(f))
}

// CreateBool roots a bool.
func (s *HandleScope) CreateBool(b bool) LocalHandle[bool] {
	return newLocal[bool](s, tagged.FromBool(b))
}

// CreateNull roots the null singleton.
func (s *HandleScope) CreateNull() LocalHandle[Any] {
	return newLocal[Any](s, tagged.Null)
}

// Create default-constructs a T on the heap and roots it. PT is T's
// pointer type, which must implement Traceable; this is the standard
// way to spell "a pointer-receiver method set" as a generic
// constraint in Go.
func Create[T any, PT interface {
	*T
	Traceable
}](s *HandleScope) (LocalHandle[PT], error) {
	var zero T
	return Take[T, PT](s, zero)
}

// Take moves value onto the heap and roots it.
func Take[T any, PT interface {
	*T
	Traceable
}](s *HandleScope, value T) (LocalHandle[PT], error) {
	ptr := PT(&value)
	op, err := s.heap.emplace(ptr)
	if err != nil {
		return LocalHandle[PT]{}, err
	}
	return newLocal[PT](s, tagged.FromObjectPtr(op)), nil
}

// Str is shorthand for rooting a taken native string.
func (s *HandleScope) Str(str string) (LocalHandle[*String], error) {
	return Take[String, *String](s, String(str))
}

// FromGlobal returns a new local handle holding g's current value.
func FromGlobal[T any](s *HandleScope, g *GlobalHandle[T]) LocalHandle[T] {
	return newLocal[T](s, g.value())
}

// FromHeap returns a new local handle holding h's current value.
func FromHeap[T any](s *HandleScope, h *HeapHandle[T]) LocalHandle[T] {
	return newLocal[T](s, h.value)
}

// FromMaybeHeap is FromHeap for an optional HeapHandle, defaulting to
// null when h is nil.
func FromMaybeHeap[T any](s *HandleScope, h *HeapHandle[T]) LocalHandle[T] {
	if h == nil {
		return newLocal[T](s, tagged.Null)
	}
	return FromHeap(s, h)
}

// LocalHandle is a (scope, index) pair naming a slot inside a
// HandleScope's root frame. T is a phantom type used to select which
// typed accessors (AsRef, TryFloat64, ...) make sense.
type LocalHandle[T any] struct {
	scope *HandleScope
	index int
}

// Value returns the handle's current tagged value.
func (h LocalHandle[T]) Value() tagged.TaggedValue {
	return h.scope.getValue(h.index)
}

// SetValue overwrites the handle's current tagged value.
func (h LocalHandle[T]) SetValue(v tagged.TaggedValue) {
	h.scope.setValue(h.index, v)
}

// TaggedValueForTest exposes the raw TaggedValue for tests that need
// to inspect the wire-exact encoding, mirroring the ptr_for_test seam
// in the source this package is modeled on.
func (h LocalHandle[T]) TaggedValueForTest() tagged.TaggedValue {
	return h.Value()
}

func (h LocalHandle[T]) objectPtr() (tagged.ObjectPtr, error) {
	return h.Value().TryObjectPtr()
}

// TryFloat64 decodes the handle's value as a float64.
func (h LocalHandle[T]) TryFloat64() (float64, error) {
	f, err := h.Value().TryFloat64()
	if err != nil {
		return 0, ErrTypeError
	}
	return f, nil
}

// TryBool decodes the handle's value as a bool.
func (h LocalHandle[T]) TryBool() (bool, error) {
	b, err := h.Value().TryBool()
	if err != nil {
		return false, ErrTypeError
	}
	return b, nil
}

// EraseType discards T, yielding the untyped form.
func (h LocalHandle[T]) EraseType() LocalHandle[Any] {
	return LocalHandle[Any]{scope: h.scope, index: h.index}
}

// TryAsRef downcasts the handle to T, which must be a HostObject
// pointer type. It checks, in order: the value holds an object, the
// object's header is a Host object, and the boxed native's dynamic
// type is T.
func (h LocalHandle[T]) TryAsRef() (T, error) {
	var zero T
	op, err := h.objectPtr()
	if err != nil {
		return zero, ErrTypeError
	}
	if op.Header().Type() != tagged.Host {
		return zero, ErrTypeError
	}
	box := loadTraceableBox(op)
	t, ok := box.v.(T)
	if !ok {
		return zero, ErrTypeError
	}
	return t, nil
}

// AsRef is TryAsRef for a caller that has already type-checked and
// wants to panic on a broken invariant instead of handling an error.
func (h LocalHandle[T]) AsRef() T {
	t, err := h.TryAsRef()
	if err != nil {
		panic(err)
	}
	return t
}

// TryAs downcasts an untyped handle to S, a HostObject pointer type.
// It is the free-function form of TryAsRef, used when the static type
// at the call site is LocalHandle[Any] rather than LocalHandle[S].
func TryAs[S any](h LocalHandle[Any]) (S, error) {
	return LocalHandle[S]{scope: h.scope, index: h.index}.TryAsRef()
}

// ToGlobal copies h's current value into a new, long-lived global
// slot.
func ToGlobal[T any](h LocalHandle[T]) *GlobalHandle[T] {
	idx := -1
	for i, g := range h.scope.heap.globals {
		if g == nil {
			idx = i
			break
		}
	}
	cell := HeapHandle[Any]{value: h.Value()}
	if idx == -1 {
		idx = len(h.scope.heap.globals)
		h.scope.heap.globals = append(h.scope.heap.globals, &cell)
	} else {
		h.scope.heap.globals[idx] = &cell
	}
	return &GlobalHandle[T]{heap: h.scope.heap, index: idx}
}

// GlobalHandle is a long-lived root outside any scope. Its slot is
// released (the table entry cleared to nil) when the handle is
// dropped by calling Release; freed slots become available for
// reuse by a later ToGlobal, but existing slots never move, so
// holding a GlobalHandle across a Release of an unrelated handle is
// always safe.
type GlobalHandle[T any] struct {
	heap  *Heap
	index int
}

func (g *GlobalHandle[T]) value() tagged.TaggedValue {
	return g.heap.globals[g.index].value
}

// Release clears this global's slot. A GlobalHandle must not be used
// after Release.
func (g *GlobalHandle[T]) Release() {
	g.heap.globals[g.index] = nil
}
