// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hostobj provides the built-in host objects required to
// make the heap package usable: List, the ordered-sequence
// container, and Map, the key/value container, alongside
// heap.String for the native string type.
package hostobj

import "github.com/RubberDuckEng/vmgc/heap"

// List is the ordered-sequence host object: a Vec<HeapHandle<T>> in
// the source this package is modeled on. It owns every element it
// holds and traces all of them.
type List[T any] struct {
	items []heap.HeapHandle[T]
}

// Trace implements heap.Traceable: every element is a root while the
// List itself is reachable.
func (l *List[T]) Trace(v *heap.Visitor) {
	for i := range l.items {
		l.items[i].Visit(v)
	}
}

// Push appends h's current value to the end of the list.
func (l *List[T]) Push(h heap.LocalHandle[T]) {
	l.items = append(l.items, heap.FromLocal(h))
}

// Pop removes and returns the last element as a fresh LocalHandle
// rooted in scope. It reports false on an empty list.
func (l *List[T]) Pop(scope *heap.HandleScope) (heap.LocalHandle[T], bool) {
	n := len(l.items)
	if n == 0 {
		var zero heap.LocalHandle[T]
		return zero, false
	}
	last := l.items[n-1]
	l.items = l.items[:n-1]
	return heap.FromHeap(scope, &last), true
}

// At returns the element at index i without rooting it; the caller
// must root it (heap.FromHeap) before it can outlive a collection.
func (l *List[T]) At(i int) heap.HeapHandle[T] {
	return l.items[i]
}

// Len reports the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool {
	return len(l.items) == 0
}

// Truncate shortens the list to its first n elements. It is a no-op
// if n >= Len().
func (l *List[T]) Truncate(n int) {
	if n < len(l.items) {
		l.items = l.items[:n]
	}
}

// SplitOff removes every element from index at onward and returns
// them as a new List, in order.
func (l *List[T]) SplitOff(at int) *List[T] {
	tail := append([]heap.HeapHandle[T](nil), l.items[at:]...)
	l.items = l.items[:at]
	return &List[T]{items: tail}
}

// First returns the first element, if any.
func (l *List[T]) First() (heap.HeapHandle[T], bool) {
	if len(l.items) == 0 {
		var zero heap.HeapHandle[T]
		return zero, false
	}
	return l.items[0], true
}

// Last returns the last element, if any.
func (l *List[T]) Last() (heap.HeapHandle[T], bool) {
	if len(l.items) == 0 {
		var zero heap.HeapHandle[T]
		return zero, false
	}
	return l.items[len(l.items)-1], true
}

// ForEach calls fn for every element in order, stopping early if fn
// returns false.
func (l *List[T]) ForEach(fn func(i int, h heap.HeapHandle[T]) bool) {
	for i, h := range l.items {
		if !fn(i, h) {
			return
		}
	}
}
