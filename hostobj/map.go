// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostobj

import "github.com/RubberDuckEng/vmgc/heap"

// Map is the key/value host object: a HashMap<HeapHandle<K>,
// HeapHandle<V>> in the source this package is modeled on, keyed on
// the §4.3 hash/equality rules (content for a heap.String key,
// address identity otherwise) rather than Go's native map key
// equality, which cannot be taught a custom Equal method. It is
// built as a separate-chaining table over heap.HeapHandle.Hash.
type Map[K, V any] struct {
	buckets [][]entry[K, V]
	count   int
}

type entry[K, V any] struct {
	key   heap.HeapHandle[K]
	value heap.HeapHandle[V]
}

const mapInitialBuckets = 8

func (m *Map[K, V]) ensureBuckets() {
	if m.buckets == nil {
		m.buckets = make([][]entry[K, V], mapInitialBuckets)
	}
}

func (m *Map[K, V]) bucketFor(h uint64) int {
	return int(h % uint64(len(m.buckets)))
}

// Trace implements heap.Traceable: both the key and the value of
// every entry are roots while the Map itself is reachable.
func (m *Map[K, V]) Trace(v *heap.Visitor) {
	for _, b := range m.buckets {
		for i := range b {
			b[i].key.Visit(v)
			b[i].value.Visit(v)
		}
	}
}

// Insert sets key's mapping to value, replacing any prior mapping
// for an equal key (per heap.HeapHandle.Equal, not Go identity).
func (m *Map[K, V]) Insert(key heap.LocalHandle[K], value heap.LocalHandle[V]) {
	m.ensureBuckets()
	if m.count >= len(m.buckets)*3/4 {
		m.grow()
	}
	k := heap.FromLocal(key)
	idx := m.bucketFor(k.Hash())
	for i := range m.buckets[idx] {
		if m.buckets[idx][i].key.Equal(&k) {
			m.buckets[idx][i].value = heap.FromLocal(value)
			return
		}
	}
	m.buckets[idx] = append(m.buckets[idx], entry[K, V]{key: k, value: heap.FromLocal(value)})
	m.count++
}

// Get looks up key and, if found, returns a fresh LocalHandle rooted
// in scope holding the mapped value.
func (m *Map[K, V]) Get(scope *heap.HandleScope, key heap.LocalHandle[K]) (heap.LocalHandle[V], bool) {
	var zero heap.LocalHandle[V]
	if m.buckets == nil {
		return zero, false
	}
	k := heap.FromLocal(key)
	idx := m.bucketFor(k.Hash())
	for i := range m.buckets[idx] {
		if m.buckets[idx][i].key.Equal(&k) {
			return heap.FromHeap(scope, &m.buckets[idx][i].value), true
		}
	}
	return zero, false
}

// Len reports the number of entries.
func (m *Map[K, V]) Len() int {
	return m.count
}

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.count == 0
}

func (m *Map[K, V]) grow() {
	old := m.buckets
	m.buckets = make([][]entry[K, V], len(old)*2)
	for _, b := range old {
		for _, e := range b {
			idx := m.bucketFor(e.key.Hash())
			m.buckets[idx] = append(m.buckets[idx], e)
		}
	}
}

// ForEach calls fn for every entry, stopping early if fn returns
// false. Iteration order is unspecified.
func (m *Map[K, V]) ForEach(fn func(key heap.HeapHandle[K], value heap.HeapHandle[V]) bool) {
	for _, b := range m.buckets {
		for _, e := range b {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}
