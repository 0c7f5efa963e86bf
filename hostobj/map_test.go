// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostobj

import (
	"testing"

	"github.com/RubberDuckEng/vmgc/heap"
)

func TestMapInsertGet(t *testing.T) {
	h := newTestHeap(t)
	scope := heap.NewHandleScope(h)
	defer scope.Close()

	m, err := heap.Take[Map[*heap.String, float64], *Map[*heap.String, float64]](scope, Map[*heap.String, float64]{})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	mp := m.AsRef()

	key, err := scope.Str("answer")
	if err != nil {
		t.Fatalf("Str: %v", err)
	}
	mp.Insert(key, scope.CreateNum(42))

	sameKey, err := scope.Str("answer")
	if err != nil {
		t.Fatalf("Str: %v", err)
	}
	got, ok := mp.Get(scope, sameKey)
	if !ok {
		t.Fatal("Get did not find a key with identical contents but a different address")
	}
	f, err := got.TryFloat64()
	if err != nil || f != 42 {
		t.Fatalf("Get() = %v, %v, want 42, nil", f, err)
	}
}

func TestMapInsertReplacesExistingKey(t *testing.T) {
	h := newTestHeap(t)
	scope := heap.NewHandleScope(h)
	defer scope.Close()

	m, err := heap.Take[Map[*heap.String, float64], *Map[*heap.String, float64]](scope, Map[*heap.String, float64]{})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	mp := m.AsRef()

	key, _ := scope.Str("x")
	mp.Insert(key, scope.CreateNum(1))
	mp.Insert(key, scope.CreateNum(2))
	if mp.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after replacing the same key", mp.Len())
	}
	got, _ := mp.Get(scope, key)
	f, _ := got.TryFloat64()
	if f != 2 {
		t.Fatalf("Get() = %v, want 2", f)
	}
}

// Scenario 5: string keys survive a collection by content, not by the
// address of the particular String object that created them.
func TestStringKeysSurviveCollection(t *testing.T) {
	h := newTestHeap(t)

	var g *heap.GlobalHandle[*Map[*heap.String, float64]]
	func() {
		scope := heap.NewHandleScope(h)
		defer scope.Close()
		m, err := heap.Take[Map[*heap.String, float64], *Map[*heap.String, float64]](scope, Map[*heap.String, float64]{})
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
		key, err := scope.Str("persistent")
		if err != nil {
			t.Fatalf("Str: %v", err)
		}
		m.AsRef().Insert(key, scope.CreateNum(7))
		g = heap.ToGlobal(m)
	}()

	if err := h.Collect(); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	scope := heap.NewHandleScope(h)
	defer scope.Close()
	m := heap.FromGlobal(scope, g)
	lookupKey, err := scope.Str("persistent")
	if err != nil {
		t.Fatalf("Str: %v", err)
	}
	got, ok := m.AsRef().Get(scope, lookupKey)
	if !ok {
		t.Fatal("lookup by a freshly allocated, content-equal key failed after a collection")
	}
	f, err := got.TryFloat64()
	if err != nil || f != 7 {
		t.Fatalf("Get() = %v, %v, want 7, nil", f, err)
	}
}
