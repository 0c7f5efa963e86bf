// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostobj

import (
	"testing"

	"github.com/RubberDuckEng/vmgc/heap"
)

func newTestHeap(t *testing.T) *heap.Heap {
	t.Helper()
	h, err := heap.New(4096)
	if err != nil {
		t.Fatalf("heap.New: %v", err)
	}
	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})
	return h
}

func TestListPushPopOrder(t *testing.T) {
	h := newTestHeap(t)
	scope := heap.NewHandleScope(h)
	defer scope.Close()

	l, err := heap.Take[List[float64], *List[float64]](scope, List[float64]{})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	list := l.AsRef()

	list.Push(scope.CreateNum(1))
	list.Push(scope.CreateNum(2))
	list.Push(scope.CreateNum(3))
	if list.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", list.Len())
	}

	got, ok := list.Pop(scope)
	if !ok {
		t.Fatal("Pop on a non-empty list reported empty")
	}
	f, err := got.TryFloat64()
	if err != nil || f != 3 {
		t.Fatalf("Pop() = %v, %v, want 3, nil", f, err)
	}
	if list.Len() != 2 {
		t.Fatalf("Len() after Pop = %d, want 2", list.Len())
	}
}

func TestListEmptyPopReportsFalse(t *testing.T) {
	h := newTestHeap(t)
	scope := heap.NewHandleScope(h)
	defer scope.Close()

	l, err := heap.Take[List[float64], *List[float64]](scope, List[float64]{})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if _, ok := l.AsRef().Pop(scope); ok {
		t.Fatal("Pop on an empty list reported success")
	}
}

func TestListSplitOff(t *testing.T) {
	h := newTestHeap(t)
	scope := heap.NewHandleScope(h)
	defer scope.Close()

	l, err := heap.Take[List[float64], *List[float64]](scope, List[float64]{})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	list := l.AsRef()
	for i := 0; i < 5; i++ {
		list.Push(scope.CreateNum(float64(i)))
	}

	tail := list.SplitOff(2)
	if list.Len() != 2 {
		t.Fatalf("head Len() = %d, want 2", list.Len())
	}
	if tail.Len() != 3 {
		t.Fatalf("tail Len() = %d, want 3", tail.Len())
	}
	first, ok := tail.First()
	if !ok {
		t.Fatal("tail.First() reported empty")
	}
	f, err := first.Value().TryFloat64()
	if err != nil || f != 2 {
		t.Fatalf("tail.First() = %v, %v, want 2, nil", f, err)
	}
}

// Scenario 3: tracing preserves an inner graph — a List held only
// through another List's element survives a collection intact.
func TestTracingPreservesInnerGraph(t *testing.T) {
	h := newTestHeap(t)

	var g *heap.GlobalHandle[*List[*List[float64]]]
	func() {
		scope := heap.NewHandleScope(h)
		defer scope.Close()

		inner, err := heap.Take[List[float64], *List[float64]](scope, List[float64]{})
		if err != nil {
			t.Fatalf("Take inner: %v", err)
		}
		inner.AsRef().Push(scope.CreateNum(42))

		outer, err := heap.Take[List[*List[float64]], *List[*List[float64]]](scope, List[*List[float64]]{})
		if err != nil {
			t.Fatalf("Take outer: %v", err)
		}
		outer.AsRef().Push(inner)
		g = heap.ToGlobal(outer)
	}()

	if err := h.Collect(); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	scope := heap.NewHandleScope(h)
	defer scope.Close()
	outer := heap.FromGlobal(scope, g)
	innerHandle, ok := outer.AsRef().First()
	if !ok {
		t.Fatal("outer list lost its only element across a collection")
	}
	inner := heap.FromHeap(scope, &innerHandle)
	first, ok := inner.AsRef().First()
	if !ok {
		t.Fatal("inner list lost its only element across a collection")
	}
	f, err := first.Value().TryFloat64()
	if err != nil || f != 42 {
		t.Fatalf("surviving value = %v, %v, want 42, nil", f, err)
	}
}
