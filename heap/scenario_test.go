// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap_test

import (
	"errors"
	"testing"

	"github.com/RubberDuckEng/vmgc/heap"
)

type point struct {
	x, y float64
}

func (*point) Trace(*heap.Visitor) {}

// Scenario 6: downcast discipline. Every (stored kind, requested
// kind) pair that does not match returns ErrTypeError, and a failed
// conversion never disturbs the handle it was attempted against.
func TestDowncastDiscipline(t *testing.T) {
	h, err := heap.New(4096)
	if err != nil {
		t.Fatalf("heap.New: %v", err)
	}
	defer h.Close()

	scope := heap.NewHandleScope(h)
	defer scope.Close()

	num := scope.CreateNum(3.5)
	boolean := scope.CreateBool(true)
	obj, err := heap.Take[point, *point](scope, point{x: 1, y: 2})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}

	if _, err := num.TryBool(); !errors.Is(err, heap.ErrTypeError) {
		t.Errorf("number.TryBool() err = %v, want ErrTypeError", err)
	}
	if _, err := heap.TryAs[*point](num.EraseType()); !errors.Is(err, heap.ErrTypeError) {
		t.Errorf("number.TryAsRef(point) err = %v, want ErrTypeError", err)
	}

	if _, err := boolean.TryFloat64(); !errors.Is(err, heap.ErrTypeError) {
		t.Errorf("bool.TryFloat64() err = %v, want ErrTypeError", err)
	}
	if _, err := heap.TryAs[*point](boolean.EraseType()); !errors.Is(err, heap.ErrTypeError) {
		t.Errorf("bool.TryAsRef(point) err = %v, want ErrTypeError", err)
	}

	if _, err := obj.TryFloat64(); !errors.Is(err, heap.ErrTypeError) {
		t.Errorf("object.TryFloat64() err = %v, want ErrTypeError", err)
	}
	if _, err := obj.TryBool(); !errors.Is(err, heap.ErrTypeError) {
		t.Errorf("object.TryBool() err = %v, want ErrTypeError", err)
	}

	// The value itself must be unchanged after every failed attempt.
	if f, err := num.TryFloat64(); err != nil || f != 3.5 {
		t.Fatalf("number value mutated by a failed conversion: %v, %v", f, err)
	}
	if b, err := boolean.TryBool(); err != nil || !b {
		t.Fatalf("bool value mutated by a failed conversion: %v, %v", b, err)
	}
	p := obj.AsRef()
	if p.x != 1 || p.y != 2 {
		t.Fatalf("object value mutated by a failed conversion: %+v", p)
	}
}
