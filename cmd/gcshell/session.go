// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/RubberDuckEng/vmgc/heap"
	"github.com/RubberDuckEng/vmgc/hostobj"
)

// anyList and anyMap are the container instantiations gcshell hands
// out for "alloc list" and "alloc map": every element is untyped, the
// way a shell's values are untyped until inspected.
type anyList = hostobj.List[heap.Any]
type anyMap = hostobj.Map[heap.Any, heap.Any]

// session is the one Heap and named-value table every subcommand
// operates against. A name survives collections (it is backed by a
// GlobalHandle) until explicitly dropped.
type session struct {
	heap    *heap.Heap
	names   map[string]*heap.GlobalHandle[heap.Any]
	order   []string // insertion order of names, read by sortedNames for "stats"
}

var theSession *session

func currentSession() (*session, error) {
	if theSession == nil {
		return nil, fmt.Errorf("no heap open; this should not happen (root command always opens one)")
	}
	return theSession, nil
}

func openSession(heapBytes int) error {
	h, err := heap.New(heapBytes)
	if err != nil {
		return fmt.Errorf("open heap: %w", err)
	}
	theSession = &session{
		heap:  h,
		names: make(map[string]*heap.GlobalHandle[heap.Any]),
	}
	return nil
}

// bind promotes a local handle to a global and stores it under name,
// replacing and releasing any prior binding.
func (s *session) bind(name string, h heap.LocalHandle[heap.Any]) {
	if old, ok := s.names[name]; ok {
		old.Release()
	} else {
		s.order = append(s.order, name)
	}
	s.names[name] = heap.ToGlobal(h)
}

func (s *session) lookup(name string) (*heap.GlobalHandle[heap.Any], error) {
	g, ok := s.names[name]
	if !ok {
		return nil, fmt.Errorf("no value bound to %q", name)
	}
	return g, nil
}

// sortedNames returns the bound names sorted, for "stats". Dropped
// names are filtered out rather than removed from order immediately,
// so drop stays an O(1) map delete.
func (s *session) sortedNames() []string {
	var out []string
	for _, name := range s.order {
		if _, ok := s.names[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// describeName opens a scope, resolves name, and renders its current
// value; it reports the lookup error inline rather than failing the
// whole listing a caller (stats) is producing.
func describeName(s *session, name string) string {
	g, err := s.lookup(name)
	if err != nil {
		return err.Error()
	}
	scope := heap.NewHandleScope(s.heap)
	defer scope.Close()
	return describe(scope, heap.FromGlobal(scope, g))
}

// describe renders v's kind and contents the way "inspect" prints a
// single value: a number and a bool print their Go value directly; a
// string prints quoted; a list prints its length and each element's
// own describe, recursing into nested lists; a map prints only its
// entry count.
func describe(scope *heap.HandleScope, v heap.LocalHandle[heap.Any]) string {
	if f, err := v.TryFloat64(); err == nil {
		return fmt.Sprintf("num %v", f)
	}
	if b, err := v.TryBool(); err == nil {
		return fmt.Sprintf("bool %v", b)
	}
	if v.Value().IsNull() {
		return "null"
	}
	if s, err := heap.TryAs[*heap.String](v); err == nil {
		return fmt.Sprintf("str %q", string(*s))
	}
	if l, err := heap.TryAs[*anyList](v); err == nil {
		elems := make([]string, 0, l.Len())
		l.ForEach(func(_ int, h heap.HeapHandle[heap.Any]) bool {
			elems = append(elems, describe(scope, heap.FromHeap(scope, &h)))
			return true
		})
		return fmt.Sprintf("list[%d] %v", l.Len(), elems)
	}
	if m, err := heap.TryAs[*anyMap](v); err == nil {
		return fmt.Sprintf("map[%d entries]", m.Len())
	}
	return "object (unrecognized host type)"
}
