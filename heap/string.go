// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "hash/fnv"

// String is the native string host object. It owns no HeapHandles
// (Trace is a no-op) and, unlike the default address-based rules,
// hashes and compares by content, so two independently allocated
// strings with the same bytes behave as equal map keys.
type String string

// Trace implements Traceable. A String holds no object references.
func (*String) Trace(*Visitor) {}

// ObjectHash implements ObjectHasher: the hash of the string's
// contents, not its address.
func (s *String) ObjectHash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(*s))
	return h.Sum64()
}

// ObjectEqual implements ObjectEqualer: byte-for-byte content
// equality, not address identity.
func (s *String) ObjectEqual(other Traceable) bool {
	o, ok := other.(*String)
	if !ok {
		return false
	}
	return *s == *o
}
