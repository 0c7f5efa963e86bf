// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tagged implements the bit-level value representation and
// in-heap object layout the garbage collector operates on: a 64-bit
// NaN-boxed TaggedValue, and the ObjectHeader/ObjectPtr/HeaderPtr
// triple describing an object's position and metadata inside a
// space.Space.
//
// Everything in this package is pure bit arithmetic and unsafe
// pointer arithmetic; it knows nothing about Traceable, HostObject,
// or collection. Those live one layer up, in package heap.
package tagged

import (
	"errors"
	"math"
	"unsafe"

	"github.com/RubberDuckEng/vmgc/internal/space"
)

// ErrTypeError is returned by every TaggedValue conversion whose
// receiver does not hold the requested kind.
var ErrTypeError = errors.New("tagged: value does not hold the requested kind")

const (
	signMask     uint64 = 1 << 63
	quietNaNMask uint64 = 0x7ffc000000000000
	// ptrTagMask marks a value as an object pointer: sign bit and
	// quiet-NaN bits both set.
	ptrTagMask uint64 = signMask | quietNaNMask
	// ptrMask is the complement: the bits available to carry a
	// pointer payload.
	ptrMask uint64 = ^ptrTagMask

	tagNull  uint64 = 1
	tagFalse uint64 = 2
	tagTrue  uint64 = 3
)

var (
	nullBits  = quietNaNMask | tagNull
	falseBits = quietNaNMask | tagFalse
	trueBits  = quietNaNMask | tagTrue
)

// A TaggedValue is a 64-bit immediate value: a float64, one of the
// three singletons (null, true, false), or a tagged pointer to an
// object. The bit layout is given by the mask and tag constants
// above.
type TaggedValue struct {
	bits uint64
}

// Null is the null singleton. It is not the zero value of
// TaggedValue: the zero value's all-zero bits encode the number +0.0.
var Null = TaggedValue{bits: nullBits}

// Bits returns the raw 64-bit encoding, for hashing and for tests
// that need to inspect the wire-exact representation.
func (v TaggedValue) Bits() uint64 {
	return v.bits
}

// IsNum reports whether v holds a float64: any bit pattern that does
// not have every bit of quietNaNMask set is a number, including every
// ordinary NaN that arithmetic might produce. Patterns with all of
// those bits set are pointers, singletons or reserved, never numbers.
func (v TaggedValue) IsNum() bool {
	return v.bits&quietNaNMask != quietNaNMask
}

// IsObject reports whether v holds a tagged object pointer.
func (v TaggedValue) IsObject() bool {
	return v.bits&ptrTagMask == ptrTagMask
}

// IsNull reports whether v is the null singleton.
func (v TaggedValue) IsNull() bool {
	return v.bits == nullBits
}

// IsTrue reports whether v is the true singleton.
func (v TaggedValue) IsTrue() bool {
	return v.bits == trueBits
}

// IsFalse reports whether v is the false singleton.
func (v TaggedValue) IsFalse() bool {
	return v.bits == falseBits
}

// IsBool reports whether v is the true or the false singleton.
func (v TaggedValue) IsBool() bool {
	return v.IsTrue() || v.IsFalse()
}

// FromFloat64 encodes a float64 as a TaggedValue. Every finite,
// non-NaN double round-trips exactly; quiet NaNs that happen to
// collide with the singleton or pointer encodings are the caller's
// problem to avoid (ordinary arithmetic does not produce them).
func FromFloat64(f float64) TaggedValue {
	return TaggedValue{bits: math.Float64bits(f)}
}

// TryFloat64 decodes v as a float64, or returns ErrTypeError if v
// does not hold a number.
func (v TaggedValue) TryFloat64() (float64, error) {
	if !v.IsNum() {
		return 0, ErrTypeError
	}
	return math.Float64frombits(v.bits), nil
}

// FromBool encodes a bool as one of the two boolean singletons.
func FromBool(b bool) TaggedValue {
	if b {
		return TaggedValue{bits: trueBits}
	}
	return TaggedValue{bits: falseBits}
}

// TryBool decodes v as a bool. It only succeeds for the two boolean
// singletons, not for any notion of "truthiness" — that policy
// belongs to the host.
func (v TaggedValue) TryBool() (bool, error) {
	switch v.bits {
	case trueBits:
		return true, nil
	case falseBits:
		return false, nil
	default:
		return false, ErrTypeError
	}
}

// FromObjectPtr encodes an object pointer as a tagged pointer value.
func FromObjectPtr(p ObjectPtr) TaggedValue {
	addr := uint64(uintptr(p.addr))
	return TaggedValue{bits: (addr & ptrMask) | ptrTagMask}
}

// TryObjectPtr decodes v as an object pointer, or returns
// ErrTypeError if v does not hold an object.
func (v TaggedValue) TryObjectPtr() (ObjectPtr, error) {
	if !v.IsObject() {
		return ObjectPtr{}, ErrTypeError
	}
	return ObjectPtr{addr: unsafe.Pointer(uintptr(v.bits & ptrMask))}, nil
}

// ---- object layout -------------------------------------------------

// ObjectType enumerates the kinds of payload an ObjectHeader can
// precede. Host is the only variant the core ships; the design
// admits future primitive variants with inline payloads.
type ObjectType uint16

// Host marks a payload that is a single indirection word owning a
// boxed value implementing the Traceable capability set.
const Host ObjectType = 0

// HeaderPtr points at the start of an ObjectHeader.
type HeaderPtr struct {
	addr unsafe.Pointer
}

// ObjectPtr points at an object's payload, immediately following its
// header.
type ObjectPtr struct {
	addr unsafe.Pointer
}

// IsNil reports whether p is the zero ObjectPtr.
func (p ObjectPtr) IsNil() bool {
	return p.addr == nil
}

// Addr exposes the raw address, for hashing, equality by identity,
// and diagnostics.
func (p ObjectPtr) Addr() unsafe.Pointer {
	return p.addr
}

// ObjectHeader is the fixed-size prefix of every heap object.
type ObjectHeader struct {
	objectSize int
	objectType ObjectType
	// forwarding holds the address this object was copied to during
	// the current collection. It is nil outside of a collection and
	// is reset implicitly by the Space swap (the source Space, and
	// every header within it, is discarded wholesale).
	forwarding unsafe.Pointer
}

var headerSize = int(unsafe.Sizeof(ObjectHeader{}))

// HeaderSize returns sizeof(ObjectHeader), the fixed offset between a
// HeaderPtr and its ObjectPtr.
func HeaderSize() int {
	return headerSize
}

// NewHeader reserves header+payloadSize bytes in sp, writes a header
// describing a payload of payloadSize bytes and type typ, and
// returns the header. The payload bytes are left zeroed by the
// underlying Space.
func NewHeader(sp *space.Space, payloadSize int, typ ObjectType) (HeaderPtr, error) {
	raw, err := sp.Allocate(headerSize + payloadSize)
	if err != nil {
		return HeaderPtr{}, err
	}
	hp := HeaderPtr{addr: raw}
	h := hp.header()
	h.objectSize = payloadSize
	h.objectType = typ
	return hp, nil
}

func (hp HeaderPtr) header() *ObjectHeader {
	return (*ObjectHeader)(hp.addr)
}

// Header returns the ObjectHeader this HeaderPtr addresses.
func (hp HeaderPtr) Header() *ObjectHeader {
	return hp.header()
}

// ObjectPtr returns the payload pointer for this header: the header
// address plus HeaderSize().
func (hp HeaderPtr) ObjectPtr() ObjectPtr {
	return ObjectPtr{addr: unsafe.Add(hp.addr, headerSize)}
}

// Addr exposes the raw header address.
func (hp HeaderPtr) Addr() unsafe.Pointer {
	return hp.addr
}

// HeaderPtr returns the header immediately preceding this payload.
func (p ObjectPtr) HeaderPtr() HeaderPtr {
	return HeaderPtr{addr: unsafe.Add(p.addr, -headerSize)}
}

// Header returns the ObjectHeader for this object.
func (p ObjectPtr) Header() *ObjectHeader {
	return p.HeaderPtr().header()
}

// Type reports the object's ObjectType.
func (h *ObjectHeader) Type() ObjectType {
	return h.objectType
}

// PayloadSize returns the number of payload bytes following the
// header, exactly as reserved at allocation time.
func (h *ObjectHeader) PayloadSize() int {
	return h.objectSize
}

// AllocSize returns HeaderSize()+PayloadSize(), the number of bytes
// this object occupies in its Space including its header.
func (h *ObjectHeader) AllocSize() int {
	return headerSize + h.objectSize
}

// Forwarding returns the address this object was copied to during
// the current collection, and whether it has been copied at all.
func (h *ObjectHeader) Forwarding() (HeaderPtr, bool) {
	if h.forwarding == nil {
		return HeaderPtr{}, false
	}
	return HeaderPtr{addr: h.forwarding}, true
}

// SetForwarding records that this object was copied to dst. Only the
// collector's Visitor may call this.
func (h *ObjectHeader) SetForwarding(dst HeaderPtr) {
	h.forwarding = dst.addr
}

// PayloadWord reads the single machine word directly following the
// header: for a Host object, an opaque handle its owner uses to find
// the boxed Traceable. The word is stored and read back as a
// uintptr, never dereferenced by this package, so that memory backed
// by space.Space (which the Go runtime's garbage collector does not
// scan) never needs to hold a live Go pointer value.
func (p ObjectPtr) PayloadWord() uintptr {
	return *(*uintptr)(p.addr)
}

// SetPayloadWord writes the single machine word directly following
// the header.
func (p ObjectPtr) SetPayloadWord(w uintptr) {
	*(*uintptr)(p.addr) = w
}

// CopyObject byte-copies an object's header+payload (AllocSize bytes)
// from src to a fresh reservation in dst, without interpreting the
// payload. It is the primitive the Visitor uses to relocate an
// object; the caller is responsible for recording forwarding.
func CopyObject(dst *space.Space, src HeaderPtr) (HeaderPtr, error) {
	h := src.header()
	n := h.AllocSize()
	raw, err := dst.Allocate(n)
	if err != nil {
		return HeaderPtr{}, err
	}
	srcBytes := unsafe.Slice((*byte)(src.addr), n)
	dstBytes := unsafe.Slice((*byte)(raw), n)
	copy(dstBytes, srcBytes)
	return HeaderPtr{addr: raw}, nil
}
