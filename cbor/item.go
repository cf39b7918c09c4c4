// Copyright 2026 Dominik Schlosser
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cbor implements an order-preserving CBOR value model and codec
// (RFC 8949) for mdoc credential structures.
//
// Unlike generic CBOR libraries, the value model keeps map entries in
// insertion order and never canonicalizes: ISO 18013-5 digest verification
// depends on reproducing the exact byte order of the original encoding.
package cbor

// TagEncodedCBOR is tag 24: the tagged byte string contains an encoded
// CBOR data item.
const TagEncodedCBOR = 24

// DataItem is a single node of a CBOR value tree. The set of concrete
// types is closed: Uint, Nint, Bstr, Tstr, Array, Map, Tagged, Simple,
// Float and Raw. Consumers switch exhaustively over these.
//
// All items are immutable once constructed and safe for concurrent
// read-only use.
type DataItem interface {
	isDataItem()
}

// Uint is an unsigned integer (major type 0).
type Uint uint64

// Nint is a negative integer (major type 1). It stores the encoded
// magnitude n; the semantic value is -1-n.
type Nint uint64

// Bstr is a byte string (major type 2).
type Bstr []byte

// Tstr is a UTF-8 text string (major type 3).
type Tstr string

// Array is an ordered sequence of items (major type 4).
type Array []DataItem

// MapEntry is a single key/value pair of a Map.
type MapEntry struct {
	Key   DataItem
	Value DataItem
}

// Map is an ordered sequence of key/value pairs (major type 5). Entries
// appear in insertion (or wire) order; duplicate keys are preserved
// positionally, never merged.
type Map []MapEntry

// Tagged wraps an item with a tag number (major type 6).
type Tagged struct {
	Number uint64
	Item   DataItem
}

// Simple is a simple value (major type 7, non-float). The well-known
// values are False, True, Null and Undefined.
type Simple byte

// Float is a floating point number (major type 7). Values are widened to
// float64 on decode and encoded as 64-bit.
type Float float64

// Raw holds pre-encoded CBOR that is spliced verbatim into the output on
// encode. Decode never produces a Raw item.
type Raw []byte

const (
	False     Simple = 20
	True      Simple = 21
	Null      Simple = 22
	Undefined Simple = 23
)

func (Uint) isDataItem()   {}
func (Nint) isDataItem()   {}
func (Bstr) isDataItem()   {}
func (Tstr) isDataItem()   {}
func (Array) isDataItem()  {}
func (Map) isDataItem()    {}
func (Tagged) isDataItem() {}
func (Simple) isDataItem() {}
func (Float) isDataItem()  {}
func (Raw) isDataItem()    {}

// Int returns the DataItem for a signed integer: Uint for v >= 0, Nint
// otherwise.
func Int(v int64) DataItem {
	if v >= 0 {
		return Uint(v)
	}
	return Nint(uint64(-(v + 1)))
}

// Int64 returns the semantic value -1-n.
func (n Nint) Int64() int64 {
	return -1 - int64(n)
}

// EncodedCBOR wraps already-encoded CBOR bytes as Tagged(24, Bstr),
// the embedded-CBOR convention used throughout ISO 18013-5.
func EncodedCBOR(encoded []byte) Tagged {
	return Tagged{Number: TagEncodedCBOR, Item: Bstr(encoded)}
}

// Get returns the value for the first entry whose key is the given text
// string.
func (m Map) Get(key string) (DataItem, bool) {
	for _, e := range m {
		if k, ok := e.Key.(Tstr); ok && string(k) == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Lookup returns the value for the first entry whose key is structurally
// equal to the given item.
func (m Map) Lookup(key DataItem) (DataItem, bool) {
	for _, e := range m {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Equal reports structural equality of two items, including member order
// of arrays and maps.
func Equal(a, b DataItem) bool {
	switch x := a.(type) {
	case Uint:
		y, ok := b.(Uint)
		return ok && x == y
	case Nint:
		y, ok := b.(Nint)
		return ok && x == y
	case Bstr:
		y, ok := b.(Bstr)
		return ok && string(x) == string(y)
	case Tstr:
		y, ok := b.(Tstr)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Map:
		y, ok := b.(Map)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i].Key, y[i].Key) || !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	case Tagged:
		y, ok := b.(Tagged)
		return ok && x.Number == y.Number && Equal(x.Item, y.Item)
	case Simple:
		y, ok := b.(Simple)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case Raw:
		y, ok := b.(Raw)
		return ok && string(x) == string(y)
	}
	return a == nil && b == nil
}
