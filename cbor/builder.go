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

package cbor

import "fmt"

// MapBuilder accumulates map entries in insertion order. No sorting,
// deduplication or canonical reordering is ever applied. The type
// parameter is the enclosing builder that End returns to; root builders
// use struct{} and are finished with Build instead.
//
// Builders are single-owner and not safe for concurrent use. The built
// item is immutable and freely shareable.
type MapBuilder[P any] struct {
	parent  P
	onEnd   func(Map)
	entries []MapEntry
	built   bool
}

// ArrayBuilder accumulates array members in insertion order.
type ArrayBuilder[P any] struct {
	parent P
	onEnd  func(Array)
	items  []DataItem
	built  bool
}

// NewMapBuilder returns a root builder for a CBOR map.
func NewMapBuilder() *MapBuilder[struct{}] {
	return &MapBuilder[struct{}]{}
}

// NewArrayBuilder returns a root builder for a CBOR array.
func NewArrayBuilder() *ArrayBuilder[struct{}] {
	return &ArrayBuilder[struct{}]{}
}

// Put appends a key/value entry. Key and value are DataItems or Go
// primitives (string, []byte, bool, nil, integers, floats); see Item.
func (b *MapBuilder[P]) Put(key, value any) *MapBuilder[P] {
	b.checkUsable()
	b.entries = append(b.entries, MapEntry{Key: Item(key), Value: Item(value)})
	return b
}

// PutMap appends an entry whose value is built by the returned nested
// builder. End on the nested builder returns to this one.
func (b *MapBuilder[P]) PutMap(key any) *MapBuilder[*MapBuilder[P]] {
	b.checkUsable()
	k := Item(key)
	child := &MapBuilder[*MapBuilder[P]]{parent: b}
	child.onEnd = func(m Map) {
		b.entries = append(b.entries, MapEntry{Key: k, Value: m})
	}
	return child
}

// PutArray appends an entry whose value is built by the returned nested
// builder.
func (b *MapBuilder[P]) PutArray(key any) *ArrayBuilder[*MapBuilder[P]] {
	b.checkUsable()
	k := Item(key)
	child := &ArrayBuilder[*MapBuilder[P]]{parent: b}
	child.onEnd = func(a Array) {
		b.entries = append(b.entries, MapEntry{Key: k, Value: a})
	}
	return child
}

// PutTagged appends an entry whose value is item wrapped with the given
// tag number.
func (b *MapBuilder[P]) PutTagged(key any, number uint64, item DataItem) *MapBuilder[P] {
	return b.Put(key, Tagged{Number: number, Item: item})
}

// PutTaggedEncodedCBOR appends an entry whose value is the encoded bytes
// wrapped as embedded CBOR, Tagged(24, Bstr).
func (b *MapBuilder[P]) PutTaggedEncodedCBOR(key any, encoded []byte) *MapBuilder[P] {
	return b.Put(key, EncodedCBOR(encoded))
}

// End closes a nested builder, adds the built map to its parent, and
// returns the parent.
func (b *MapBuilder[P]) End() P {
	b.checkUsable()
	b.built = true
	if b.onEnd != nil {
		b.onEnd(Map(b.entries))
	}
	return b.parent
}

// Build freezes a root builder into its Map.
func (b *MapBuilder[P]) Build() Map {
	b.checkUsable()
	b.built = true
	return Map(b.entries)
}

func (b *MapBuilder[P]) checkUsable() {
	if b.built {
		panic("cbor: map builder used after End/Build")
	}
}

// Add appends a member. The value is a DataItem or a Go primitive; see
// Item.
func (b *ArrayBuilder[P]) Add(value any) *ArrayBuilder[P] {
	b.checkUsable()
	b.items = append(b.items, Item(value))
	return b
}

// AddMap appends a member built by the returned nested builder.
func (b *ArrayBuilder[P]) AddMap() *MapBuilder[*ArrayBuilder[P]] {
	b.checkUsable()
	child := &MapBuilder[*ArrayBuilder[P]]{parent: b}
	child.onEnd = func(m Map) {
		b.items = append(b.items, m)
	}
	return child
}

// AddArray appends a member built by the returned nested builder.
func (b *ArrayBuilder[P]) AddArray() *ArrayBuilder[*ArrayBuilder[P]] {
	b.checkUsable()
	child := &ArrayBuilder[*ArrayBuilder[P]]{parent: b}
	child.onEnd = func(a Array) {
		b.items = append(b.items, a)
	}
	return child
}

// AddTagged appends item wrapped with the given tag number.
func (b *ArrayBuilder[P]) AddTagged(number uint64, item DataItem) *ArrayBuilder[P] {
	return b.Add(Tagged{Number: number, Item: item})
}

// AddTaggedEncodedCBOR appends the encoded bytes wrapped as embedded
// CBOR, Tagged(24, Bstr).
func (b *ArrayBuilder[P]) AddTaggedEncodedCBOR(encoded []byte) *ArrayBuilder[P] {
	return b.Add(EncodedCBOR(encoded))
}

// End closes a nested builder, adds the built array to its parent, and
// returns the parent.
func (b *ArrayBuilder[P]) End() P {
	b.checkUsable()
	b.built = true
	if b.onEnd != nil {
		b.onEnd(Array(b.items))
	}
	return b.parent
}

// Build freezes a root builder into its Array.
func (b *ArrayBuilder[P]) Build() Array {
	b.checkUsable()
	b.built = true
	return Array(b.items)
}

func (b *ArrayBuilder[P]) checkUsable() {
	if b.built {
		panic("cbor: array builder used after End/Build")
	}
}

// Item converts a Go value to its DataItem. DataItems pass through;
// []byte copies into a Bstr; nil maps to Null. Item panics on types with
// no CBOR mapping, which indicates caller error rather than bad input
// data.
func Item(v any) DataItem {
	switch x := v.(type) {
	case DataItem:
		return x
	case nil:
		return Null
	case bool:
		if x {
			return True
		}
		return False
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Uint(x)
	case uint8:
		return Uint(x)
	case uint16:
		return Uint(x)
	case uint32:
		return Uint(x)
	case uint64:
		return Uint(x)
	case string:
		return Tstr(x)
	case []byte:
		b := make([]byte, len(x))
		copy(b, x)
		return Bstr(b)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	default:
		panic(fmt.Sprintf("cbor: no CBOR mapping for value type %T", v))
	}
}
