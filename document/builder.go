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

package document

import "github.com/dominikschlosser/mdoc-core/cbor"

// Builder assembles a NameSpacedData. It is single-owner and not safe
// for concurrent use; Build freezes the accumulated entries into an
// immutable NameSpacedData.
type Builder struct {
	data NameSpacedData
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// PutEntry stores raw CBOR bytes for a data element. Namespaces and
// elements keep first-insertion order; putting an existing element again
// replaces its value in place.
func (b *Builder) PutEntry(nameSpaceName, name string, value []byte) *Builder {
	v := make([]byte, len(value))
	copy(v, value)

	ns := b.data.nameSpace(nameSpaceName)
	if ns == nil {
		b.data.nameSpaces = append(b.data.nameSpaces, nameSpace{name: nameSpaceName})
		ns = &b.data.nameSpaces[len(b.data.nameSpaces)-1]
	}
	if e := ns.element(name); e != nil {
		e.value = v
		return b
	}
	ns.elements = append(ns.elements, dataElement{name: name, value: v})
	return b
}

// PutEntryString stores a text string data element.
func (b *Builder) PutEntryString(nameSpace, name, value string) *Builder {
	return b.PutEntry(nameSpace, name, cbor.Encode(cbor.Tstr(value)))
}

// PutEntryByteString stores a byte string data element.
func (b *Builder) PutEntryByteString(nameSpace, name string, value []byte) *Builder {
	return b.PutEntry(nameSpace, name, cbor.Encode(cbor.Item(value)))
}

// PutEntryNumber stores an integer data element.
func (b *Builder) PutEntryNumber(nameSpace, name string, value int64) *Builder {
	return b.PutEntry(nameSpace, name, cbor.Encode(cbor.Int(value)))
}

// PutEntryBoolean stores a boolean data element.
func (b *Builder) PutEntryBoolean(nameSpace, name string, value bool) *Builder {
	return b.PutEntry(nameSpace, name, cbor.Encode(cbor.Item(value)))
}

// Build returns the accumulated NameSpacedData.
func (b *Builder) Build() *NameSpacedData {
	d := b.data
	return &d
}
