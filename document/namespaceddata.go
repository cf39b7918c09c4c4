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

// Package document holds decoded credential attributes partitioned by
// namespace, in the order they were issued.
package document

import (
	"errors"
	"fmt"
	"math"

	"github.com/dominikschlosser/mdoc-core/cbor"
)

var (
	// ErrMalformedStructure means the bytes parse as CBOR but do not
	// have the NameSpacedData shape.
	ErrMalformedStructure = errors.New("malformed NameSpacedData structure")

	// ErrNoSuchNameSpace is returned when a queried namespace is absent.
	ErrNoSuchNameSpace = errors.New("no such namespace")

	// ErrNoSuchDataElement is returned when a queried data element is
	// absent from an existing namespace.
	ErrNoSuchDataElement = errors.New("no such data element")
)

// NameSpacedData is an immutable namespace-partitioned store of data
// elements, each held as its raw CBOR encoding. Namespace and element
// order is insertion order and survives encode/decode.
type NameSpacedData struct {
	nameSpaces []nameSpace
}

type nameSpace struct {
	name     string
	elements []dataElement
}

type dataElement struct {
	name  string
	value []byte // raw CBOR
}

// NameSpaceNames returns all namespace names in insertion order.
func (d *NameSpacedData) NameSpaceNames() []string {
	names := make([]string, len(d.nameSpaces))
	for i, ns := range d.nameSpaces {
		names[i] = ns.name
	}
	return names
}

// DataElementNames returns the data element names of a namespace in
// insertion order.
func (d *NameSpacedData) DataElementNames(nameSpace string) ([]string, error) {
	ns := d.nameSpace(nameSpace)
	if ns == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchNameSpace, nameSpace)
	}
	names := make([]string, len(ns.elements))
	for i, e := range ns.elements {
		names[i] = e.name
	}
	return names, nil
}

// HasDataElement reports whether the namespace exists and contains the
// data element. Unlike the accessors it never fails for absent keys.
func (d *NameSpacedData) HasDataElement(nameSpace, name string) bool {
	ns := d.nameSpace(nameSpace)
	if ns == nil {
		return false
	}
	return ns.element(name) != nil
}

// DataElement returns the raw CBOR bytes of a data element.
func (d *NameSpacedData) DataElement(nameSpace, name string) ([]byte, error) {
	ns := d.nameSpace(nameSpace)
	if ns == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchNameSpace, nameSpace)
	}
	e := ns.element(name)
	if e == nil {
		return nil, fmt.Errorf("%w: %q/%q", ErrNoSuchDataElement, nameSpace, name)
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// DataElementString decodes a data element expected to hold a text
// string.
func (d *NameSpacedData) DataElementString(nameSpace, name string) (string, error) {
	item, err := d.decodeElement(nameSpace, name)
	if err != nil {
		return "", err
	}
	s, ok := item.(cbor.Tstr)
	if !ok {
		return "", fmt.Errorf("%w: data element %q/%q is not a text string",
			ErrMalformedStructure, nameSpace, name)
	}
	return string(s), nil
}

// DataElementByteString decodes a data element expected to hold a byte
// string.
func (d *NameSpacedData) DataElementByteString(nameSpace, name string) ([]byte, error) {
	item, err := d.decodeElement(nameSpace, name)
	if err != nil {
		return nil, err
	}
	b, ok := item.(cbor.Bstr)
	if !ok {
		return nil, fmt.Errorf("%w: data element %q/%q is not a byte string",
			ErrMalformedStructure, nameSpace, name)
	}
	return []byte(b), nil
}

// DataElementNumber decodes a data element expected to hold an integer.
func (d *NameSpacedData) DataElementNumber(nameSpace, name string) (int64, error) {
	item, err := d.decodeElement(nameSpace, name)
	if err != nil {
		return 0, err
	}
	switch v := item.(type) {
	case cbor.Uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: data element %q/%q exceeds int64 range",
				ErrMalformedStructure, nameSpace, name)
		}
		return int64(v), nil
	case cbor.Nint:
		if uint64(v) >= 1<<63 {
			return 0, fmt.Errorf("%w: data element %q/%q exceeds int64 range",
				ErrMalformedStructure, nameSpace, name)
		}
		return v.Int64(), nil
	default:
		return 0, fmt.Errorf("%w: data element %q/%q is not an integer",
			ErrMalformedStructure, nameSpace, name)
	}
}

// DataElementBoolean decodes a data element expected to hold a boolean.
func (d *NameSpacedData) DataElementBoolean(nameSpace, name string) (bool, error) {
	item, err := d.decodeElement(nameSpace, name)
	if err != nil {
		return false, err
	}
	switch item {
	case cbor.True:
		return true, nil
	case cbor.False:
		return false, nil
	}
	return false, fmt.Errorf("%w: data element %q/%q is not a boolean",
		ErrMalformedStructure, nameSpace, name)
}

// EncodeAsCBOR serializes to the canonical NameSpacedData shape: a map
// of namespace name to a map of data element name to the element's raw
// CBOR wrapped as embedded CBOR (tag 24). Both map layers keep insertion
// order.
func (d *NameSpacedData) EncodeAsCBOR() []byte {
	outer := make(cbor.Map, 0, len(d.nameSpaces))
	for _, ns := range d.nameSpaces {
		inner := make(cbor.Map, 0, len(ns.elements))
		for _, e := range ns.elements {
			inner = append(inner, cbor.MapEntry{
				Key:   cbor.Tstr(e.name),
				Value: cbor.EncodedCBOR(e.value),
			})
		}
		outer = append(outer, cbor.MapEntry{
			Key:   cbor.Tstr(ns.name),
			Value: inner,
		})
	}
	return cbor.Encode(outer)
}

// Parse is the exact inverse of EncodeAsCBOR. It fails if the top-level
// item is not a map, any key is not a text string, any inner value is
// not a map, or any element value is not a tag-24-wrapped byte string.
func Parse(data []byte) (*NameSpacedData, error) {
	item, err := cbor.Decode(data)
	if err != nil {
		return nil, err
	}
	outer, ok := item.(cbor.Map)
	if !ok {
		return nil, fmt.Errorf("%w: top-level item is not a map", ErrMalformedStructure)
	}

	d := &NameSpacedData{}
	for _, nsEntry := range outer {
		nsName, ok := nsEntry.Key.(cbor.Tstr)
		if !ok {
			return nil, fmt.Errorf("%w: namespace key is not a text string", ErrMalformedStructure)
		}
		inner, ok := nsEntry.Value.(cbor.Map)
		if !ok {
			return nil, fmt.Errorf("%w: namespace %q value is not a map",
				ErrMalformedStructure, string(nsName))
		}
		ns := nameSpace{name: string(nsName)}
		for _, elemEntry := range inner {
			elemName, ok := elemEntry.Key.(cbor.Tstr)
			if !ok {
				return nil, fmt.Errorf("%w: data element key in %q is not a text string",
					ErrMalformedStructure, string(nsName))
			}
			tagged, ok := elemEntry.Value.(cbor.Tagged)
			if !ok || tagged.Number != cbor.TagEncodedCBOR {
				return nil, fmt.Errorf("%w: data element %q/%q is not tag-24 wrapped",
					ErrMalformedStructure, string(nsName), string(elemName))
			}
			raw, ok := tagged.Item.(cbor.Bstr)
			if !ok {
				return nil, fmt.Errorf("%w: tag-24 content for %q/%q is not a byte string",
					ErrMalformedStructure, string(nsName), string(elemName))
			}
			ns.elements = append(ns.elements, dataElement{
				name:  string(elemName),
				value: []byte(raw),
			})
		}
		d.nameSpaces = append(d.nameSpaces, ns)
	}
	return d, nil
}

func (d *NameSpacedData) nameSpace(name string) *nameSpace {
	for i := range d.nameSpaces {
		if d.nameSpaces[i].name == name {
			return &d.nameSpaces[i]
		}
	}
	return nil
}

func (ns *nameSpace) element(name string) *dataElement {
	for i := range ns.elements {
		if ns.elements[i].name == name {
			return &ns.elements[i]
		}
	}
	return nil
}

func (d *NameSpacedData) decodeElement(nameSpace, name string) (cbor.DataItem, error) {
	raw, err := d.DataElement(nameSpace, name)
	if err != nil {
		return nil, err
	}
	return cbor.Decode(raw)
}
