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

// Package mdoc implements the issuer-signed static authentication data
// of ISO 18013-5 mobile documents: the structure binding per-attribute
// IssuerSignedItem encodings to the issuer's COSE_Sign1 authentication
// object.
package mdoc

import (
	"errors"
	"fmt"

	"github.com/dominikschlosser/mdoc-core/cbor"
)

var (
	// ErrEmptyMapping means a generator was invoked with no namespaces
	// or a namespace with no items.
	ErrEmptyMapping = errors.New("empty digest ID mapping")

	// ErrMalformedStructure means the bytes parse as CBOR but do not
	// have the StaticAuthData shape.
	ErrMalformedStructure = errors.New("malformed StaticAuthData structure")
)

// NameSpaceItems is one namespace's ordered list of encoded
// IssuerSignedItem byte strings (each already tag-24 wrapped by the
// issuer). The bytes are opaque to this layer and carried verbatim.
type NameSpaceItems struct {
	NameSpace string
	Items     [][]byte
}

// DigestIDMapping associates namespaces with their item encodings,
// preserving namespace order. Go's built-in maps would lose the
// order the encoding depends on.
type DigestIDMapping []NameSpaceItems

// NameSpaces returns the namespace names in order.
func (m DigestIDMapping) NameSpaces() []string {
	names := make([]string, len(m))
	for i, ns := range m {
		names[i] = ns.NameSpace
	}
	return names
}

// Items returns the item list for a namespace.
func (m DigestIDMapping) Items(nameSpace string) ([][]byte, bool) {
	for _, ns := range m {
		if ns.NameSpace == nameSpace {
			return ns.Items, true
		}
	}
	return nil, false
}

// StaticAuthData binds the digest ID mapping to the issuer
// authentication object. IssuerAuth holds the raw encoding of a
// COSE_Sign1-shaped array; this layer never interprets or verifies it.
type StaticAuthData struct {
	DigestIDMapping DigestIDMapping
	IssuerAuth      []byte
}

// Generate encodes a StaticAuthData structure. Each item byte string is
// spliced into its namespace array verbatim, preserving the exact field
// order inside every IssuerSignedItem; no canonicalization takes place.
// The issuerAuth bytes are decoded so they appear as a native structure
// in the output.
//
// An empty mapping, or a namespace with no items, fails with
// ErrEmptyMapping before any bytes are produced.
func Generate(digestIDMapping DigestIDMapping, issuerAuth []byte) ([]byte, error) {
	if len(digestIDMapping) == 0 {
		return nil, fmt.Errorf("%w: no namespaces", ErrEmptyMapping)
	}
	for _, ns := range digestIDMapping {
		if len(ns.Items) == 0 {
			return nil, fmt.Errorf("%w: namespace %q has no items", ErrEmptyMapping, ns.NameSpace)
		}
	}

	issuerAuthItem, err := cbor.Decode(issuerAuth)
	if err != nil {
		return nil, fmt.Errorf("decoding issuerAuth: %w", err)
	}

	mappingBuilder := cbor.NewMapBuilder().PutMap("digestIdMapping")
	for _, ns := range digestIDMapping {
		itemsBuilder := mappingBuilder.PutArray(ns.NameSpace)
		for _, item := range ns.Items {
			itemsBuilder.Add(cbor.Raw(item))
		}
		mappingBuilder = itemsBuilder.End()
	}
	top := mappingBuilder.End().
		Put("issuerAuth", issuerAuthItem).
		Build()

	return cbor.Encode(top), nil
}

// Parse decodes StaticAuthData bytes. It fails with
// ErrMalformedStructure if the top-level item is not a map, if
// "digestIdMapping" is missing or is not a map of text-string-keyed
// arrays of embedded item encodings, or if "issuerAuth" is missing.
//
// Items come back re-encoded to their original bytes in original order;
// IssuerAuth is byte-identical to what the generator received.
func Parse(data []byte) (*StaticAuthData, error) {
	item, err := cbor.Decode(data)
	if err != nil {
		return nil, err
	}
	top, ok := item.(cbor.Map)
	if !ok {
		return nil, fmt.Errorf("%w: top-level item is not a map", ErrMalformedStructure)
	}

	mappingItem, ok := top.Get("digestIdMapping")
	if !ok {
		return nil, fmt.Errorf("%w: missing digestIdMapping", ErrMalformedStructure)
	}
	mappingMap, ok := mappingItem.(cbor.Map)
	if !ok {
		return nil, fmt.Errorf("%w: digestIdMapping is not a map", ErrMalformedStructure)
	}

	var mapping DigestIDMapping
	for _, entry := range mappingMap {
		nsName, ok := entry.Key.(cbor.Tstr)
		if !ok {
			return nil, fmt.Errorf("%w: namespace key is not a text string", ErrMalformedStructure)
		}
		arr, ok := entry.Value.(cbor.Array)
		if !ok {
			return nil, fmt.Errorf("%w: namespace %q value is not an array",
				ErrMalformedStructure, string(nsName))
		}
		ns := NameSpaceItems{NameSpace: string(nsName)}
		for i, member := range arr {
			if !isItemEncoding(member) {
				return nil, fmt.Errorf("%w: namespace %q item %d is not an encoded item",
					ErrMalformedStructure, string(nsName), i)
			}
			ns.Items = append(ns.Items, cbor.Encode(member))
		}
		mapping = append(mapping, ns)
	}

	issuerAuthItem, ok := top.Get("issuerAuth")
	if !ok {
		return nil, fmt.Errorf("%w: missing issuerAuth", ErrMalformedStructure)
	}

	return &StaticAuthData{
		DigestIDMapping: mapping,
		IssuerAuth:      cbor.Encode(issuerAuthItem),
	}, nil
}

// isItemEncoding accepts the shapes a digestIdMapping array may carry:
// a tag-24 wrapped byte string (the usual IssuerSignedItemBytes form) or
// a bare byte string.
func isItemEncoding(item cbor.DataItem) bool {
	switch v := item.(type) {
	case cbor.Bstr:
		return true
	case cbor.Tagged:
		if v.Number != cbor.TagEncodedCBOR {
			return false
		}
		_, ok := v.Item.(cbor.Bstr)
		return ok
	default:
		return false
	}
}
