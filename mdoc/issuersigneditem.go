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

package mdoc

import (
	"fmt"

	"github.com/dominikschlosser/mdoc-core/cbor"
)

// IssuerSignedItem is a single decoded claim: the digest ID and random
// salt that tie it to the MSO, the element name, and its value.
type IssuerSignedItem struct {
	DigestID          uint64
	Random            []byte
	ElementIdentifier string
	ElementValue      cbor.DataItem
}

// ParseIssuerSignedItem decodes one encoded IssuerSignedItem, accepting
// either the tag-24 wrapped form found inside a digestIdMapping or the
// bare inner map encoding.
func ParseIssuerSignedItem(data []byte) (*IssuerSignedItem, error) {
	item, err := cbor.Decode(data)
	if err != nil {
		return nil, err
	}
	if tagged, ok := item.(cbor.Tagged); ok && tagged.Number == cbor.TagEncodedCBOR {
		inner, ok := tagged.Item.(cbor.Bstr)
		if !ok {
			return nil, fmt.Errorf("%w: tag-24 content is not a byte string", ErrMalformedStructure)
		}
		if item, err = cbor.Decode(inner); err != nil {
			return nil, err
		}
	}

	m, ok := item.(cbor.Map)
	if !ok {
		return nil, fmt.Errorf("%w: IssuerSignedItem is not a map", ErrMalformedStructure)
	}

	isi := &IssuerSignedItem{}

	didItem, ok := m.Get("digestID")
	if !ok {
		return nil, fmt.Errorf("%w: missing digestID", ErrMalformedStructure)
	}
	did, ok := didItem.(cbor.Uint)
	if !ok {
		return nil, fmt.Errorf("%w: digestID is not an unsigned integer", ErrMalformedStructure)
	}
	isi.DigestID = uint64(did)

	if randomItem, ok := m.Get("random"); ok {
		random, ok := randomItem.(cbor.Bstr)
		if !ok {
			return nil, fmt.Errorf("%w: random is not a byte string", ErrMalformedStructure)
		}
		isi.Random = []byte(random)
	}

	eiItem, ok := m.Get("elementIdentifier")
	if !ok {
		return nil, fmt.Errorf("%w: missing elementIdentifier", ErrMalformedStructure)
	}
	ei, ok := eiItem.(cbor.Tstr)
	if !ok {
		return nil, fmt.Errorf("%w: elementIdentifier is not a text string", ErrMalformedStructure)
	}
	isi.ElementIdentifier = string(ei)

	if value, ok := m.Get("elementValue"); ok {
		isi.ElementValue = value
	}

	return isi, nil
}
