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
	"errors"
	"testing"

	"github.com/dominikschlosser/mdoc-core/cbor"
)

func TestParseIssuerSignedItemBareMap(t *testing.T) {
	data := cbor.Encode(cbor.NewMapBuilder().
		Put("digestID", 5).
		Put("elementIdentifier", "age_over_18").
		Put("elementValue", true).
		Build())

	isi, err := ParseIssuerSignedItem(data)
	if err != nil {
		t.Fatalf("ParseIssuerSignedItem() error: %v", err)
	}
	if isi.DigestID != 5 {
		t.Errorf("DigestID = %d, want 5", isi.DigestID)
	}
	if isi.ElementIdentifier != "age_over_18" {
		t.Errorf("ElementIdentifier = %q", isi.ElementIdentifier)
	}
	if isi.Random != nil {
		t.Errorf("Random = %x, want nil", isi.Random)
	}
	if !cbor.Equal(isi.ElementValue, cbor.True) {
		t.Errorf("ElementValue = %#v, want true", isi.ElementValue)
	}
}

func TestParseIssuerSignedItemErrors(t *testing.T) {
	tests := []struct {
		name string
		item cbor.DataItem
	}{
		{"tag-24 content not a byte string", cbor.Tagged{Number: cbor.TagEncodedCBOR, Item: cbor.Uint(1)}},
		{"missing digestID", cbor.Map{
			{cbor.Tstr("elementIdentifier"), cbor.Tstr("x")},
		}},
		{"digestID not unsigned", cbor.Map{
			{cbor.Tstr("digestID"), cbor.Nint(0)},
			{cbor.Tstr("elementIdentifier"), cbor.Tstr("x")},
		}},
		{"random not a byte string", cbor.Map{
			{cbor.Tstr("digestID"), cbor.Uint(1)},
			{cbor.Tstr("random"), cbor.Tstr("nope")},
			{cbor.Tstr("elementIdentifier"), cbor.Tstr("x")},
		}},
		{"missing elementIdentifier", cbor.Map{
			{cbor.Tstr("digestID"), cbor.Uint(1)},
		}},
		{"elementIdentifier not text", cbor.Map{
			{cbor.Tstr("digestID"), cbor.Uint(1)},
			{cbor.Tstr("elementIdentifier"), cbor.Uint(2)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIssuerSignedItem(cbor.Encode(tt.item))
			if !errors.Is(err, ErrMalformedStructure) {
				t.Errorf("ParseIssuerSignedItem() error = %v, want ErrMalformedStructure", err)
			}
		})
	}
}

func TestParseIssuerSignedItemTruncated(t *testing.T) {
	if _, err := ParseIssuerSignedItem([]byte{0xa2, 0x61}); !errors.Is(err, cbor.ErrMalformed) {
		t.Errorf("error = %v, want cbor.ErrMalformed", err)
	}
}
