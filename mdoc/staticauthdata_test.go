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
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/dominikschlosser/mdoc-core/cbor"
)

// encodedItem builds an IssuerSignedItem map from the given entries and
// returns its tag-24 wrapped encoding, the form items take inside a
// digestIdMapping.
func encodedItem(t *testing.T, entries cbor.Map) []byte {
	t.Helper()
	return cbor.Encode(cbor.EncodedCBOR(cbor.Encode(entries)))
}

// validDigestIDMapping builds three items for one namespace with
// deliberately differing field orders, to pin down that no
// canonicalization happens anywhere in the pipeline.
func validDigestIDMapping(t *testing.T) DigestIDMapping {
	t.Helper()

	item1 := encodedItem(t, cbor.NewMapBuilder().
		Put("random", []byte{0x50, 0x51, 0x52}).
		Put("digestID", 42).
		Put("elementIdentifier", "dataElementName").
		Put("elementValue", cbor.Null).
		Build())

	item2 := encodedItem(t, cbor.NewMapBuilder().
		Put("digestID", 43).
		Put("random", []byte{0x53, 0x54, 0x55}).
		Put("elementIdentifier", "dataElementName2").
		Put("elementValue", cbor.Null).
		Build())

	item3 := encodedItem(t, cbor.NewMapBuilder().
		Put("digestID", 44).
		Put("random", []byte{0x53, 0x54, 0x55}).
		Put("elementIdentifier", "portrait").
		Put("elementValue", cbor.Encode(cbor.Bstr{0x20, 0x21, 0x22, 0x23})).
		Build())

	return DigestIDMapping{
		{NameSpace: "org.namespace", Items: [][]byte{item1, item2, item3}},
	}
}

func validIssuerAuth() []byte {
	return cbor.Encode(cbor.NewArrayBuilder().
		AddArray().
		End().
		Add(cbor.Null).
		Add([]byte{0x01, 0x02}).
		Build())
}

func TestGeneratePreservesItemOrder(t *testing.T) {
	mapping := validDigestIDMapping(t)
	issuerAuth := validIssuerAuth()

	staticAuthData, err := Generate(mapping, issuerAuth)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	diag, err := cbor.Diagnose(staticAuthData, cbor.DiagnosticOptions{
		EmbeddedCBOR: true,
		PrettyPrint:  true,
	})
	if err != nil {
		t.Fatalf("Diagnose() error: %v", err)
	}

	want := "{\n" +
		"  \"digestIdMapping\": {\n" +
		"    \"org.namespace\": [\n" +
		"      24(<< {\n" +
		"        \"random\": h'505152',\n" +
		"        \"digestID\": 42,\n" +
		"        \"elementIdentifier\": \"dataElementName\",\n" +
		"        \"elementValue\": null\n" +
		"      } >>),\n" +
		"      24(<< {\n" +
		"        \"digestID\": 43,\n" +
		"        \"random\": h'535455',\n" +
		"        \"elementIdentifier\": \"dataElementName2\",\n" +
		"        \"elementValue\": null\n" +
		"      } >>),\n" +
		"      24(<< {\n" +
		"        \"digestID\": 44,\n" +
		"        \"random\": h'535455',\n" +
		"        \"elementIdentifier\": \"portrait\",\n" +
		"        \"elementValue\": h'4420212223'\n" +
		"      } >>)\n" +
		"    ]\n" +
		"  },\n" +
		"  \"issuerAuth\": [\n" +
		"    [],\n" +
		"    null,\n" +
		"    h'0102'\n" +
		"  ]\n" +
		"}"
	if diag != want {
		t.Errorf("diagnostics:\n%s\nwant:\n%s", diag, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	mapping := validDigestIDMapping(t)
	issuerAuth := validIssuerAuth()

	staticAuthData, err := Generate(mapping, issuerAuth)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	decoded, err := Parse(staticAuthData)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(decoded.DigestIDMapping) != 1 {
		t.Fatalf("got %d namespaces, want 1", len(decoded.DigestIDMapping))
	}
	items, ok := decoded.DigestIDMapping.Items("org.namespace")
	if !ok {
		t.Fatal("namespace org.namespace missing")
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	// Items come back byte-identical, in original order.
	for i, want := range mapping[0].Items {
		if !bytes.Equal(items[i], want) {
			t.Errorf("item %d = %x, want %x", i, items[i], want)
		}
	}

	// Per-item diagnostics still show each item's own field order.
	diag, err := cbor.Diagnose(items[0], cbor.DiagnosticOptions{
		EmbeddedCBOR: true,
		PrettyPrint:  true,
	})
	if err != nil {
		t.Fatalf("Diagnose() error: %v", err)
	}
	want := "24(<< {\n" +
		"  \"random\": h'505152',\n" +
		"  \"digestID\": 42,\n" +
		"  \"elementIdentifier\": \"dataElementName\",\n" +
		"  \"elementValue\": null\n" +
		"} >>)"
	if diag != want {
		t.Errorf("item 0 diagnostics:\n%s\nwant:\n%s", diag, want)
	}

	diag, err = cbor.Diagnose(items[1], cbor.DiagnosticOptions{
		EmbeddedCBOR: true,
		PrettyPrint:  true,
	})
	if err != nil {
		t.Fatalf("Diagnose() error: %v", err)
	}
	want = "24(<< {\n" +
		"  \"digestID\": 43,\n" +
		"  \"random\": h'535455',\n" +
		"  \"elementIdentifier\": \"dataElementName2\",\n" +
		"  \"elementValue\": null\n" +
		"} >>)"
	if diag != want {
		t.Errorf("item 1 diagnostics:\n%s\nwant:\n%s", diag, want)
	}

	if !bytes.Equal(decoded.IssuerAuth, issuerAuth) {
		t.Errorf("issuerAuth = %x, want %x", decoded.IssuerAuth, issuerAuth)
	}
}

func TestGenerateEmptyMapping(t *testing.T) {
	if _, err := Generate(nil, validIssuerAuth()); !errors.Is(err, ErrEmptyMapping) {
		t.Errorf("Generate(nil mapping) error = %v, want ErrEmptyMapping", err)
	}

	empty := DigestIDMapping{{NameSpace: "org.namespace"}}
	if _, err := Generate(empty, validIssuerAuth()); !errors.Is(err, ErrEmptyMapping) {
		t.Errorf("Generate(empty namespace) error = %v, want ErrEmptyMapping", err)
	}
}

func TestGenerateMalformedIssuerAuth(t *testing.T) {
	mapping := validDigestIDMapping(t)
	if _, err := Generate(mapping, []byte{0x82, 0x01}); !errors.Is(err, cbor.ErrMalformed) {
		t.Errorf("Generate(truncated issuerAuth) error = %v, want cbor.ErrMalformed", err)
	}
}

func TestGenerateMultipleNameSpaces(t *testing.T) {
	item := encodedItem(t, cbor.NewMapBuilder().
		Put("digestID", 1).
		Put("random", []byte{0x01}).
		Put("elementIdentifier", "x").
		Put("elementValue", cbor.Null).
		Build())

	mapping := DigestIDMapping{
		{NameSpace: "org.b", Items: [][]byte{item}},
		{NameSpace: "org.a", Items: [][]byte{item}},
	}

	data, err := Generate(mapping, validIssuerAuth())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	decoded, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// Namespace order survives even when non-lexicographic.
	want := []string{"org.b", "org.a"}
	if got := decoded.DigestIDMapping.NameSpaces(); !reflect.DeepEqual(got, want) {
		t.Errorf("NameSpaces() = %v, want %v", got, want)
	}
}

func TestParseMalformedStructure(t *testing.T) {
	validItems := cbor.Array{cbor.EncodedCBOR(cbor.Encode(cbor.Map{}))}

	tests := []struct {
		name string
		item cbor.DataItem
	}{
		{"not a map", cbor.Uint(1)},
		{"missing digestIdMapping", cbor.Map{
			{cbor.Tstr("issuerAuth"), cbor.Array{}},
		}},
		{"digestIdMapping not a map", cbor.Map{
			{cbor.Tstr("digestIdMapping"), cbor.Uint(1)},
			{cbor.Tstr("issuerAuth"), cbor.Array{}},
		}},
		{"namespace key not text", cbor.Map{
			{cbor.Tstr("digestIdMapping"), cbor.Map{
				{cbor.Uint(1), validItems},
			}},
			{cbor.Tstr("issuerAuth"), cbor.Array{}},
		}},
		{"namespace value not array", cbor.Map{
			{cbor.Tstr("digestIdMapping"), cbor.Map{
				{cbor.Tstr("ns"), cbor.Uint(1)},
			}},
			{cbor.Tstr("issuerAuth"), cbor.Array{}},
		}},
		{"item not an encoded item", cbor.Map{
			{cbor.Tstr("digestIdMapping"), cbor.Map{
				{cbor.Tstr("ns"), cbor.Array{cbor.Uint(7)}},
			}},
			{cbor.Tstr("issuerAuth"), cbor.Array{}},
		}},
		{"missing issuerAuth", cbor.Map{
			{cbor.Tstr("digestIdMapping"), cbor.Map{
				{cbor.Tstr("ns"), validItems},
			}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(cbor.Encode(tt.item))
			if !errors.Is(err, ErrMalformedStructure) {
				t.Errorf("Parse() error = %v, want ErrMalformedStructure", err)
			}
		})
	}
}

func TestParseIssuerSignedItemFields(t *testing.T) {
	mapping := validDigestIDMapping(t)

	isi, err := ParseIssuerSignedItem(mapping[0].Items[0])
	if err != nil {
		t.Fatalf("ParseIssuerSignedItem() error: %v", err)
	}
	if isi.DigestID != 42 {
		t.Errorf("DigestID = %d, want 42", isi.DigestID)
	}
	if !bytes.Equal(isi.Random, []byte{0x50, 0x51, 0x52}) {
		t.Errorf("Random = %x", isi.Random)
	}
	if isi.ElementIdentifier != "dataElementName" {
		t.Errorf("ElementIdentifier = %q", isi.ElementIdentifier)
	}
	if !cbor.Equal(isi.ElementValue, cbor.Null) {
		t.Errorf("ElementValue = %#v, want null", isi.ElementValue)
	}

	if _, err := ParseIssuerSignedItem(cbor.Encode(cbor.Uint(1))); !errors.Is(err, ErrMalformedStructure) {
		t.Errorf("ParseIssuerSignedItem(not a map) error = %v, want ErrMalformedStructure", err)
	}
}
