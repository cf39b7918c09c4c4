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

import (
	"fmt"
	"testing"
)

func TestDiagnosticsCompact(t *testing.T) {
	tests := []struct {
		name string
		item DataItem
		want string
	}{
		{"uint", Uint(42), "42"},
		{"negative", Int(-42), "-42"},
		{"bstr", Bstr{0x01, 0x02}, "h'0102'"},
		{"tstr", Tstr("hello"), `"hello"`},
		{"tstr escaping", Tstr(`say "hi"\`), `"say \"hi\"\\"`},
		{"empty array", Array{}, "[]"},
		{"empty map", Map{}, "{}"},
		{"array", Array{Uint(1), Tstr("x"), Null}, `[1, "x", null]`},
		{
			"map",
			Map{{Tstr("a"), Uint(1)}, {Tstr("b"), Array{Uint(2), Uint(3)}}},
			`{"a": 1, "b": [2, 3]}`,
		},
		{"bool true", True, "true"},
		{"bool false", False, "false"},
		{"undefined", Undefined, "undefined"},
		{"reserved simple", Simple(99), "simple(99)"},
		{"float", Float(1.5), "1.5"},
		{"tag", Tagged{Number: 0, Item: Tstr("2026-08-31")}, `0("2026-08-31")`},
		{"int map key", Map{{Uint(1), Int(-7)}}, "{1: -7}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diagnostics(tt.item, DiagnosticOptions{})
			if got != tt.want {
				t.Errorf("Diagnostics() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnosticsTag24(t *testing.T) {
	inner := Map{
		{Tstr("digestID"), Uint(42)},
		{Tstr("random"), Bstr{0x50, 0x51, 0x52}},
	}
	item := EncodedCBOR(Encode(inner))

	// Without the embedded option the tag content stays raw hex.
	want := fmt.Sprintf("24(h'%x')", Encode(inner))
	if got := Diagnostics(item, DiagnosticOptions{}); got != want {
		t.Errorf("Diagnostics() = %q, want %q", got, want)
	}

	// With it, the embedded value is rendered in original key order.
	want = `24(<< {"digestID": 42, "random": h'505152'} >>)`
	if got := Diagnostics(item, DiagnosticOptions{EmbeddedCBOR: true}); got != want {
		t.Errorf("Diagnostics(embedded) = %q, want %q", got, want)
	}
}

func TestDiagnosticsPrettyPrint(t *testing.T) {
	item := Map{
		{Tstr("nameSpaces"), Map{
			{Tstr("org.iso.18013.5.1"), Array{Uint(1), Uint(2)}},
		}},
		{Tstr("status"), Uint(0)},
		{Tstr("empty"), Array{}},
	}

	want := "{\n" +
		"  \"nameSpaces\": {\n" +
		"    \"org.iso.18013.5.1\": [\n" +
		"      1,\n" +
		"      2\n" +
		"    ]\n" +
		"  },\n" +
		"  \"status\": 0,\n" +
		"  \"empty\": []\n" +
		"}"
	got := Diagnostics(item, DiagnosticOptions{PrettyPrint: true})
	if got != want {
		t.Errorf("Diagnostics(pretty) = %q, want %q", got, want)
	}
}

func TestDiagnosticsEmbeddedPretty(t *testing.T) {
	inner := Map{
		{Tstr("random"), Bstr{0x50, 0x51, 0x52}},
		{Tstr("digestID"), Uint(42)},
		{Tstr("elementIdentifier"), Tstr("dataElementName")},
		{Tstr("elementValue"), Null},
	}
	item := EncodedCBOR(Encode(inner))

	want := "24(<< {\n" +
		"  \"random\": h'505152',\n" +
		"  \"digestID\": 42,\n" +
		"  \"elementIdentifier\": \"dataElementName\",\n" +
		"  \"elementValue\": null\n" +
		"} >>)"
	got := Diagnostics(item, DiagnosticOptions{EmbeddedCBOR: true, PrettyPrint: true})
	if got != want {
		t.Errorf("Diagnostics() = %q, want %q", got, want)
	}
}

// TestDiagnosticsSiblingOrderIndependence renders two sibling items whose
// maps carry the same keys in different order: each keeps its own
// original order.
func TestDiagnosticsSiblingOrderIndependence(t *testing.T) {
	first := Map{
		{Tstr("digestID"), Uint(1)},
		{Tstr("random"), Bstr{0x01}},
	}
	second := Map{
		{Tstr("random"), Bstr{0x02}},
		{Tstr("digestID"), Uint(2)},
	}
	arr := Array{
		EncodedCBOR(Encode(first)),
		EncodedCBOR(Encode(second)),
	}

	want := `[24(<< {"digestID": 1, "random": h'01'} >>), ` +
		`24(<< {"random": h'02', "digestID": 2} >>)]`
	got := Diagnostics(arr, DiagnosticOptions{EmbeddedCBOR: true})
	if got != want {
		t.Errorf("Diagnostics() = %q, want %q", got, want)
	}
}

func TestDiagnoseRejectsMalformed(t *testing.T) {
	if _, err := Diagnose([]byte{0x82, 0x01}, DiagnosticOptions{}); err == nil {
		t.Fatal("Diagnose(truncated) succeeded, want error")
	}
}

func TestDiagnoseFromEncodedBytes(t *testing.T) {
	data := Encode(Map{{Tstr("ok"), True}})
	got, err := Diagnose(data, DiagnosticOptions{})
	if err != nil {
		t.Fatalf("Diagnose() error: %v", err)
	}
	if got != `{"ok": true}` {
		t.Errorf("Diagnose() = %q", got)
	}
}
