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
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DiagnosticOptions controls diagnostic-notation rendering. The zero
// value produces compact single-line output with tag-24 byte strings
// shown as hex.
type DiagnosticOptions struct {
	// EmbeddedCBOR renders a tag-24 byte string as its decoded content,
	// "24(<< ... >>)", instead of raw hex.
	EmbeddedCBOR bool
	// PrettyPrint emits multi-line output indented two spaces per level.
	PrettyPrint bool
}

// Diagnostics renders an item in RFC 8949 diagnostic notation. Test
// suites assert exact output, so the format is stable: text keys are
// double-quoted, byte strings are h'..' with lowercase hex, and pretty
// printing indents two spaces per nesting level with empty containers
// kept inline.
func Diagnostics(item DataItem, opts DiagnosticOptions) string {
	var sb strings.Builder
	renderItem(&sb, item, 0, opts)
	return sb.String()
}

// Diagnose decodes one complete data item and renders it in diagnostic
// notation.
func Diagnose(data []byte, opts DiagnosticOptions) (string, error) {
	item, err := Decode(data)
	if err != nil {
		return "", err
	}
	return Diagnostics(item, opts), nil
}

func renderItem(sb *strings.Builder, item DataItem, depth int, opts DiagnosticOptions) {
	switch v := item.(type) {
	case Uint:
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	case Nint:
		renderNint(sb, v)
	case Bstr:
		sb.WriteString("h'")
		sb.WriteString(hex.EncodeToString(v))
		sb.WriteString("'")
	case Tstr:
		renderTstr(sb, string(v))
	case Array:
		renderArray(sb, v, depth, opts)
	case Map:
		renderMap(sb, v, depth, opts)
	case Tagged:
		renderTagged(sb, v, depth, opts)
	case Simple:
		switch v {
		case False:
			sb.WriteString("false")
		case True:
			sb.WriteString("true")
		case Null:
			sb.WriteString("null")
		case Undefined:
			sb.WriteString("undefined")
		default:
			fmt.Fprintf(sb, "simple(%d)", byte(v))
		}
	case Float:
		renderFloat(sb, float64(v))
	case Raw:
		if decoded, err := Decode(v); err == nil {
			renderItem(sb, decoded, depth, opts)
		} else {
			sb.WriteString("h'")
			sb.WriteString(hex.EncodeToString(v))
			sb.WriteString("'")
		}
	}
}

func renderNint(sb *strings.Builder, n Nint) {
	if uint64(n) == math.MaxUint64 {
		sb.WriteString("-18446744073709551616")
		return
	}
	sb.WriteString("-")
	sb.WriteString(strconv.FormatUint(uint64(n)+1, 10))
}

func renderTstr(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r < 0x20:
			fmt.Fprintf(sb, "\\u%04x", r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

func renderFloat(sb *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		sb.WriteString("NaN")
	case math.IsInf(f, 1):
		sb.WriteString("Infinity")
	case math.IsInf(f, -1):
		sb.WriteString("-Infinity")
	default:
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

func renderArray(sb *strings.Builder, arr Array, depth int, opts DiagnosticOptions) {
	if len(arr) == 0 {
		sb.WriteString("[]")
		return
	}
	if !opts.PrettyPrint {
		sb.WriteString("[")
		for i, member := range arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			renderItem(sb, member, depth, opts)
		}
		sb.WriteString("]")
		return
	}
	sb.WriteString("[\n")
	for i, member := range arr {
		writeIndent(sb, depth+1)
		renderItem(sb, member, depth+1, opts)
		if i < len(arr)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	writeIndent(sb, depth)
	sb.WriteString("]")
}

func renderMap(sb *strings.Builder, m Map, depth int, opts DiagnosticOptions) {
	if len(m) == 0 {
		sb.WriteString("{}")
		return
	}
	if !opts.PrettyPrint {
		sb.WriteString("{")
		for i, e := range m {
			if i > 0 {
				sb.WriteString(", ")
			}
			renderItem(sb, e.Key, depth, opts)
			sb.WriteString(": ")
			renderItem(sb, e.Value, depth, opts)
		}
		sb.WriteString("}")
		return
	}
	sb.WriteString("{\n")
	for i, e := range m {
		writeIndent(sb, depth+1)
		renderItem(sb, e.Key, depth+1, opts)
		sb.WriteString(": ")
		renderItem(sb, e.Value, depth+1, opts)
		if i < len(m)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	writeIndent(sb, depth)
	sb.WriteString("}")
}

func renderTagged(sb *strings.Builder, t Tagged, depth int, opts DiagnosticOptions) {
	if t.Number == TagEncodedCBOR && opts.EmbeddedCBOR {
		if b, ok := t.Item.(Bstr); ok {
			if inner, err := Decode(b); err == nil {
				sb.WriteString("24(<< ")
				renderItem(sb, inner, depth, opts)
				sb.WriteString(" >>)")
				return
			}
		}
	}
	sb.WriteString(strconv.FormatUint(t.Number, 10))
	sb.WriteString("(")
	renderItem(sb, t.Item, depth, opts)
	sb.WriteString(")")
}

func writeIndent(sb *strings.Builder, depth int) {
	for range depth {
		sb.WriteString("  ")
	}
}
