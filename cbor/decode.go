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
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/x448/float16"
)

// ErrMalformed is returned when input bytes are not well-formed CBOR or a
// data item runs past the end of the buffer.
var ErrMalformed = errors.New("malformed CBOR")

// maxNestingDepth bounds recursion so adversarial input cannot exhaust
// the stack. Credential structures in the wild stay far below this.
const maxNestingDepth = 256

// Decode parses exactly one data item spanning the whole buffer. Trailing
// bytes after the item are an error.
func Decode(data []byte) (DataItem, error) {
	item, next, err := DecodeAt(data, 0)
	if err != nil {
		return nil, err
	}
	if next != len(data) {
		return nil, fmt.Errorf(
			"%w: %d trailing bytes after data item",
			ErrMalformed, len(data)-next,
		)
	}
	return item, nil
}

// DecodeAt parses one data item starting at offset and returns it
// together with the offset of the first byte after the item. It never
// panics, whatever the input.
func DecodeAt(data []byte, offset int) (DataItem, int, error) {
	if offset < 0 || offset > len(data) {
		return nil, 0, fmt.Errorf("%w: offset %d out of range", ErrMalformed, offset)
	}
	return decodeItem(data, offset, 0)
}

func decodeItem(data []byte, off, depth int) (DataItem, int, error) {
	if depth > maxNestingDepth {
		return nil, 0, fmt.Errorf("%w: nesting deeper than %d levels", ErrMalformed, maxNestingDepth)
	}
	if off >= len(data) {
		return nil, 0, fmt.Errorf("%w: unexpected end of data at offset %d", ErrMalformed, off)
	}
	ib := data[off]
	major := ib >> 5
	ai := ib & 0x1f

	if major == 7 {
		return decodeMajor7(data, off, ai)
	}
	if ai == 31 {
		return nil, 0, fmt.Errorf(
			"%w: indefinite-length item at offset %d", ErrMalformed, off,
		)
	}

	n, off, err := decodeArgument(data, off, ai)
	if err != nil {
		return nil, 0, err
	}

	switch major {
	case 0:
		return Uint(n), off, nil
	case 1:
		return Nint(n), off, nil
	case 2:
		payload, off, err := readPayload(data, off, n)
		if err != nil {
			return nil, 0, err
		}
		b := make([]byte, len(payload))
		copy(b, payload)
		return Bstr(b), off, nil
	case 3:
		payload, off, err := readPayload(data, off, n)
		if err != nil {
			return nil, 0, err
		}
		if !utf8.Valid(payload) {
			return nil, 0, fmt.Errorf("%w: text string is not valid UTF-8", ErrMalformed)
		}
		return Tstr(payload), off, nil
	case 4:
		if n > uint64(len(data)-off) {
			return nil, 0, fmt.Errorf("%w: array length %d exceeds remaining input", ErrMalformed, n)
		}
		arr := make(Array, 0, int(n))
		for i := uint64(0); i < n; i++ {
			var member DataItem
			member, off, err = decodeItem(data, off, depth+1)
			if err != nil {
				return nil, 0, err
			}
			arr = append(arr, member)
		}
		return arr, off, nil
	case 5:
		if n > uint64((len(data)-off)/2) {
			return nil, 0, fmt.Errorf("%w: map length %d exceeds remaining input", ErrMalformed, n)
		}
		m := make(Map, 0, int(n))
		for i := uint64(0); i < n; i++ {
			var key, value DataItem
			key, off, err = decodeItem(data, off, depth+1)
			if err != nil {
				return nil, 0, err
			}
			value, off, err = decodeItem(data, off, depth+1)
			if err != nil {
				return nil, 0, err
			}
			m = append(m, MapEntry{Key: key, Value: value})
		}
		return m, off, nil
	default: // major == 6
		item, off, err := decodeItem(data, off, depth+1)
		if err != nil {
			return nil, 0, err
		}
		return Tagged{Number: n, Item: item}, off, nil
	}
}

func decodeMajor7(data []byte, off int, ai byte) (DataItem, int, error) {
	switch {
	case ai < 24:
		return Simple(ai), off + 1, nil
	case ai == 24:
		if off+2 > len(data) {
			return nil, 0, fmt.Errorf("%w: unexpected end of data in simple value", ErrMalformed)
		}
		v := data[off+1]
		if v < 32 {
			// RFC 8949 §3.3: two-byte encodings of simple values
			// below 32 are not well-formed.
			return nil, 0, fmt.Errorf("%w: invalid two-byte simple value %d", ErrMalformed, v)
		}
		return Simple(v), off + 2, nil
	case ai == 25:
		if off+3 > len(data) {
			return nil, 0, fmt.Errorf("%w: unexpected end of data in float16", ErrMalformed)
		}
		bits := uint16(data[off+1])<<8 | uint16(data[off+2])
		return Float(float16.Frombits(bits).Float32()), off + 3, nil
	case ai == 26:
		if off+5 > len(data) {
			return nil, 0, fmt.Errorf("%w: unexpected end of data in float32", ErrMalformed)
		}
		bits := uint32(data[off+1])<<24 | uint32(data[off+2])<<16 |
			uint32(data[off+3])<<8 | uint32(data[off+4])
		return Float(math.Float32frombits(bits)), off + 5, nil
	case ai == 27:
		if off+9 > len(data) {
			return nil, 0, fmt.Errorf("%w: unexpected end of data in float64", ErrMalformed)
		}
		var bits uint64
		for _, b := range data[off+1 : off+9] {
			bits = bits<<8 | uint64(b)
		}
		return Float(math.Float64frombits(bits)), off + 9, nil
	case ai == 31:
		return nil, 0, fmt.Errorf("%w: unexpected break code at offset %d", ErrMalformed, off)
	default:
		return nil, 0, fmt.Errorf("%w: reserved additional info %d", ErrMalformed, ai)
	}
}

// decodeArgument reads the head argument for major types 0-6 and returns
// it with the offset just past the head.
func decodeArgument(data []byte, off int, ai byte) (uint64, int, error) {
	switch {
	case ai < 24:
		return uint64(ai), off + 1, nil
	case ai == 24:
		if off+2 > len(data) {
			return 0, 0, fmt.Errorf("%w: unexpected end of data in head", ErrMalformed)
		}
		return uint64(data[off+1]), off + 2, nil
	case ai == 25:
		if off+3 > len(data) {
			return 0, 0, fmt.Errorf("%w: unexpected end of data in head", ErrMalformed)
		}
		return uint64(data[off+1])<<8 | uint64(data[off+2]), off + 3, nil
	case ai == 26:
		if off+5 > len(data) {
			return 0, 0, fmt.Errorf("%w: unexpected end of data in head", ErrMalformed)
		}
		n := uint64(data[off+1])<<24 | uint64(data[off+2])<<16 |
			uint64(data[off+3])<<8 | uint64(data[off+4])
		return n, off + 5, nil
	case ai == 27:
		if off+9 > len(data) {
			return 0, 0, fmt.Errorf("%w: unexpected end of data in head", ErrMalformed)
		}
		var n uint64
		for _, b := range data[off+1 : off+9] {
			n = n<<8 | uint64(b)
		}
		return n, off + 9, nil
	default:
		return 0, 0, fmt.Errorf("%w: reserved additional info %d", ErrMalformed, ai)
	}
}

// readPayload bounds-checks a string payload of length n before slicing,
// so an adversarial length prefix cannot cause an over-read or a huge
// allocation.
func readPayload(data []byte, off int, n uint64) ([]byte, int, error) {
	if n > uint64(len(data)-off) {
		return nil, 0, fmt.Errorf(
			"%w: string length %d exceeds remaining %d bytes",
			ErrMalformed, n, len(data)-off,
		)
	}
	end := off + int(n)
	return data[off:end], end, nil
}
