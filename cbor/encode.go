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
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes an item to its CBOR representation. Integer heads use
// the minimal-length encoding for their magnitude; arrays, maps and tags
// emit their members in order; indefinite-length encoding is never
// produced. Encode panics on a nil item.
func Encode(item DataItem) []byte {
	return AppendEncoded(nil, item)
}

// AppendEncoded appends the CBOR encoding of item to buf and returns the
// extended slice.
func AppendEncoded(buf []byte, item DataItem) []byte {
	switch v := item.(type) {
	case Uint:
		return appendHead(buf, 0, uint64(v))
	case Nint:
		return appendHead(buf, 1, uint64(v))
	case Bstr:
		buf = appendHead(buf, 2, uint64(len(v)))
		return append(buf, v...)
	case Tstr:
		buf = appendHead(buf, 3, uint64(len(v)))
		return append(buf, v...)
	case Array:
		buf = appendHead(buf, 4, uint64(len(v)))
		for _, member := range v {
			buf = AppendEncoded(buf, member)
		}
		return buf
	case Map:
		buf = appendHead(buf, 5, uint64(len(v)))
		for _, e := range v {
			buf = AppendEncoded(buf, e.Key)
			buf = AppendEncoded(buf, e.Value)
		}
		return buf
	case Tagged:
		buf = appendHead(buf, 6, v.Number)
		return AppendEncoded(buf, v.Item)
	case Simple:
		if v < 24 {
			return append(buf, 0xe0|byte(v))
		}
		return append(buf, 0xf8, byte(v))
	case Float:
		buf = append(buf, 0xfb)
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(float64(v)))
	case Raw:
		return append(buf, v...)
	case nil:
		panic("cbor: cannot encode nil DataItem")
	default:
		panic(fmt.Sprintf("cbor: cannot encode item type %T", item))
	}
}

// appendHead writes the major type and argument using the shortest
// admissible additional-information encoding.
func appendHead(buf []byte, major byte, n uint64) []byte {
	mt := major << 5
	switch {
	case n < 24:
		return append(buf, mt|byte(n))
	case n <= math.MaxUint8:
		return append(buf, mt|24, byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, mt|25)
		return binary.BigEndian.AppendUint16(buf, uint16(n))
	case n <= math.MaxUint32:
		buf = append(buf, mt|26)
		return binary.BigEndian.AppendUint32(buf, uint32(n))
	default:
		buf = append(buf, mt|27)
		return binary.BigEndian.AppendUint64(buf, n)
	}
}
