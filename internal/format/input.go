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

package format

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ReadInput reads credential input from: a file path, "-" for stdin, or
// a raw hex/base64 string. Textual input is decoded; binary input is
// returned as-is.
func ReadInput(input string) ([]byte, error) {
	input = strings.TrimSpace(input)

	if input == "-" || input == "" {
		stat, err := os.Stdin.Stat()
		if err != nil {
			return nil, fmt.Errorf("cannot read stdin: %w", err)
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no input provided (use a file path, raw string, or pipe to stdin)")
		}
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return DecodeRaw(b)
	}

	if _, err := os.Stat(input); err == nil {
		b, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", input, err)
		}
		return DecodeRaw(b)
	}

	// Treat as raw credential string
	return DecodeHexOrBase64URL(input)
}

// DecodeRaw turns file or stdin contents into credential bytes. Valid
// UTF-8 content is treated as a hex/base64 string; anything else is
// assumed to already be binary CBOR.
func DecodeRaw(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		s := strings.TrimSpace(string(data))
		if b, err := DecodeHexOrBase64URL(s); err == nil {
			return b, nil
		}
	}
	return data, nil
}
