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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dominikschlosser/mdoc-core/cbor"
	"github.com/dominikschlosser/mdoc-core/internal/format"
	"github.com/dominikschlosser/mdoc-core/internal/output"
)

var (
	diagCompact    bool
	diagNoEmbedded bool
)

var diagCmd = &cobra.Command{
	Use:   "diag [input]",
	Short: "Render CBOR in diagnostic notation",
	Long:  "Renders CBOR bytes in diagnostic notation (RFC 8949 §8). Input can be a file path, a hex or base64url string, or piped via stdin. Tag 24 content is decoded and shown inline unless --no-embedded is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().BoolVar(&diagCompact, "compact", false, "Single-line output instead of pretty-printed")
	diagCmd.Flags().BoolVar(&diagNoEmbedded, "no-embedded", false, "Show tag 24 content as a plain byte string")
	rootCmd.AddCommand(diagCmd)
}

func runDiag(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	raw, err := format.ReadInput(input)
	if err != nil {
		return err
	}

	diag, err := cbor.Diagnose(raw, cbor.DiagnosticOptions{
		EmbeddedCBOR: !diagNoEmbedded,
		PrettyPrint:  !diagCompact,
	})
	if err != nil {
		return fmt.Errorf("decoding CBOR: %w", err)
	}

	output.PrintDiagnostics(diag, output.Options{
		JSON:    jsonOutput,
		NoColor: noColor,
		Verbose: verbose,
	})
	return nil
}
