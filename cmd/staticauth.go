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

	"github.com/dominikschlosser/mdoc-core/internal/format"
	"github.com/dominikschlosser/mdoc-core/internal/output"
	"github.com/dominikschlosser/mdoc-core/mdoc"
)

var staticauthCmd = &cobra.Command{
	Use:   "staticauth [input]",
	Short: "Decode an mdoc StaticAuthData structure",
	Long:  "Decodes StaticAuthData (digestIdMapping plus issuerAuth) and prints the issuer-signed items per namespace. Input can be a file path, a hex or base64url string, or piped via stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStaticauth,
}

func init() {
	rootCmd.AddCommand(staticauthCmd)
}

func runStaticauth(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	raw, err := format.ReadInput(input)
	if err != nil {
		return err
	}

	sad, err := mdoc.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing StaticAuthData: %w", err)
	}

	output.PrintStaticAuth(sad, output.Options{
		JSON:    jsonOutput,
		NoColor: noColor,
		Verbose: verbose,
	})
	return nil
}
