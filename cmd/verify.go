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
	"github.com/dominikschlosser/mdoc-core/internal/keys"
	"github.com/dominikschlosser/mdoc-core/internal/output"
	"github.com/dominikschlosser/mdoc-core/mdoc"
)

var verifyKeyPath string

var verifyCmd = &cobra.Command{
	Use:   "verify [input]",
	Short: "Verify the issuerAuth signature of a StaticAuthData structure",
	Long:  "Parses StaticAuthData and checks the COSE_Sign1 issuerAuth signature against the issuer public key given with --key (PEM or JWK file).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyKeyPath, "key", "", "Issuer public key (PEM or JWK file)")
	verifyCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	pub, err := keys.LoadPublicKey(verifyKeyPath)
	if err != nil {
		return err
	}

	result := mdoc.Verify(sad.IssuerAuth, pub)
	output.PrintVerifyResult(result, output.Options{
		JSON:    jsonOutput,
		NoColor: noColor,
		Verbose: verbose,
	})

	if !result.SignatureValid {
		return fmt.Errorf("signature verification failed")
	}
	return nil
}
