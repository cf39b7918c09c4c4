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

// Package output renders parsed credential structures for the terminal,
// in colored human-readable form or as JSON.
package output

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dominikschlosser/mdoc-core/cbor"
	"github.com/dominikschlosser/mdoc-core/mdoc"
)

// Options controls rendering.
type Options struct {
	JSON    bool
	NoColor bool
	Verbose bool
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	valueColor   = color.New(color.FgWhite)
	dimColor     = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// BuildStaticAuthJSON returns the JSON-serializable map for parsed
// StaticAuthData.
func BuildStaticAuthJSON(sad *mdoc.StaticAuthData) map[string]any {
	nameSpaces := make([]map[string]any, 0, len(sad.DigestIDMapping))
	for _, ns := range sad.DigestIDMapping {
		items := make([]map[string]any, 0, len(ns.Items))
		for _, raw := range ns.Items {
			entry := map[string]any{}
			if item, err := mdoc.ParseIssuerSignedItem(raw); err == nil {
				entry["digestID"] = item.DigestID
				entry["elementIdentifier"] = item.ElementIdentifier
				entry["random"] = hex.EncodeToString(item.Random)
				entry["elementValue"] = cbor.Diagnostics(item.ElementValue, cbor.DiagnosticOptions{EmbeddedCBOR: true})
			} else {
				entry["raw"] = hex.EncodeToString(raw)
			}
			items = append(items, entry)
		}
		nameSpaces = append(nameSpaces, map[string]any{
			"nameSpace": ns.NameSpace,
			"items":     items,
		})
	}

	out := map[string]any{
		"digestIdMapping": nameSpaces,
	}
	if alg, err := mdoc.IssuerAuthAlgorithm(sad.IssuerAuth); err == nil {
		out["issuerAuthAlgorithm"] = alg
	}
	return out
}

// PrintStaticAuth prints parsed StaticAuthData to the terminal.
func PrintStaticAuth(sad *mdoc.StaticAuthData, opts Options) {
	if opts.JSON {
		PrintJSON(BuildStaticAuthJSON(sad))
		return
	}

	headerColor.Println("StaticAuthData")
	headerColor.Println(strings.Repeat("─", 50))

	for _, ns := range sad.DigestIDMapping {
		printSection(fmt.Sprintf("Namespace: %s (%d items)", ns.NameSpace, len(ns.Items)))
		for _, raw := range ns.Items {
			item, err := mdoc.ParseIssuerSignedItem(raw)
			if err != nil {
				errorColor.Printf("  ✗ unparseable item: %v\n", err)
				continue
			}
			labelColor.Printf("  %s: ", item.ElementIdentifier)
			valueColor.Println(cbor.Diagnostics(item.ElementValue, cbor.DiagnosticOptions{EmbeddedCBOR: true}))
			if opts.Verbose {
				dimColor.Printf("    digestID=%d random=%s\n", item.DigestID, hex.EncodeToString(item.Random))
			}
		}
	}

	printSection("Issuer Auth")
	if alg, err := mdoc.IssuerAuthAlgorithm(sad.IssuerAuth); err == nil {
		printKV("Algorithm", alg, 1)
	}
	printKV("Size", fmt.Sprintf("%d bytes", len(sad.IssuerAuth)), 1)

	fmt.Println()
}

// PrintVerifyResult prints issuerAuth verification results.
func PrintVerifyResult(r *mdoc.VerifyResult, opts Options) {
	if opts.JSON {
		PrintJSON(r)
		return
	}

	printSection("Signature Verification")
	if r.SignatureValid {
		successColor.Println("  ✓ Signature valid")
	} else {
		errorColor.Println("  ✗ Signature invalid")
	}
	if r.Algorithm != "" {
		printKV("Algorithm", r.Algorithm, 1)
	}
	for _, e := range r.Errors {
		errorColor.Printf("  ✗ %s\n", e)
	}
	fmt.Println()
}

// PrintDiagnostics prints CBOR diagnostic notation.
func PrintDiagnostics(diag string, opts Options) {
	if opts.JSON {
		PrintJSON(map[string]any{"diagnostics": diag})
		return
	}
	fmt.Println(diag)
}

func printSection(title string) {
	fmt.Println()
	headerColor.Printf("┌ %s\n", title)
}

func printKV(key, value string, indent int) {
	prefix := strings.Repeat("  ", indent)
	labelColor.Printf("%s%s: ", prefix, key)
	valueColor.Println(value)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint("Error:"), msg)
}
