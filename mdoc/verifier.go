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
	"crypto"
	"fmt"

	"github.com/veraison/go-cose"

	"github.com/dominikschlosser/mdoc-core/cbor"
)

// tagCOSESign1 marks a COSE_Sign1 message (RFC 9052).
const tagCOSESign1 = 18

// IssuerAuthAlgorithm returns the COSE signing algorithm name declared
// in the issuerAuth protected header, e.g. "ES256".
func IssuerAuthAlgorithm(issuerAuth []byte) (string, error) {
	msg, err := decodeSign1(issuerAuth)
	if err != nil {
		return "", err
	}
	alg, err := msg.Headers.Protected.Algorithm()
	if err != nil {
		return "", fmt.Errorf("reading algorithm from protected header: %w", err)
	}
	return alg.String(), nil
}

// VerifyIssuerAuth checks the COSE_Sign1 signature of an issuerAuth
// structure, as produced by Parse, against the issuer's public key. The
// algorithm is taken from the protected header.
func VerifyIssuerAuth(issuerAuth []byte, pub crypto.PublicKey) error {
	msg, err := decodeSign1(issuerAuth)
	if err != nil {
		return err
	}
	alg, err := msg.Headers.Protected.Algorithm()
	if err != nil {
		return fmt.Errorf("reading algorithm from protected header: %w", err)
	}
	verifier, err := cose.NewVerifier(alg, pub)
	if err != nil {
		return fmt.Errorf("creating verifier: %w", err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return fmt.Errorf("issuerAuth signature verification failed: %w", err)
	}
	return nil
}

// VerifyResult carries the outcome of an issuerAuth check.
type VerifyResult struct {
	SignatureValid bool     `json:"signatureValid"`
	Algorithm      string   `json:"algorithm,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// Verify checks the issuerAuth signature against the issuer's public
// key and collects the outcome into a VerifyResult.
func Verify(issuerAuth []byte, pub crypto.PublicKey) *VerifyResult {
	r := &VerifyResult{}

	alg, err := IssuerAuthAlgorithm(issuerAuth)
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
		return r
	}
	r.Algorithm = alg

	if err := VerifyIssuerAuth(issuerAuth, pub); err != nil {
		r.Errors = append(r.Errors, err.Error())
		return r
	}
	r.SignatureValid = true
	return r
}

// decodeSign1 parses issuerAuth bytes into a go-cose message. The bytes
// carried in StaticAuthData are the untagged COSE_Sign1 array; go-cose
// wants the tagged form, so the tag is restored when absent.
func decodeSign1(issuerAuth []byte) (*cose.Sign1Message, error) {
	item, err := cbor.Decode(issuerAuth)
	if err != nil {
		return nil, err
	}
	if _, ok := item.(cbor.Tagged); !ok {
		item = cbor.Tagged{Number: tagCOSESign1, Item: item}
	}

	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(cbor.Encode(item)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructure, err)
	}
	return &msg, nil
}
