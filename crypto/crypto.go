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

// Package crypto defines the cryptographic capability surface used by
// credential issuance and verification. Callers program against the
// Provider interface; SoftwareProvider is the pure-software
// implementation. Hardware-backed providers can supply the same
// interface.
package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"errors"
)

// DigestAlgorithm identifies a hash function.
type DigestAlgorithm string

const (
	SHA256 DigestAlgorithm = "SHA-256"
	SHA384 DigestAlgorithm = "SHA-384"
	SHA512 DigestAlgorithm = "SHA-512"
)

// MACAlgorithm identifies a message authentication code.
type MACAlgorithm string

const (
	HMACSHA256 MACAlgorithm = "HS256"
	HMACSHA384 MACAlgorithm = "HS384"
	HMACSHA512 MACAlgorithm = "HS512"
)

// CipherAlgorithm identifies an AEAD cipher.
type CipherAlgorithm string

const (
	A128GCM CipherAlgorithm = "A128GCM"
	A192GCM CipherAlgorithm = "A192GCM"
	A256GCM CipherAlgorithm = "A256GCM"
)

// SigningAlgorithm identifies an ECDSA signature scheme.
type SigningAlgorithm string

const (
	ES256 SigningAlgorithm = "ES256"
	ES384 SigningAlgorithm = "ES384"
	ES512 SigningAlgorithm = "ES512"
)

var (
	ErrUnsupportedAlgorithm = errors.New("crypto: unsupported algorithm")
	ErrDecryptionFailed     = errors.New("crypto: decryption failed")
	ErrSignatureInvalid     = errors.New("crypto: signature invalid")
)

// Provider is the set of cryptographic operations the credential stack
// relies on. All byte-slice results are freshly allocated.
type Provider interface {
	// Digest hashes data with the given algorithm.
	Digest(alg DigestAlgorithm, data []byte) ([]byte, error)

	// MAC computes an HMAC over data.
	MAC(alg MACAlgorithm, key, data []byte) ([]byte, error)

	// Encrypt seals plaintext with an AEAD cipher. The additional data
	// is authenticated but not encrypted.
	Encrypt(alg CipherAlgorithm, key, nonce, plaintext, additionalData []byte) ([]byte, error)

	// Decrypt opens a ciphertext produced by Encrypt. Returns
	// ErrDecryptionFailed when authentication fails.
	Decrypt(alg CipherAlgorithm, key, nonce, ciphertext, additionalData []byte) ([]byte, error)

	// HKDF derives size bytes of key material per RFC 5869.
	HKDF(alg DigestAlgorithm, ikm, salt, info []byte, size int) ([]byte, error)

	// Sign produces a raw r||s ECDSA signature over message. The
	// message is hashed with the digest implied by alg.
	Sign(key *ecdsa.PrivateKey, alg SigningAlgorithm, message []byte) ([]byte, error)

	// CheckSignature verifies a raw r||s ECDSA signature. Returns
	// ErrSignatureInvalid when the signature does not check out.
	CheckSignature(key *ecdsa.PublicKey, alg SigningAlgorithm, message, signature []byte) error

	// KeyAgreement performs ECDH and returns the shared secret.
	KeyAgreement(key *ecdh.PrivateKey, peer *ecdh.PublicKey) ([]byte, error)

	// HPKEEncrypt seals plaintext to the receiver's public key using
	// HPKE base mode (DHKEM P-256, HKDF-SHA256, AES-128-GCM). Returns
	// the encapsulated key and the ciphertext.
	HPKEEncrypt(receiver *ecdh.PublicKey, plaintext, info []byte) (encapsulated, ciphertext []byte, err error)

	// HPKEDecrypt opens an HPKE ciphertext with the receiver's private
	// key. Returns ErrDecryptionFailed when opening fails.
	HPKEDecrypt(receiver *ecdh.PrivateKey, encapsulated, ciphertext, info []byte) ([]byte, error)
}
