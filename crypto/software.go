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

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"math/big"

	"github.com/cloudflare/circl/hpke"
	"golang.org/x/crypto/hkdf"
)

// SoftwareProvider implements Provider entirely in software.
type SoftwareProvider struct{}

var _ Provider = SoftwareProvider{}

func digestHash(alg DigestAlgorithm) (func() hash.Hash, error) {
	switch alg {
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

func (SoftwareProvider) Digest(alg DigestAlgorithm, data []byte) ([]byte, error) {
	newHash, err := digestHash(alg)
	if err != nil {
		return nil, err
	}
	h := newHash()
	h.Write(data)
	return h.Sum(nil), nil
}

func (SoftwareProvider) MAC(alg MACAlgorithm, key, data []byte) ([]byte, error) {
	var newHash func() hash.Hash
	switch alg {
	case HMACSHA256:
		newHash = sha256.New
	case HMACSHA384:
		newHash = sha512.New384
	case HMACSHA512:
		newHash = sha512.New
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	mac := hmac.New(newHash, key)
	mac.Write(data)
	return mac.Sum(nil), nil
}

func gcmCipher(alg CipherAlgorithm, key []byte) (cipher.AEAD, error) {
	var keySize int
	switch alg {
	case A128GCM:
		keySize = 16
	case A192GCM:
		keySize = 24
	case A256GCM:
		keySize = 32
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("%s: key is %d bytes, want %d", alg, len(key), keySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (SoftwareProvider) Encrypt(alg CipherAlgorithm, key, nonce, plaintext, additionalData []byte) ([]byte, error) {
	aead, err := gcmCipher(alg, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%s: nonce is %d bytes, want %d", alg, len(nonce), aead.NonceSize())
	}
	return aead.Seal(nil, nonce, plaintext, additionalData), nil
}

func (SoftwareProvider) Decrypt(alg CipherAlgorithm, key, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	aead, err := gcmCipher(alg, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%s: nonce is %d bytes, want %d", alg, len(nonce), aead.NonceSize())
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func (SoftwareProvider) HKDF(alg DigestAlgorithm, ikm, salt, info []byte, size int) ([]byte, error) {
	newHash, err := digestHash(alg)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(newHash, ikm, salt, info), out); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return out, nil
}

func signingDigest(alg SigningAlgorithm) (func() hash.Hash, error) {
	switch alg {
	case ES256:
		return sha256.New, nil
	case ES384:
		return sha512.New384, nil
	case ES512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

func (SoftwareProvider) Sign(key *ecdsa.PrivateKey, alg SigningAlgorithm, message []byte) ([]byte, error) {
	newHash, err := signingDigest(alg)
	if err != nil {
		return nil, err
	}
	h := newHash()
	h.Write(message)

	r, s, err := ecdsa.Sign(rand.Reader, key, h.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}

	// Fixed-width r || s, the COSE signature wire form.
	n := (key.Curve.Params().BitSize + 7) / 8
	sig := make([]byte, 2*n)
	r.FillBytes(sig[:n])
	s.FillBytes(sig[n:])
	return sig, nil
}

func (SoftwareProvider) CheckSignature(key *ecdsa.PublicKey, alg SigningAlgorithm, message, signature []byte) error {
	newHash, err := signingDigest(alg)
	if err != nil {
		return err
	}
	n := (key.Curve.Params().BitSize + 7) / 8
	if len(signature) != 2*n {
		return fmt.Errorf("%w: signature is %d bytes, want %d", ErrSignatureInvalid, len(signature), 2*n)
	}

	h := newHash()
	h.Write(message)

	r := new(big.Int).SetBytes(signature[:n])
	s := new(big.Int).SetBytes(signature[n:])
	if !ecdsa.Verify(key, h.Sum(nil), r, s) {
		return ErrSignatureInvalid
	}
	return nil
}

func (SoftwareProvider) KeyAgreement(key *ecdh.PrivateKey, peer *ecdh.PublicKey) ([]byte, error) {
	secret, err := key.ECDH(peer)
	if err != nil {
		return nil, fmt.Errorf("ecdh: %w", err)
	}
	return secret, nil
}

func hpkeSuite() hpke.Suite {
	return hpke.NewSuite(hpke.KEM_P256_HKDF_SHA256, hpke.KDF_HKDF_SHA256, hpke.AEAD_AES128GCM)
}

func (SoftwareProvider) HPKEEncrypt(receiver *ecdh.PublicKey, plaintext, info []byte) ([]byte, []byte, error) {
	kemPub, err := hpke.KEM_P256_HKDF_SHA256.Scheme().UnmarshalBinaryPublicKey(receiver.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("hpke: receiver key: %w", err)
	}

	sender, err := hpkeSuite().NewSender(kemPub, info)
	if err != nil {
		return nil, nil, fmt.Errorf("hpke: %w", err)
	}
	encapsulated, sealer, err := sender.Setup(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("hpke: %w", err)
	}
	ciphertext, err := sealer.Seal(plaintext, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("hpke: %w", err)
	}
	return encapsulated, ciphertext, nil
}

func (SoftwareProvider) HPKEDecrypt(receiver *ecdh.PrivateKey, encapsulated, ciphertext, info []byte) ([]byte, error) {
	kemPriv, err := hpke.KEM_P256_HKDF_SHA256.Scheme().UnmarshalBinaryPrivateKey(receiver.Bytes())
	if err != nil {
		return nil, fmt.Errorf("hpke: receiver key: %w", err)
	}

	recv, err := hpkeSuite().NewReceiver(kemPriv, info)
	if err != nil {
		return nil, fmt.Errorf("hpke: %w", err)
	}
	opener, err := recv.Setup(encapsulated)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := opener.Open(ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
