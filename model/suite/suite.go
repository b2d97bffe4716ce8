// Copyright 2022 Piprate Limited
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

// Package suite defines the crypto-suite contract the Signus service is
// built against: a named registry of providers over one capability set
// (keypair-from-seed, sign, verify, verkey→encryption-key conversion,
// box-encrypt/decrypt, nonce generation), so new suites are a registration
// call rather than a new inheritance branch.
package suite

import "github.com/sovereignkit/agentcore/apperrors"

// KeyPair is a freshly generated signing keypair: a 32-byte verification key
// and its matching signing key (64 bytes for the default Ed25519 suite,
// 32-byte seed concatenated with the public key per crypto/ed25519).
type KeyPair struct {
	VerKey  []byte
	SignKey []byte
}

// Suite is the polymorphic provider contract for a crypto suite: a suite
// owns the full chain from seed to signature to authenticated encryption,
// so callers never touch raw scalars directly.
type Suite interface {
	// ID returns the suite's registry identifier, e.g. "ed25519".
	ID() string

	// KeyPairFromSeed derives a keypair from seed. A nil or empty seed
	// means "generate randomly". A non-empty seed of the wrong length is
	// an InvalidStructure error.
	KeyPairFromSeed(seed []byte) (KeyPair, error)

	// Sign returns the signature of msg under signKey.
	Sign(signKey, msg []byte) ([]byte, error)

	// Verify reports whether sig is a valid signature of msg under verKey.
	// A malformed signature or key yields (false, nil), never an error.
	Verify(verKey, msg, sig []byte) (bool, error)

	// EncryptionPublicKey converts a verification key to its corresponding
	// encryption public key via the suite's birational map.
	EncryptionPublicKey(verKey []byte) ([]byte, error)

	// EncryptionSecretKey converts a signing key to its corresponding
	// encryption secret key.
	EncryptionSecretKey(signKey []byte) ([]byte, error)

	// GenNonce returns a fresh random nonce sized for BoxEncrypt/BoxDecrypt.
	GenNonce() ([]byte, error)

	// BoxEncrypt performs authenticated public-key encryption of plaintext
	// from mySK to theirPK under nonce.
	BoxEncrypt(plaintext, nonce, theirPK, mySK []byte) ([]byte, error)

	// BoxDecrypt is the inverse of BoxEncrypt. Authentication failure or
	// malformed ciphertext is a CryptoError.
	BoxDecrypt(ciphertext, nonce, theirPK, mySK []byte) ([]byte, error)
}

// Registry is a named lookup of Suite providers, initialized once at
// construction and treated as read-only thereafter.
type Registry struct {
	suites map[string]Suite
}

// NewRegistry returns a registry pre-populated with suites.
func NewRegistry(suites ...Suite) *Registry {
	r := &Registry{suites: make(map[string]Suite, len(suites))}
	for _, s := range suites {
		r.suites[s.ID()] = s
	}
	return r
}

// Register adds or replaces a suite under its own ID.
func (r *Registry) Register(s Suite) {
	r.suites[s.ID()] = s
}

// Get looks up a suite by ID, failing with SignusUnknownCrypto if absent.
func (r *Registry) Get(id string) (Suite, error) {
	s, ok := r.suites[id]
	if !ok {
		return nil, apperrors.UnknownCrypto(id)
	}
	return s, nil
}
