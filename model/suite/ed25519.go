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

package suite

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/jamesruan/sodium"
	"github.com/sovereignkit/agentcore/apperrors"
)

// boxNonceSize is the nonce length curve25519-xsalsa20-poly1305 expects.
const boxNonceSize = 24

// ID25519 is the default suite's registry identifier.
const ID25519 = "ed25519"

// Ed25519 is the default crypto suite: Ed25519 signatures, with the
// verification/signing keys converted to their X25519 counterparts for
// authenticated box encryption, the same birational map used by
// NaCl/libsodium sealed boxes.
type Ed25519 struct{}

// NewEd25519 returns the default Ed25519/X25519 suite.
func NewEd25519() Ed25519 {
	return Ed25519{}
}

func (Ed25519) ID() string { return ID25519 }

func (Ed25519) KeyPairFromSeed(seed []byte) (KeyPair, error) {
	if len(seed) == 0 {
		var err error
		seed, err = randomSeed()
		if err != nil {
			return KeyPair{}, apperrors.CryptoError("failed to generate random seed", err)
		}
	}
	if len(seed) != ed25519.SeedSize {
		return KeyPair{}, apperrors.InvalidStructure("seed must be 32 bytes", nil)
	}

	signKey := ed25519.NewKeyFromSeed(seed)
	verKey := signKey.Public().(ed25519.PublicKey)

	return KeyPair{
		VerKey:  []byte(verKey),
		SignKey: []byte(signKey),
	}, nil
}

func (Ed25519) Sign(signKey, msg []byte) ([]byte, error) {
	if len(signKey) != ed25519.PrivateKeySize {
		return nil, apperrors.InvalidStructure("signing key has wrong length", nil)
	}
	return ed25519.Sign(ed25519.PrivateKey(signKey), msg), nil
}

func (Ed25519) Verify(verKey, msg, sig []byte) (bool, error) {
	if len(verKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		// A malformed signature or key is a verification "no", not an
		// error: cryptographic rejection never surfaces as an error.
		return false, nil
	}
	return ed25519.Verify(ed25519.PublicKey(verKey), msg, sig), nil
}

func (Ed25519) EncryptionPublicKey(verKey []byte) ([]byte, error) {
	if len(verKey) != ed25519.PublicKeySize {
		return nil, apperrors.InvalidStructure("verification key has wrong length", nil)
	}
	boxPK := sodium.SignPublicKey{Bytes: verKey}.ToBox()
	return boxPK.Bytes, nil
}

func (Ed25519) EncryptionSecretKey(signKey []byte) ([]byte, error) {
	if len(signKey) != ed25519.PrivateKeySize {
		return nil, apperrors.InvalidStructure("signing key has wrong length", nil)
	}
	boxSK := sodium.SignSecretKey{Bytes: signKey}.ToBox()
	return boxSK.Bytes, nil
}

func (Ed25519) GenNonce() ([]byte, error) {
	n := make([]byte, boxNonceSize)
	if _, err := rand.Read(n); err != nil {
		return nil, apperrors.CryptoError("failed to generate nonce", err)
	}
	return n, nil
}

// BoxEncrypt performs mutual, nonce-addressable authenticated encryption.
// This generalizes the one-sided SealedBox pattern (anonymous sender, known
// recipient) to the case where both parties' keys are known: the caller
// supplies an explicit nonce rather than libsodium generating and
// prepending one internally.
func (Ed25519) BoxEncrypt(plaintext, nonce, theirPK, mySK []byte) ([]byte, error) {
	if len(nonce) != boxNonceSize {
		return nil, apperrors.InvalidStructure("nonce has wrong length", nil)
	}
	n := sodium.BoxNonce{Bytes: nonce}
	pk := sodium.BoxPublicKey{Bytes: theirPK}
	sk := sodium.BoxSecretKey{Bytes: mySK}

	ciphertext := sodium.Bytes(plaintext).Box(n, pk, sk)
	return ciphertext, nil
}

func (Ed25519) BoxDecrypt(ciphertext, nonce, theirPK, mySK []byte) ([]byte, error) {
	if len(nonce) != boxNonceSize {
		return nil, apperrors.InvalidStructure("nonce has wrong length", nil)
	}
	n := sodium.BoxNonce{Bytes: nonce}
	pk := sodium.BoxPublicKey{Bytes: theirPK}
	sk := sodium.BoxSecretKey{Bytes: mySK}

	plaintext, err := sodium.Bytes(ciphertext).BoxOpen(n, pk, sk)
	if err != nil {
		return nil, apperrors.CryptoError("box authentication failed", err)
	}
	return plaintext, nil
}

func randomSeed() ([]byte, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}
