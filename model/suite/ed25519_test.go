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

package suite_test

import (
	"testing"

	. "github.com/sovereignkit/agentcore/model/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519_SignVerify_RoundTrip(t *testing.T) {
	s := NewEd25519()

	kp, err := s.KeyPairFromSeed(nil)
	require.NoError(t, err)

	msg := []byte("hello")
	sig, err := s.Sign(kp.SignKey, msg)
	require.NoError(t, err)

	ok, err := s.Verify(kp.VerKey, msg, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEd25519_Verify_WrongKey_ReturnsFalseNotError(t *testing.T) {
	s := NewEd25519()

	kp1, err := s.KeyPairFromSeed(nil)
	require.NoError(t, err)
	kp2, err := s.KeyPairFromSeed(nil)
	require.NoError(t, err)

	msg := []byte("hello")
	sig, err := s.Sign(kp1.SignKey, msg)
	require.NoError(t, err)

	ok, err := s.Verify(kp2.VerKey, msg, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEd25519_Verify_MalformedSignature_ReturnsFalseNotError(t *testing.T) {
	s := NewEd25519()

	kp, err := s.KeyPairFromSeed(nil)
	require.NoError(t, err)

	ok, err := s.Verify(kp.VerKey, []byte("hello"), []byte("too-short"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEd25519_KeyPairFromSeed_Deterministic(t *testing.T) {
	s := NewEd25519()

	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	kp1, err := s.KeyPairFromSeed(seed)
	require.NoError(t, err)
	kp2, err := s.KeyPairFromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, kp1.VerKey, kp2.VerKey)
	assert.Equal(t, kp1.SignKey, kp2.SignKey)
}

func TestEd25519_KeyPairFromSeed_WrongLength(t *testing.T) {
	s := NewEd25519()

	_, err := s.KeyPairFromSeed([]byte("too-short"))
	require.Error(t, err)
}

func TestEd25519_BoxEncryptDecrypt_RoundTrip(t *testing.T) {
	s := NewEd25519()

	alice, err := s.KeyPairFromSeed(nil)
	require.NoError(t, err)
	bob, err := s.KeyPairFromSeed(nil)
	require.NoError(t, err)

	aliceSK, err := s.EncryptionSecretKey(alice.SignKey)
	require.NoError(t, err)
	bobPK, err := s.EncryptionPublicKey(bob.VerKey)
	require.NoError(t, err)

	nonce, err := s.GenNonce()
	require.NoError(t, err)

	ciphertext, err := s.BoxEncrypt([]byte("some message"), nonce, bobPK, aliceSK)
	require.NoError(t, err)

	bobSK, err := s.EncryptionSecretKey(bob.SignKey)
	require.NoError(t, err)
	alicePK, err := s.EncryptionPublicKey(alice.VerKey)
	require.NoError(t, err)

	plaintext, err := s.BoxDecrypt(ciphertext, nonce, alicePK, bobSK)
	require.NoError(t, err)
	assert.Equal(t, "some message", string(plaintext))
}

func TestRegistry_UnknownSuite(t *testing.T) {
	r := NewRegistry(NewEd25519())

	_, err := r.Get("bbs12381")
	require.Error(t, err)

	got, err := r.Get(ID25519)
	require.NoError(t, err)
	assert.Equal(t, ID25519, got.ID())
}
