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

package signus_test

import (
	"testing"

	"github.com/sovereignkit/agentcore/model"
	"github.com/sovereignkit/agentcore/model/suite"
	. "github.com/sovereignkit/agentcore/services/signus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return New(suite.NewRegistry(suite.NewEd25519()))
}

// S1
func TestCreateMyDid_ExplicitDID(t *testing.T) {
	s := newService()

	my, err := s.CreateMyDid(model.MyDidInfo{DID: "Dbf2fjCbsiq2kfns"})
	require.NoError(t, err)

	assert.Equal(t, "Dbf2fjCbsiq2kfns", my.DID)
	assert.NotEmpty(t, my.VerKey)
}

// S2
func TestCreateMyDid_SeedProducesDifferentKeys(t *testing.T) {
	s := newService()

	withSeed, err := s.CreateMyDid(model.MyDidInfo{Seed: "DJASbewkdUY3265HJFDSbds278sdDSnA"})
	require.NoError(t, err)

	withoutSeed, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)

	assert.NotEqual(t, withSeed.VerKey, withoutSeed.VerKey)
}

func TestCreateMyDid_SeedIsDeterministic(t *testing.T) {
	s := newService()

	a, err := s.CreateMyDid(model.MyDidInfo{Seed: "DJASbewkdUY3265HJFDSbds278sdDSnA"})
	require.NoError(t, err)
	b, err := s.CreateMyDid(model.MyDidInfo{Seed: "DJASbewkdUY3265HJFDSbds278sdDSnA"})
	require.NoError(t, err)

	assert.Equal(t, a.VerKey, b.VerKey)
	assert.Equal(t, a.DID, b.DID)
}

func TestCreateMyDid_CID(t *testing.T) {
	s := newService()

	my, err := s.CreateMyDid(model.MyDidInfo{CID: true})
	require.NoError(t, err)

	// a CID-derived DID is the Base58 of the full verkey, so the two strings
	// are equal.
	assert.Equal(t, my.VerKey, my.DID)
}

func TestCreateMyDid_UnknownCrypto(t *testing.T) {
	s := newService()

	_, err := s.CreateMyDid(model.MyDidInfo{CryptoType: "bbs12381"})
	require.Error(t, err)
}

// S3 / S4
func TestSignVerify_RoundTrip(t *testing.T) {
	s := newService()

	my, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)

	doc := []byte(`{"reqId":1495034346617224651,"identifier":"GJ1SzoWzavQYfNL9XkaJdrQejfztN4XqdsiV4ct3LXKL","operation":{"type":"1","dest":"4efZu2SXufS556yss7W5k6Po37jt4371RM4whbPKBKdB"}}`)

	signed, err := s.Sign(my, doc)
	require.NoError(t, err)

	their := &model.TheirDid{DID: my.DID, VerKey: my.VerKey}

	ok, err := s.Verify(their, signed)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_WrongVerKeyReturnsFalseNotError(t *testing.T) {
	s := newService()

	my, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)

	doc := []byte(`{"a":1}`)
	signed, err := s.Sign(my, doc)
	require.NoError(t, err)

	their := &model.TheirDid{DID: my.DID, VerKey: "AnnxV4t3LUHKZaxVQDWoVaG44NrGmeDYMA4Gz6C2tCZd"}

	ok, err := s.Verify(their, signed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSign_NonObjectFails(t *testing.T) {
	s := newService()
	my, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)

	_, err = s.Sign(my, []byte(`42`))
	require.Error(t, err)
}

func TestVerify_MissingSignatureFieldFails(t *testing.T) {
	s := newService()
	their := &model.TheirDid{DID: "x", VerKey: "AnnxV4t3LUHKZaxVQDWoVaG44NrGmeDYMA4Gz6C2tCZd"}

	_, err := s.Verify(their, []byte(`{"a":1}`))
	require.Error(t, err)
}

func TestVerify_NoVerKeyFails(t *testing.T) {
	s := newService()
	their := &model.TheirDid{DID: "x"}

	_, err := s.Verify(their, []byte(`{"a":1,"signature":"xyz"}`))
	require.Error(t, err)
}

// S5
func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	s := newService()

	a, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)
	b, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)

	bAsTheir := &model.TheirDid{DID: b.DID, VerKey: b.VerKey, PK: b.PK}
	aAsTheir := &model.TheirDid{DID: a.DID, VerKey: a.VerKey, PK: a.PK}

	ciphertext, nonce, err := s.Encrypt(a, bAsTheir, []byte("some message"))
	require.NoError(t, err)

	plaintext, err := s.Decrypt(b, aAsTheir, ciphertext, nonce)
	require.NoError(t, err)

	assert.Equal(t, "some message", string(plaintext))
}

func TestEncrypt_NoPKFails(t *testing.T) {
	s := newService()

	a, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)

	bAsTheir := &model.TheirDid{DID: "some-did"}

	_, _, err = s.Encrypt(a, bAsTheir, []byte("some message"))
	require.Error(t, err)
}

func TestCreateTheirDid_ComputesPK(t *testing.T) {
	s := newService()

	my, err := s.CreateMyDid(model.MyDidInfo{})
	require.NoError(t, err)

	their, err := s.CreateTheirDid(model.TheirDidInfo{DID: my.DID, VerKey: my.VerKey})
	require.NoError(t, err)

	assert.Equal(t, my.PK, their.PK)
}

func TestCreateTheirDid_NoVerKeyStoresNeither(t *testing.T) {
	s := newService()

	their, err := s.CreateTheirDid(model.TheirDidInfo{DID: "Dbf2fjCbsiq2kfns"})
	require.NoError(t, err)

	assert.Empty(t, their.VerKey)
	assert.Empty(t, their.PK)
}

func TestCreateTheirDid_InvalidDIDFails(t *testing.T) {
	s := newService()

	_, err := s.CreateTheirDid(model.TheirDidInfo{DID: "not base58 !!!"})
	require.Error(t, err)
}
