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

// Package signus implements the Signus service: DID creation, message
// signing/verification, and authenticated encryption, all routed through a
// named registry of crypto suites so the service itself never touches a raw
// key scalar.
package signus

import (
	"unicode/utf8"

	"github.com/bytedance/sonic/decoder"
	"github.com/sovereignkit/agentcore/apperrors"
	"github.com/sovereignkit/agentcore/model"
	"github.com/sovereignkit/agentcore/model/canonical"
	"github.com/sovereignkit/agentcore/model/suite"
	"github.com/sovereignkit/agentcore/utils/base58"
	"github.com/sovereignkit/agentcore/utils/jsonw"
)

const defaultCryptoType = "ed25519"

// Service is the Signus service: a read-only suite registry plus the six
// operations of the public contract. It holds no mutable state of its own.
type Service struct {
	suites *suite.Registry
}

// New returns a Signus service backed by registry.
func New(registry *suite.Registry) *Service {
	return &Service{suites: registry}
}

func (s *Service) resolve(cryptoType string) (suite.Suite, string, error) {
	if cryptoType == "" {
		cryptoType = defaultCryptoType
	}
	sv, err := s.suites.Get(cryptoType)
	if err != nil {
		return nil, "", err
	}
	return sv, cryptoType, nil
}

// CreateMyDid generates a fresh owned DID from info, deriving the DID
// identifier per the rule in §3: an explicit info.DID wins, else a full
// verkey when info.CID is set, else the first 16 bytes of the verkey.
func (s *Service) CreateMyDid(info model.MyDidInfo) (*model.MyDid, error) {
	sv, cryptoType, err := s.resolve(info.CryptoType)
	if err != nil {
		return nil, err
	}

	var seed []byte
	if info.Seed != "" {
		seed = []byte(padSeed(info.Seed, 32))
	}

	kp, err := sv.KeyPairFromSeed(seed)
	if err != nil {
		return nil, err
	}

	pk, err := sv.EncryptionPublicKey(kp.VerKey)
	if err != nil {
		return nil, err
	}
	sk, err := sv.EncryptionSecretKey(kp.SignKey)
	if err != nil {
		return nil, err
	}

	did, err := deriveDID(info, kp.VerKey)
	if err != nil {
		return nil, err
	}

	return &model.MyDid{
		DID:        did,
		CryptoType: cryptoType,
		PK:         base58.Encode(pk),
		SK:         base58.Encode(sk),
		VerKey:     base58.Encode(kp.VerKey),
		SignKey:    base58.Encode(kp.SignKey),
	}, nil
}

func deriveDID(info model.MyDidInfo, verKey []byte) (string, error) {
	if info.DID != "" {
		if _, err := base58.Decode(info.DID); err != nil {
			return "", apperrors.InvalidStructure("did is not valid base58", err)
		}
		return info.DID, nil
	}
	if info.CID {
		return base58.Encode(verKey), nil
	}
	return base58.Encode(verKey[:16]), nil
}

func padSeed(seed string, n int) string {
	if len(seed) >= n {
		return seed
	}
	pad := make([]byte, n-len(seed))
	for i := range pad {
		pad[i] = '0'
	}
	return string(pad) + seed
}

// CreateTheirDid validates and stores a remote party's DID record. If
// info.VerKey is present, PK is computed as its suite-specific encryption
// key conversion; otherwise neither VerKey nor PK is stored.
func (s *Service) CreateTheirDid(info model.TheirDidInfo) (*model.TheirDid, error) {
	if _, err := base58.Decode(info.DID); err != nil {
		return nil, apperrors.InvalidStructure("did is not valid base58", err)
	}

	their := &model.TheirDid{
		DID:        info.DID,
		CryptoType: info.CryptoType,
		Endpoint:   info.Endpoint,
	}

	if info.VerKey == "" {
		return their, nil
	}

	sv, _, err := s.resolve(info.CryptoType)
	if err != nil {
		return nil, err
	}

	verKey, err := base58.Decode(info.VerKey)
	if err != nil {
		return nil, apperrors.InvalidStructure("verkey is not valid base58", err)
	}

	pk, err := sv.EncryptionPublicKey(verKey)
	if err != nil {
		return nil, err
	}

	their.VerKey = info.VerKey
	their.PK = base58.Encode(pk)

	return their, nil
}

// Sign canonicalizes doc, signs it with did.SignKey, and returns the JSON
// text of doc augmented with a top-level "signature" field.
func (s *Service) Sign(did *model.MyDid, doc []byte) ([]byte, error) {
	sv, _, err := s.resolve(did.CryptoType)
	if err != nil {
		return nil, err
	}

	obj, err := decodeObject(doc)
	if err != nil {
		return nil, err
	}

	payload := canonical.SerializeMap(obj)

	signKey, err := base58.Decode(did.SignKey)
	if err != nil {
		return nil, apperrors.InvalidStructure("signkey is not valid base58", err)
	}

	sig, err := sv.Sign(signKey, payload)
	if err != nil {
		return nil, err
	}

	obj["signature"] = base58.Encode(sig)

	return jsonw.Marshal(obj)
}

// Verify parses signedMsg, strips its "signature" field, canonicalizes the
// remainder, and returns the suite's boolean verdict against
// their.VerKey. A malformed signature yields (false, nil); a missing or
// malformed signature field or verkey is InvalidStructure.
func (s *Service) Verify(their *model.TheirDid, signedMsg []byte) (bool, error) {
	if their.VerKey == "" {
		return false, apperrors.InvalidStructure("their_did has no verkey", nil)
	}

	sv, _, err := s.resolve(their.CryptoType)
	if err != nil {
		return false, err
	}

	obj, err := decodeObject(signedMsg)
	if err != nil {
		return false, err
	}

	sigVal, ok := obj["signature"].(string)
	if !ok {
		return false, apperrors.InvalidStructure(`signed message has no string "signature" field`, nil)
	}
	delete(obj, "signature")

	payload := canonical.SerializeMap(obj)

	sig, err := base58.Decode(sigVal)
	if err != nil {
		return false, apperrors.InvalidStructure("signature is not valid base58", err)
	}

	verKey, err := base58.Decode(their.VerKey)
	if err != nil {
		return false, apperrors.InvalidStructure("verkey is not valid base58", err)
	}

	return sv.Verify(verKey, payload, sig)
}

// Encrypt authenticates-and-encrypts doc from my to their, returning
// (ciphertext, nonce), both Base58.
func (s *Service) Encrypt(my *model.MyDid, their *model.TheirDid, doc []byte) (ciphertext, nonce string, err error) {
	if their.PK == "" {
		return "", "", apperrors.InvalidStructure("their_did has no pk", nil)
	}

	sv, _, err := s.resolve(my.CryptoType)
	if err != nil {
		return "", "", err
	}

	mySK, err := base58.Decode(my.SK)
	if err != nil {
		return "", "", apperrors.InvalidStructure("sk is not valid base58", err)
	}
	theirPK, err := base58.Decode(their.PK)
	if err != nil {
		return "", "", apperrors.InvalidStructure("pk is not valid base58", err)
	}

	n, err := sv.GenNonce()
	if err != nil {
		return "", "", err
	}

	ct, err := sv.BoxEncrypt(doc, n, theirPK, mySK)
	if err != nil {
		return "", "", err
	}

	return base58.Encode(ct), base58.Encode(n), nil
}

// Decrypt is the inverse of Encrypt. Suite-level authentication failures
// surface as CryptoError; a successful plaintext that isn't valid UTF-8 is
// InvalidStructure.
func (s *Service) Decrypt(my *model.MyDid, their *model.TheirDid, ciphertext, nonce string) ([]byte, error) {
	sv, _, err := s.resolve(my.CryptoType)
	if err != nil {
		return nil, err
	}

	mySK, err := base58.Decode(my.SK)
	if err != nil {
		return nil, apperrors.InvalidStructure("sk is not valid base58", err)
	}
	theirPK, err := base58.Decode(their.PK)
	if err != nil {
		return nil, apperrors.InvalidStructure("pk is not valid base58", err)
	}
	ct, err := base58.Decode(ciphertext)
	if err != nil {
		return nil, apperrors.InvalidStructure("ciphertext is not valid base58", err)
	}
	n, err := base58.Decode(nonce)
	if err != nil {
		return nil, apperrors.InvalidStructure("nonce is not valid base58", err)
	}

	plaintext, err := sv.BoxDecrypt(ct, n, theirPK, mySK)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(plaintext) {
		return nil, apperrors.InvalidStructure("decrypted plaintext is not valid UTF-8", nil)
	}

	return plaintext, nil
}

// decodeObject keeps numbers as json.Number, so integers reach the canonical
// serializer and the re-marshalled signed message as their exact decimal text.
func decodeObject(doc []byte) (map[string]any, error) {
	d := decoder.NewDecoder(string(doc))
	d.UseNumber()

	var obj map[string]any
	if err := d.Decode(&obj); err != nil {
		return nil, apperrors.InvalidStructure("message is not a JSON object", err)
	}
	if obj == nil {
		return nil, apperrors.InvalidStructure("message is not a JSON object", nil)
	}
	return obj, nil
}
