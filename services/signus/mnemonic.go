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

package signus

import (
	"crypto/rand"

	"github.com/sovereignkit/agentcore/apperrors"
	"github.com/sovereignkit/agentcore/model"
	"github.com/tyler-smith/go-bip39"
)

// NewRecoveryPhrase generates a fresh BIP-39 mnemonic suitable for
// CreateMyDidFromMnemonic, using 256 bits of entropy (a 24-word phrase).
func NewRecoveryPhrase() (string, error) {
	entropy := make([]byte, 32)
	if _, err := rand.Read(entropy); err != nil {
		return "", apperrors.IOError("failed to generate entropy for recovery phrase", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", apperrors.InvalidStructure("failed to derive mnemonic", err)
	}
	return phrase, nil
}

// CreateMyDidFromMnemonic derives a MyDid the same way CreateMyDid does,
// but from a BIP-39 recovery phrase instead of a raw seed: the phrase and
// an optional passphrase are stretched into a 64-byte BIP-39 seed, whose
// first 32 bytes become the Ed25519 seed. info.Seed is ignored; info.DID
// and info.CID are honored exactly as in CreateMyDid.
func (s *Service) CreateMyDidFromMnemonic(recoveryPhrase, passphrase string, info model.MyDidInfo) (*model.MyDid, error) {
	if !bip39.IsMnemonicValid(recoveryPhrase) {
		return nil, apperrors.InvalidStructure("recovery phrase is not a valid BIP-39 mnemonic", nil)
	}

	seed := bip39.NewSeed(recoveryPhrase, passphrase)

	info.Seed = string(seed[:32])
	return s.CreateMyDid(info)
}
