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
	. "github.com/sovereignkit/agentcore/services/signus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

func TestNewRecoveryPhrase_IsValidMnemonic(t *testing.T) {
	phrase, err := NewRecoveryPhrase()
	require.NoError(t, err)
	assert.NotEmpty(t, phrase)
	assert.True(t, bip39.IsMnemonicValid(phrase))
}

func TestCreateMyDidFromMnemonic_Deterministic(t *testing.T) {
	svc := newService()
	phrase, err := NewRecoveryPhrase()
	require.NoError(t, err)

	did1, err := svc.CreateMyDidFromMnemonic(phrase, "passphrase", model.MyDidInfo{})
	require.NoError(t, err)

	did2, err := svc.CreateMyDidFromMnemonic(phrase, "passphrase", model.MyDidInfo{})
	require.NoError(t, err)

	assert.Equal(t, did1.VerKey, did2.VerKey)
	assert.Equal(t, did1.DID, did2.DID)
}

func TestCreateMyDidFromMnemonic_DifferentPassphraseDiverges(t *testing.T) {
	svc := newService()
	phrase, err := NewRecoveryPhrase()
	require.NoError(t, err)

	did1, err := svc.CreateMyDidFromMnemonic(phrase, "passphrase-one", model.MyDidInfo{})
	require.NoError(t, err)

	did2, err := svc.CreateMyDidFromMnemonic(phrase, "passphrase-two", model.MyDidInfo{})
	require.NoError(t, err)

	assert.NotEqual(t, did1.VerKey, did2.VerKey)
}

func TestCreateMyDidFromMnemonic_InvalidPhraseFails(t *testing.T) {
	svc := newService()
	_, err := svc.CreateMyDidFromMnemonic("not a real mnemonic phrase at all", "", model.MyDidInfo{})
	require.Error(t, err)
}
