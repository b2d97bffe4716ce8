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

package wallet_test

import (
	"testing"

	"github.com/sovereignkit/agentcore/services/wallet"
	"github.com/stretchr/testify/require"
)

func TestHashPassphrase_CheckPassphraseRoundTrip(t *testing.T) {
	hash, err := wallet.HashPassphrase("correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, wallet.CheckPassphrase("correct horse battery staple", hash))
}

func TestCheckPassphrase_WrongPassphraseFails(t *testing.T) {
	hash, err := wallet.HashPassphrase("correct horse battery staple")
	require.NoError(t, err)

	require.Error(t, wallet.CheckPassphrase("wrong passphrase", hash))
}
