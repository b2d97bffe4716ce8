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

package wallet

import (
	"context"
	"testing"

	"github.com/sovereignkit/agentcore/model"
	"github.com/stretchr/testify/require"
)

func TestEncryptedStore_PutGetRoundTrip(t *testing.T) {
	inner := NewInMemoryStore()
	store := NewEncryptedStore(inner, model.NewEncryptionKey())

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "did:example:1", []byte("secret seed material")))

	got, err := store.Get(ctx, "did:example:1")
	require.NoError(t, err)
	require.Equal(t, []byte("secret seed material"), got)
}

func TestEncryptedStore_BackendHoldsCiphertext(t *testing.T) {
	inner := NewInMemoryStore()
	store := NewEncryptedStore(inner, model.NewEncryptionKey())

	ctx := context.Background()
	plaintext := []byte("secret seed material")
	require.NoError(t, store.Put(ctx, "did:example:1", plaintext))

	raw, err := inner.Get(ctx, "did:example:1")
	require.NoError(t, err)
	require.NotEqual(t, plaintext, raw)
}

func TestEncryptedStore_WrongKeyFailsToDecrypt(t *testing.T) {
	inner := NewInMemoryStore()
	store := NewEncryptedStore(inner, model.NewEncryptionKey())

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "did:example:1", []byte("secret seed material")))

	wrongKeyStore := NewEncryptedStore(inner, model.NewEncryptionKey())
	_, err := wrongKeyStore.Get(ctx, "did:example:1")
	require.Error(t, err)
}
