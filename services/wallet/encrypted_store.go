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

	"github.com/sovereignkit/agentcore/model"
)

// EncryptedStore wraps another Store and encrypts every value with AES-GCM
// before it reaches the underlying backend, so a FileStore's files never
// hold a DID's private key material in the clear.
type EncryptedStore struct {
	inner Store
	key   *model.AESKey
}

// NewEncryptedStore wraps inner, encrypting with key. The caller owns key's
// lifetime and should zero it once the store is no longer needed.
func NewEncryptedStore(inner Store, key *model.AESKey) *EncryptedStore {
	return &EncryptedStore{inner: inner, key: key}
}

func (s *EncryptedStore) Get(ctx context.Context, key string) ([]byte, error) {
	ciphertext, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return model.DecryptAESCGM(ciphertext, s.key)
}

func (s *EncryptedStore) Put(ctx context.Context, key string, value []byte) error {
	ciphertext, err := model.EncryptAESCGM(value, s.key)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, key, ciphertext)
}

func (s *EncryptedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
