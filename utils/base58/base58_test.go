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

package base58_test

import (
	"crypto/rand"
	"testing"

	. "github.com/sovereignkit/agentcore/utils/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 8, 16, 32, 64} {
		b := make([]byte, n)
		_, err := rand.Read(b)
		require.NoError(t, err)

		encoded := Encode(b)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, b, decoded)
	}
}

func TestDecode_InvalidCharacters(t *testing.T) {
	_, err := Decode("not-valid-base58-!!!")
	require.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode("")
	require.Error(t, err)
}
