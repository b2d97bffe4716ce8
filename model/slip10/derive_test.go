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

package slip10_test

import (
	"testing"

	. "github.com/sovereignkit/agentcore/model/slip10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveForPath_Deterministic(t *testing.T) {
	seed, err := GenerateSeed(RecommendedSeedLen)
	require.NoError(t, err)

	n1, err := DeriveForPath("m/0'/1'", seed)
	require.NoError(t, err)
	n2, err := DeriveForPath("m/0'/1'", seed)
	require.NoError(t, err)

	assert.Equal(t, n1.Bytes(), n2.Bytes())
}

func TestDeriveForPath_DifferentPathsDiverge(t *testing.T) {
	seed, err := GenerateSeed(RecommendedSeedLen)
	require.NoError(t, err)

	n1, err := DeriveForPath("m/0'", seed)
	require.NoError(t, err)
	n2, err := DeriveForPath("m/1'", seed)
	require.NoError(t, err)

	assert.NotEqual(t, n1.Bytes(), n2.Bytes())
}

func TestDeriveForPath_InvalidPath(t *testing.T) {
	seed, err := GenerateSeed(RecommendedSeedLen)
	require.NoError(t, err)

	_, err = DeriveForPath("m/0", seed)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestIsValidPath(t *testing.T) {
	assert.True(t, IsValidPath("m/0'/1'/2'"))
	assert.False(t, IsValidPath("m/0/1"))
	assert.False(t, IsValidPath("not-a-path"))
}

func TestNode_KeyPair(t *testing.T) {
	seed, err := GenerateSeed(RecommendedSeedLen)
	require.NoError(t, err)

	n, err := NewMasterNode(seed)
	require.NoError(t, err)

	pub, priv := n.KeyPair()
	assert.Len(t, pub, 32)
	assert.NotEmpty(t, priv)
}
