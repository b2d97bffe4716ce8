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

package canonical_test

import (
	"encoding/json"
	"testing"

	. "github.com/sovereignkit/agentcore/model/canonical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_KeyOrderIndependence(t *testing.T) {
	a, err := Serialize([]byte(`{"b":1,"a":"x","c":[true,false,null]}`))
	require.NoError(t, err)

	b, err := Serialize([]byte(`{"c": [true, false, null], "a":  "x", "b":1}`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSerialize_DifferentContent(t *testing.T) {
	a, err := Serialize([]byte(`{"a":1}`))
	require.NoError(t, err)

	b, err := Serialize([]byte(`{"a":2}`))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSerialize_NotAnObject(t *testing.T) {
	_, err := Serialize([]byte(`[1,2,3]`))
	require.Error(t, err)
}

func TestSerialize_NestedObjects(t *testing.T) {
	a, err := Serialize([]byte(`{"outer":{"z":1,"y":2}}`))
	require.NoError(t, err)

	b, err := Serialize([]byte(`{"outer":{"y":2,"z":1}}`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSerializeMap_MatchesSerialize(t *testing.T) {
	m := map[string]any{"a": "x", "b": json.Number("1")}

	direct := SerializeMap(m)
	assert.NotEmpty(t, direct)

	viaDoc, err := Serialize([]byte(`{"b":1,"a":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, viaDoc, direct)
}
