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

package verifier_test

import (
	"testing"

	"github.com/sovereignkit/agentcore/model"
	. "github.com/sovereignkit/agentcore/services/verifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrimitive struct {
	called bool
	result bool
	err    error
}

func (s *stubPrimitive) VerifyProof(_ *model.ProofRequest, _ *model.Proof, _, _, _ map[string]any) (bool, error) {
	s.called = true
	return s.result, s.err
}

const proofRequestJSON = `{
	"nonce": "123",
	"requested_attrs": {"attr1_referent": {"name": "name"}},
	"requested_predicates": {"predicate1_referent": {"attr_name": "age", "p_type": ">=", "value": 18}}
}`

func matchingProofJSON() string {
	return `{
		"requested_proof": {
			"revealed_attrs": {"attr1_referent": "Alice"},
			"unrevealed_attrs": {}
		},
		"proofs": {
			"credential1": {
				"proof": {
					"primary_proof": {
						"ge_proofs": [{"predicate": {"attr_name": "age", "p_type": ">=", "value": 18}}]
					}
				}
			}
		}
	}`
}

// S6 (matching case)
func TestVerifyProof_MatchingBundle_Delegates(t *testing.T) {
	primitive := &stubPrimitive{result: true}
	e := New(primitive)

	ok, err := e.VerifyProof([]byte(proofRequestJSON), []byte(matchingProofJSON()), []byte(`{}`), []byte(`{}`), []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, primitive.called)
}

// S6 (mismatched predicate value)
func TestVerifyProof_MismatchedPredicate_FailsBeforeCryptography(t *testing.T) {
	primitive := &stubPrimitive{result: true}
	e := New(primitive)

	proofJSON := `{
		"requested_proof": {
			"revealed_attrs": {"attr1_referent": "Alice"},
			"unrevealed_attrs": {}
		},
		"proofs": {
			"credential1": {
				"proof": {
					"primary_proof": {
						"ge_proofs": [{"predicate": {"attr_name": "age", "p_type": ">=", "value": 21}}]
					}
				}
			}
		}
	}`

	_, err := e.VerifyProof([]byte(proofRequestJSON), []byte(proofJSON), []byte(`{}`), []byte(`{}`), []byte(`{}`))
	require.Error(t, err)
	assert.False(t, primitive.called)
}

func TestVerifyProof_MismatchedAttrs_Fails(t *testing.T) {
	primitive := &stubPrimitive{result: true}
	e := New(primitive)

	proofJSON := `{
		"requested_proof": {
			"revealed_attrs": {"some_other_referent": "Alice"},
			"unrevealed_attrs": {}
		},
		"proofs": {}
	}`

	_, err := e.VerifyProof([]byte(proofRequestJSON), []byte(proofJSON), []byte(`{}`), []byte(`{}`), []byte(`{}`))
	require.Error(t, err)
	assert.False(t, primitive.called)
}

func TestVerifyProof_InvalidJSON_Fails(t *testing.T) {
	primitive := &stubPrimitive{}
	e := New(primitive)

	_, err := e.VerifyProof([]byte(`not json`), []byte(matchingProofJSON()), []byte(`{}`), []byte(`{}`), []byte(`{}`))
	require.Error(t, err)
	assert.False(t, primitive.called)
}
