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

package model

// Predicate is a single `>=`-style predicate over a credential attribute,
// e.g. {attr_name: "age", p_type: ">=", value: 18}.
type Predicate struct {
	AttrName string `json:"attr_name"`
	PType    string `json:"p_type"`
	Value    int    `json:"value"`
}

// ProofRequest is what a verifier asks a prover to satisfy: a set of
// attributes to reveal and a set of predicates to prove, correlated by a
// nonce to prevent replay.
type ProofRequest struct {
	Nonce               string               `json:"nonce"`
	RequestedAttrs      map[string]any       `json:"requested_attrs"`
	RequestedPredicates map[string]Predicate `json:"requested_predicates"`
}

// RequestedProof is the prover's disclosure: which attribute references
// were revealed (with their values) and which were proven without
// disclosure.
type RequestedProof struct {
	RevealedAttrs   map[string]any `json:"revealed_attrs"`
	UnrevealedAttrs map[string]any `json:"unrevealed_attrs"`
}

// GEProof ("greater-or-equal proof") carries one predicate proven against a
// credential sub-proof.
type GEProof struct {
	Predicate Predicate `json:"predicate"`
}

// PrimaryProof is the primary (non-revocation) half of a credential
// sub-proof; it lists the GE-proofs proven against that credential.
type PrimaryProof struct {
	GEProofs []GEProof `json:"ge_proofs"`
}

// SubProofData is the credential-specific proof payload nested under
// SubProof.Proof.
type SubProofData struct {
	PrimaryProof PrimaryProof `json:"primary_proof"`
}

// SubProof is one credential's contribution to an aggregate Proof, keyed
// in Proof.Proofs by credential reference.
type SubProof struct {
	Proof SubProofData `json:"proof"`
}

// Proof is the prover's response to a ProofRequest: disclosed/proven
// attributes plus, per credential, the sub-proofs backing any predicates.
type Proof struct {
	RequestedProof RequestedProof      `json:"requested_proof"`
	Proofs         map[string]SubProof `json:"proofs"`
}
