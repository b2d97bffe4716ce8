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

// Package verifier implements the Verifier executor: it cross-validates an
// anonymous-credential proof request against the proof submitted in
// response, rejecting structurally inconsistent bundles before the
// (external, out-of-scope) AnonCreds cryptographic primitive is ever
// invoked.
package verifier

import (
	"strconv"

	"github.com/sovereignkit/agentcore/apperrors"
	"github.com/sovereignkit/agentcore/model"
	"github.com/sovereignkit/agentcore/services/anoncreds"
	"github.com/sovereignkit/agentcore/utils/jsonw"
)

// Executor is the Verifier executor: a thin, stateless wrapper around the
// AnonCreds primitive that enforces structural consistency first.
type Executor struct {
	primitive anoncreds.Verifier
}

// New returns a Verifier executor delegating cryptographic verification to
// primitive.
func New(primitive anoncreds.Verifier) *Executor {
	return &Executor{primitive: primitive}
}

// VerifyProof parses all five JSON inputs, checks that the set of revealed
// and unrevealed attribute references and the set of unique predicates in proof exactly
// match what proofRequest asked for, and only then delegates to the
// AnonCreds primitive for the cryptographic verdict.
func (e *Executor) VerifyProof(proofRequestJSON, proofJSON, schemasJSON, claimDefsJSON, revocRegsJSON []byte) (bool, error) {
	var proofRequest model.ProofRequest
	if err := jsonw.Unmarshal(proofRequestJSON, &proofRequest); err != nil {
		return false, apperrors.InvalidStructure("proof_request_json is invalid", err)
	}

	var proof model.Proof
	if err := jsonw.Unmarshal(proofJSON, &proof); err != nil {
		return false, apperrors.InvalidStructure("proof_json is invalid", err)
	}

	var schemas map[string]any
	if err := jsonw.Unmarshal(schemasJSON, &schemas); err != nil {
		return false, apperrors.InvalidStructure("schemas_json is invalid", err)
	}

	var claimDefs map[string]any
	if err := jsonw.Unmarshal(claimDefsJSON, &claimDefs); err != nil {
		return false, apperrors.InvalidStructure("claim_defs_json is invalid", err)
	}

	var revocRegs map[string]any
	if err := jsonw.Unmarshal(revocRegsJSON, &revocRegs); err != nil {
		return false, apperrors.InvalidStructure("revoc_regs_json is invalid", err)
	}

	if err := crossValidate(&proofRequest, &proof); err != nil {
		return false, err
	}

	return e.primitive.VerifyProof(&proofRequest, &proof, schemas, claimDefs, revocRegs)
}

// crossValidate implements the structural check: it is intentional that
// this runs before any cryptography, rejecting malformed or adversarial
// submissions cheaply and ensuring the primitive is never invoked on an
// inconsistent bundle.
func crossValidate(proofRequest *model.ProofRequest, proof *model.Proof) error {
	requestedAttrs := keySet(proofRequest.RequestedAttrs)
	receivedAttrs := union(keySet(proof.RequestedProof.RevealedAttrs), keySet(proof.RequestedProof.UnrevealedAttrs))
	if !setsEqual(requestedAttrs, receivedAttrs) {
		return apperrors.InvalidStructure("Requested attributes do not correspond to received", nil)
	}

	requestedPredicates := predicateSet(proofRequest.RequestedPredicates)
	receivedPredicates := receivedPredicateSet(proof)
	if !setsEqual(requestedPredicates, receivedPredicates) {
		return apperrors.InvalidStructure("Requested predicates do not correspond to received", nil)
	}

	return nil
}

func keySet(m map[string]any) map[string]struct{} {
	s := make(map[string]struct{}, len(m))
	for k := range m {
		s[k] = struct{}{}
	}
	return s
}

func union(a, b map[string]struct{}) map[string]struct{} {
	s := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		s[k] = struct{}{}
	}
	for k := range b {
		s[k] = struct{}{}
	}
	return s
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// predicateSet collapses requested predicates into a set of their
// descriptors, keyed by a string encoding of (attr_name, p_type, value).
// Two distinct predicate references requesting the identical descriptor
// collapse to one set member; see DESIGN.md for the reasoning.
func predicateSet(m map[string]model.Predicate) map[string]struct{} {
	s := make(map[string]struct{}, len(m))
	for _, p := range m {
		s[predicateKey(p)] = struct{}{}
	}
	return s
}

func receivedPredicateSet(proof *model.Proof) map[string]struct{} {
	s := make(map[string]struct{})
	for _, sub := range proof.Proofs {
		for _, ge := range sub.Proof.PrimaryProof.GEProofs {
			s[predicateKey(ge.Predicate)] = struct{}{}
		}
	}
	return s
}

func predicateKey(p model.Predicate) string {
	return p.AttrName + "\x00" + p.PType + "\x00" + strconv.Itoa(p.Value)
}
