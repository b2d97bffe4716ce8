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

// Package anoncreds names the narrow contract the Verifier executor
// delegates to once a proof has passed structural cross-validation. The
// anonymous-credential cryptography itself (schemas, claim definitions,
// revocation registries, the actual proof math) is an external collaborator
// reached only through this interface; this module never implements it.
package anoncreds

import (
	"errors"

	"github.com/sovereignkit/agentcore/model"
)

// Verifier is the AnonCreds primitive's public surface as seen by the
// Verifier executor: given a structurally-validated proof bundle, decide
// whether the cryptographic proof itself holds.
type Verifier interface {
	VerifyProof(
		proofRequest *model.ProofRequest,
		proof *model.Proof,
		schemas map[string]any,
		claimDefs map[string]any,
		revocRegs map[string]any,
	) (bool, error)
}

// ErrNotConfigured is returned by Unconfigured for every call.
var ErrNotConfigured = errors.New("no anoncreds primitive configured")

// Unconfigured is a Verifier stand-in for deployments that haven't wired a
// real AnonCreds backend yet. It fails closed rather than approving proofs
// it cannot actually check.
type Unconfigured struct{}

func (Unconfigured) VerifyProof(*model.ProofRequest, *model.Proof, map[string]any, map[string]any, map[string]any) (bool, error) {
	return false, ErrNotConfigured
}
