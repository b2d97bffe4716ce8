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

package actions

import (
	"os"

	"github.com/sovereignkit/agentcore/dispatch"
	"github.com/urfave/cli/v2"
)

// VerifyProof reads the five JSON inputs named by flag from disk and
// submits a Verifier.VerifyProof command, printing the boolean verdict.
func VerifyProof(d *dispatch.Dispatcher) cli.ActionFunc {
	return func(c *cli.Context) error {
		readOrEmptyObject := func(flag string) ([]byte, error) {
			name := c.String(flag)
			if name == "" {
				return []byte("{}"), nil
			}
			return os.ReadFile(name)
		}

		proofRequest, err := readOrEmptyObject("proof-request")
		if err != nil {
			return exitErr(err)
		}
		proof, err := readOrEmptyObject("proof")
		if err != nil {
			return exitErr(err)
		}
		schemas, err := readOrEmptyObject("schemas")
		if err != nil {
			return exitErr(err)
		}
		claimDefs, err := readOrEmptyObject("claim-defs")
		if err != nil {
			return exitErr(err)
		}
		revocRegs, err := readOrEmptyObject("revoc-regs")
		if err != nil {
			return exitErr(err)
		}

		var ok bool
		var cmdErr error
		done := make(chan struct{})
		d.Submit(&dispatch.VerifyProofCmd{
			ProofRequestJSON: proofRequest,
			ProofJSON:        proof,
			SchemasJSON:      schemas,
			ClaimDefsJSON:    claimDefs,
			RevocRegsJSON:    revocRegs,
			Reply:            func(result bool, err error) { ok, cmdErr = result, err; close(done) },
		})
		<-done
		if cmdErr != nil {
			return exitErr(cmdErr)
		}

		return printJSON(map[string]bool{"verified": ok})
	}
}
