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

package signus

import (
	"github.com/sovereignkit/agentcore/apperrors"
	"github.com/sovereignkit/agentcore/model"
	"github.com/sovereignkit/agentcore/model/slip10"
)

// DeriveChildDid derives a MyDid along a SLIP-0010 hardened path from
// masterSeed, instead of CreateMyDid's single flat seed: one master seed
// can produce a whole family of DIDs, one per path. info.Seed is ignored;
// info.DID and info.CID are honored exactly as in CreateMyDid.
func (s *Service) DeriveChildDid(masterSeed []byte, path string, info model.MyDidInfo) (*model.MyDid, error) {
	child, err := slip10.DeriveForPath(path, masterSeed)
	if err != nil {
		return nil, apperrors.InvalidStructure("invalid derivation path", err)
	}
	defer child.Zero()

	info.Seed = string(child.RawSeed())
	return s.CreateMyDid(info)
}
