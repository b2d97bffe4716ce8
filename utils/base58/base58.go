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

// Package base58 wraps btcutil's Base58 codec with the strict, validating
// Decode the core needs: btcutil's own Decode silently drops characters
// outside the Base58 alphabet instead of failing, which would let a
// malformed DID or key slip through as a shorter, wrong value. We instead
// round-trip decode→encode and compare against the input, so decode∘encode
// holds as the identity for every value this package accepts.
package base58

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/sovereignkit/agentcore/apperrors"
)

// Encode returns the Base58 encoding of b.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode validates s is a well-formed Base58 string and returns its decoded
// bytes. It fails with a Common/InvalidStructure error if s contains
// characters outside the Base58 alphabet or otherwise fails to round-trip.
func Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, apperrors.InvalidStructure("empty base58 string", nil)
	}

	decoded := base58.Decode(s)
	if base58.Encode(decoded) != s {
		return nil, apperrors.InvalidStructure("invalid base58 string: "+s, nil)
	}

	return decoded, nil
}
