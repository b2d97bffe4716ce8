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

type (
	// MyDidInfo is the caller-supplied recipe for creating an owned DID.
	// Every field is optional: an absent Seed means "generate randomly", an
	// absent CryptoType defaults to the suite registry's default suite, and
	// CID/DID together drive the DID derivation rule (see CreateMyDid).
	MyDidInfo struct {
		DID        string `json:"did,omitempty"`
		Seed       string `json:"seed,omitempty"`
		CryptoType string `json:"crypto_type,omitempty"`
		CID        bool   `json:"cid,omitempty"`
	}

	// MyDid is an owned, secret DID record: every one of its six string
	// fields is valid Base58, PK/SK are the suite's encryption-key
	// conversions of VerKey/SignKey, and DID was derived from VerKey per
	// the rule in CreateMyDid.
	MyDid struct {
		DID        string `json:"did"`
		CryptoType string `json:"crypto_type"`
		PK         string `json:"pk"`
		SK         string `json:"sk"`
		VerKey     string `json:"verkey"`
		SignKey    string `json:"signkey"`
	}

	// TheirDidInfo is the caller-supplied description of a remote party's
	// DID, as passed to CreateTheirDid.
	TheirDidInfo struct {
		DID        string `json:"did"`
		CryptoType string `json:"crypto_type,omitempty"`
		VerKey     string `json:"verkey,omitempty"`
		Endpoint   string `json:"endpoint,omitempty"`
	}

	// TheirDid is the stored record of a remote party's DID. If VerKey is
	// present, PK is always its suite-specific encryption-key conversion;
	// it is never supplied independently by the caller.
	TheirDid struct {
		DID        string `json:"did"`
		CryptoType string `json:"crypto_type,omitempty"`
		VerKey     string `json:"verkey,omitempty"`
		PK         string `json:"pk,omitempty"`
		Endpoint   string `json:"endpoint,omitempty"`
	}
)

// Zero drops the secret signing/encryption key material, leaving the
// public fields intact. Go strings are immutable, so this clears the
// reference rather than scrubbing backing memory; callers holding key
// material that must be scrubbed in place should keep it in a []byte and
// use zero.Bytes directly, as the crypto suite does internally.
func (d *MyDid) Zero() {
	d.SignKey = ""
	d.SK = ""
}
