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
	"context"
	"fmt"

	"github.com/sovereignkit/agentcore/dispatch"
	"github.com/sovereignkit/agentcore/model"
	"github.com/sovereignkit/agentcore/utils/jsonw"
	"github.com/urfave/cli/v2"
)

// CreateMyDid creates a new owned DID, prints it, and saves it to the
// wallet directory under <did>.json so later commands (sign, verify) can
// load it back by DID.
func CreateMyDid(d *dispatch.Dispatcher) cli.ActionFunc {
	return func(c *cli.Context) error {
		store, err := walletStore(c)
		if err != nil {
			return exitErr(err)
		}

		var did *model.MyDid
		var cmdErr error
		done := make(chan struct{})
		d.Submit(&dispatch.CreateMyDidCmd{
			Info: model.MyDidInfo{
				Seed:       c.String("seed"),
				CryptoType: c.String("crypto-type"),
				CID:        c.Bool("cid"),
			},
			Reply: func(result *model.MyDid, err error) {
				did, cmdErr = result, err
				close(done)
			},
		})
		<-done
		if cmdErr != nil {
			return exitErr(cmdErr)
		}

		b, err := jsonw.MarshalIndent(did, "", "  ")
		if err != nil {
			return exitErr(err)
		}
		if err := store.Put(context.Background(), walletFile(did.DID), b); err != nil {
			return exitErr(err)
		}

		return printJSON(did)
	}
}

// Sign loads the owned DID named by --did from the wallet directory and
// signs the JSON document in --doc, printing the signed result.
func Sign(d *dispatch.Dispatcher) cli.ActionFunc {
	return func(c *cli.Context) error {
		didID := c.String("did")
		if didID == "" {
			return cli.Exit("--did is required", InvalidParameter)
		}

		store, err := walletStore(c)
		if err != nil {
			return exitErr(err)
		}

		raw, err := store.Get(context.Background(), walletFile(didID))
		if err != nil {
			return exitErr(err)
		}
		var my model.MyDid
		if err := jsonw.Unmarshal(raw, &my); err != nil {
			return exitErr(err)
		}

		var signed []byte
		var cmdErr error
		done := make(chan struct{})
		d.Submit(&dispatch.SignCmd{
			Did:   &my,
			Doc:   []byte(c.String("doc")),
			Reply: func(out []byte, err error) { signed, cmdErr = out, err; close(done) },
		})
		<-done
		if cmdErr != nil {
			return exitErr(cmdErr)
		}

		fmt.Println(string(signed))
		return nil
	}
}

// Verify checks a signed document against a verkey, without needing any
// locally-saved DID.
func Verify(d *dispatch.Dispatcher) cli.ActionFunc {
	return func(c *cli.Context) error {
		their := &model.TheirDid{
			DID:    c.String("did"),
			VerKey: c.String("verkey"),
		}

		var ok bool
		var cmdErr error
		done := make(chan struct{})
		d.Submit(&dispatch.VerifyCmd{
			Their:     their,
			SignedMsg: []byte(c.String("doc")),
			Reply:     func(result bool, err error) { ok, cmdErr = result, err; close(done) },
		})
		<-done
		if cmdErr != nil {
			return exitErr(cmdErr)
		}

		return printJSON(map[string]bool{"verified": ok})
	}
}
