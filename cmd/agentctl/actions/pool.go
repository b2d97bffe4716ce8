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
	"time"

	"github.com/sovereignkit/agentcore/dispatch"
	"github.com/urfave/cli/v2"
)

// PoolOpen creates and opens a named pool against the local, in-process
// sample transport, printing the handle it was assigned. A create error,
// including a pool of that name already existing, fails the command.
func PoolOpen(d *dispatch.Dispatcher) cli.ActionFunc {
	return func(c *cli.Context) error {
		name := c.String("name")
		if name == "" {
			return cli.Exit("--name is required", InvalidParameter)
		}

		createDone := make(chan error, 1)
		d.Submit(&dispatch.PoolCreateCmd{Name: name, Reply: func(err error) { createDone <- err }})
		if err := <-createDone; err != nil {
			return exitErr(err)
		}

		var handle int32
		var cmdErr error
		openDone := make(chan struct{})
		d.Submit(&dispatch.PoolOpenCmd{
			Name: name,
			Reply: func(h int32, err error) {
				handle, cmdErr = h, err
				close(openDone)
			},
		})

		select {
		case <-openDone:
		case <-time.After(10 * time.Second):
			return cli.Exit("timed out waiting for pool open acknowledgement", OperationFailed)
		}
		if cmdErr != nil {
			return exitErr(cmdErr)
		}

		return printJSON(map[string]any{"name": name, "handle": handle})
	}
}

// PoolClose closes a handle previously printed by PoolOpen.
func PoolClose(d *dispatch.Dispatcher) cli.ActionFunc {
	return func(c *cli.Context) error {
		handle := int32(c.Int64("handle"))

		var cmdErr error
		done := make(chan struct{})
		d.Submit(&dispatch.PoolCloseCmd{
			Handle: handle,
			Reply:  func(err error) { cmdErr = err; close(done) },
		})

		select {
		case <-done:
		case <-time.After(10 * time.Second):
			return cli.Exit("timed out waiting for pool close acknowledgement", OperationFailed)
		}
		if cmdErr != nil {
			return exitErr(cmdErr)
		}

		return printJSON(map[string]any{"handle": handle, "closed": true})
	}
}
