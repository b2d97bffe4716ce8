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

// Command agentctl is a thin CLI front end over the dispatcher: every
// subcommand submits one tagged command and waits on its continuation.
package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sovereignkit/agentcore/cmd/agentctl/actions"
	"github.com/sovereignkit/agentcore/dispatch"
	"github.com/sovereignkit/agentcore/model/suite"
	"github.com/sovereignkit/agentcore/services/anoncreds"
	"github.com/sovereignkit/agentcore/services/pool"
	"github.com/sovereignkit/agentcore/services/signus"
	"github.com/sovereignkit/agentcore/services/verifier"
	"github.com/urfave/cli/v2"
)

var cfg = koanf.New(".")

func main() {
	app := cli.NewApp()
	app.Name = "agentctl"
	app.Usage = "a CLI front end for the agent core's DID, proof and pool operations"
	app.Version = actions.AgentctlVersion

	app.Flags = actions.BasicFlags

	var stop chan struct{}

	app.Before = func(c *cli.Context) error {
		if c.Bool("debug") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp})

		dir, err := actions.ConfigDir(c)
		if err != nil {
			return err
		}
		if err := loadConfig(dir); err != nil {
			log.Debug().Err(err).Msg("no agentctl config file found, using defaults")
		}

		d, poolExec, stopFn := newDispatcher()
		stop = stopFn
		c.App.Metadata["dispatcher"] = d
		c.App.Metadata["pool"] = poolExec

		return nil
	}

	app.After = func(c *cli.Context) error {
		if stop != nil {
			close(stop)
		}
		return nil
	}

	app.Commands = commands()

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("agentctl command failed")
	}
}

func loadConfig(dir string) error {
	return cfg.Load(file.Provider(filepath.Join(dir, "config.yaml")), yaml.Parser())
}

func newDispatcher() (*dispatch.Dispatcher, *pool.Executor, chan struct{}) {
	signusSvc := signus.New(suite.NewRegistry(suite.NewEd25519()))
	verifierExec := verifier.New(anoncreds.Unconfigured{})

	transport := pool.NewLocalTransport()
	poolExec := pool.New(transport)
	transport.AttachExecutor(poolExec)

	d := dispatch.New(signusSvc, verifierExec, poolExec)

	stop := make(chan struct{})
	go d.Run(stop)
	go poolExec.Run(stop)

	return d, poolExec, stop
}

func dispatcherOf(c *cli.Context) *dispatch.Dispatcher {
	return c.App.Metadata["dispatcher"].(*dispatch.Dispatcher)
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "did",
			Usage: "DID operations",
			Subcommands: []*cli.Command{
				{
					Name:  "create",
					Usage: "create and save a new owned DID",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "seed", Usage: "32-byte seed (optional, random if omitted)"},
						&cli.StringFlag{Name: "crypto-type", Value: "ed25519", Usage: "crypto suite identifier"},
						&cli.BoolFlag{Name: "cid", Usage: "derive the DID from the full verkey"},
					},
					Action: func(c *cli.Context) error { return actions.CreateMyDid(dispatcherOf(c))(c) },
				},
				{
					Name:   "list",
					Usage:  "list saved DIDs",
					Action: actions.ListMyDids,
				},
				{
					Name:  "sign",
					Usage: "sign a JSON document with a saved DID",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "did", Required: true, Usage: "owned DID identifier"},
						&cli.StringFlag{Name: "doc", Required: true, Usage: "JSON document text"},
					},
					Action: func(c *cli.Context) error { return actions.Sign(dispatcherOf(c))(c) },
				},
				{
					Name:  "verify",
					Usage: "verify a signed JSON document against a verkey",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "did", Usage: "remote DID identifier"},
						&cli.StringFlag{Name: "verkey", Required: true, Usage: "remote verkey, Base58"},
						&cli.StringFlag{Name: "doc", Required: true, Usage: "signed JSON document text"},
					},
					Action: func(c *cli.Context) error { return actions.Verify(dispatcherOf(c))(c) },
				},
			},
		},
		{
			Name:  "pool",
			Usage: "ledger pool operations (sample in-process transport)",
			Subcommands: []*cli.Command{
				{
					Name:  "open",
					Usage: "create and open a named pool",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "name", Required: true},
					},
					Action: func(c *cli.Context) error { return actions.PoolOpen(dispatcherOf(c))(c) },
				},
				{
					Name:  "close",
					Usage: "close a pool handle",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: "handle", Required: true},
					},
					Action: func(c *cli.Context) error { return actions.PoolClose(dispatcherOf(c))(c) },
				},
			},
		},
		{
			Name:  "proof",
			Usage: "anonymous-credential proof operations",
			Subcommands: []*cli.Command{
				{
					Name:  "verify",
					Usage: "structurally validate and verify a proof bundle",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "proof-request", Usage: "path to proof_request JSON"},
						&cli.StringFlag{Name: "proof", Usage: "path to proof JSON"},
						&cli.StringFlag{Name: "schemas", Usage: "path to schemas JSON"},
						&cli.StringFlag{Name: "claim-defs", Usage: "path to claim defs JSON"},
						&cli.StringFlag{Name: "revoc-regs", Usage: "path to revocation registries JSON"},
					},
					Action: func(c *cli.Context) error { return actions.VerifyProof(dispatcherOf(c))(c) },
				},
			},
		},
	}
}
