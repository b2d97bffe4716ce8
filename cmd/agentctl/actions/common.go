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

// Package actions holds the agentctl subcommands: each wraps a Dispatcher
// command in a synchronous urfave/cli Action, waiting on the command's
// own one-shot continuation before returning.
package actions

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"syscall"

	"github.com/sovereignkit/agentcore/model"
	"github.com/sovereignkit/agentcore/services/wallet"
	"github.com/sovereignkit/agentcore/utils/jsonw"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	InvalidParameter = 1
	OperationFailed  = 2

	AgentctlVersion = "0.0.1"
)

var (
	BasicFlags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "if true, enable debug logging",
		},
		&cli.StringFlag{
			Name:    "wallet-dir",
			Value:   "",
			Usage:   "directory holding saved DIDs (defaults to $HOME/.agentctl)",
			EnvVars: []string{"AGENTCTL_WALLET_DIR"},
		},
		&cli.StringFlag{
			Name:    "wallet-key",
			Value:   "",
			Usage:   "passphrase encrypting saved DIDs at rest (defaults to a fixed development key)",
			EnvVars: []string{"AGENTCTL_WALLET_KEY"},
		},
	}
)

var configDirName = ".agentctl"

func SetConfigDirName(name string) {
	configDirName = name
}

func ConfigDir(c *cli.Context) (string, error) {
	if dir := c.String("wallet-dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return path.Join(home, configDirName), nil
}

// printJSON renders v as indented JSON to stdout, the way every agentctl
// read command reports its result.
func printJSON(v any) error {
	b, err := jsonw.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func walletFile(did string) string {
	return did + ".json"
}

// devWalletKey is used when --wallet-key is left unset and stdin isn't a
// terminal to prompt against, matching agentctl's single-user development
// posture: convenient out of the box, never the right choice for a shared
// or production wallet directory.
const devWalletKey = "agentctl-dev-key"

const passphraseHashFile = ".passphrase_hash"

// walletPassphrase resolves the passphrase protecting the wallet: the
// --wallet-key flag/env if set, an interactive masked prompt if stdin is a
// terminal, or devWalletKey as the non-interactive fallback.
func walletPassphrase(c *cli.Context) (string, error) {
	if passphrase := c.String("wallet-key"); passphrase != "" {
		return passphrase, nil
	}
	if !term.IsTerminal(syscall.Stdin) {
		return devWalletKey, nil
	}

	fmt.Print("wallet passphrase: ")
	byteVal, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(byteVal), nil
}

// walletStore opens the on-disk wallet for c, wrapping it so every saved
// DID is encrypted at rest with a key derived from the wallet passphrase.
// A bcrypt hash of the passphrase is saved alongside the wallet on first
// use and checked on every later open, so a wrong passphrase fails with a
// clear error instead of silent decrypt failures on every saved DID.
func walletStore(c *cli.Context) (wallet.Store, error) {
	dir, err := ConfigDir(c)
	if err != nil {
		return nil, err
	}
	backend, err := wallet.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	passphrase, err := walletPassphrase(c)
	if err != nil {
		return nil, err
	}

	if err := checkOrSavePassphraseHash(dir, passphrase); err != nil {
		return nil, err
	}

	key := model.DeriveEncryptionKey([]byte(passphrase), []byte(dir))

	return wallet.NewEncryptedStore(backend, key), nil
}

func checkOrSavePassphraseHash(dir, passphrase string) error {
	hashPath := filepath.Join(dir, passphraseHashFile)

	existing, err := os.ReadFile(hashPath)
	if err == nil {
		return wallet.CheckPassphrase(passphrase, string(existing))
	}
	if !os.IsNotExist(err) {
		return err
	}

	hash, err := wallet.HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	return os.WriteFile(hashPath, []byte(hash), 0o600)
}

func exitErr(err error) error {
	return cli.Exit(err.Error(), OperationFailed)
}
