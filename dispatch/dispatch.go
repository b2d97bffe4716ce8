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

// Package dispatch implements the Command Dispatcher: a single-threaded
// cooperative consumer that drains a queue of tagged command values and
// routes each synchronously to the Signus, Verifier or Pool executor.
// Commands are processed strictly in enqueue order; a caller that issues
// Pool.Open and later Pool.Close for the handle it receives observes the
// OpenAck callback fire before CloseAck, because Close cannot be submitted
// before the handle is known.
package dispatch

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sovereignkit/agentcore/model"
	"github.com/sovereignkit/agentcore/services/pool"
	"github.com/sovereignkit/agentcore/services/signus"
	"github.com/sovereignkit/agentcore/services/verifier"
)

// Command is a tagged unit of work accepted by the dispatcher. The
// concrete types in this package (VerifyProofCmd, CreateMyDidCmd, ...) are
// the only implementations.
type Command interface {
	dispatch(d *Dispatcher)
}

// Dispatcher is the Command Dispatcher. It owns no state of its own beyond
// the queue: the Signus service, Verifier executor and Pool executor are
// read-only collaborators shared by reference, with all of their mutable
// state serialized by whichever single-consumer loop owns it (the
// dispatcher's own Run loop for Signus and Verifier, the Pool executor's
// own Run loop for pool waiters).
type Dispatcher struct {
	signus   *signus.Service
	verifier *verifier.Executor
	pool     *pool.Executor

	cmds chan Command
	log  zerolog.Logger
}

// New returns a Dispatcher routing commands to the given collaborators.
// The Pool executor's own Run loop is not started here: callers start it
// (and the Dispatcher's) with Run, typically on two goroutines sharing a
// stop channel.
func New(signusSvc *signus.Service, verifierExec *verifier.Executor, poolExec *pool.Executor) *Dispatcher {
	return &Dispatcher{
		signus:   signusSvc,
		verifier: verifierExec,
		pool:     poolExec,
		cmds:     make(chan Command, 64),
		log:      log.With().Str("component", "dispatch.Dispatcher").Logger(),
	}
}

// Submit enqueues cmd. Safe to call from any goroutine.
func (d *Dispatcher) Submit(cmd Command) {
	d.cmds <- cmd
}

// Run drains the command queue until stopCh is closed. This is the single
// consumer: every Signus and Verifier call, and every Pool command
// submitted through the dispatcher, is handled on this goroutine.
func (d *Dispatcher) Run(stopCh <-chan struct{}) {
	for {
		select {
		case cmd := <-d.cmds:
			cmd.dispatch(d)
		case <-stopCh:
			return
		}
	}
}

// VerifyProofCmd is Verifier.VerifyProof.
type VerifyProofCmd struct {
	ProofRequestJSON, ProofJSON, SchemasJSON, ClaimDefsJSON, RevocRegsJSON []byte
	Reply                                                                 func(ok bool, err error)
}

func (c *VerifyProofCmd) dispatch(d *Dispatcher) {
	ok, err := d.verifier.VerifyProof(c.ProofRequestJSON, c.ProofJSON, c.SchemasJSON, c.ClaimDefsJSON, c.RevocRegsJSON)
	c.Reply(ok, err)
}

// PoolCreateCmd is Pool.Create.
type PoolCreateCmd struct {
	Name   string
	Config []byte
	Reply  func(err error)
}

func (c *PoolCreateCmd) dispatch(d *Dispatcher) {
	c.Reply(d.pool.Create(c.Name, c.Config))
}

// PoolDeleteCmd is Pool.Delete.
type PoolDeleteCmd struct {
	Name  string
	Reply func(err error)
}

func (c *PoolDeleteCmd) dispatch(d *Dispatcher) {
	c.Reply(d.pool.Delete(c.Name))
}

// PoolOpenCmd is Pool.Open.
type PoolOpenCmd struct {
	Name   string
	Config []byte
	Reply  func(handle int32, err error)
}

func (c *PoolOpenCmd) dispatch(d *Dispatcher) {
	d.pool.Open(c.Name, c.Config, c.Reply)
}

// PoolCloseCmd is Pool.Close.
type PoolCloseCmd struct {
	Handle int32
	Reply  func(err error)
}

func (c *PoolCloseCmd) dispatch(d *Dispatcher) {
	d.pool.Close(c.Handle, c.Reply)
}

// PoolRefreshCmd is Pool.Refresh.
type PoolRefreshCmd struct {
	Handle int32
	Reply  func(err error)
}

func (c *PoolRefreshCmd) dispatch(d *Dispatcher) {
	d.pool.Refresh(c.Handle, c.Reply)
}

// PoolOpenAckCmd is Pool.OpenAck: an acknowledgement arriving from the pool
// substrate, not a caller request. It carries no continuation of its own.
type PoolOpenAckCmd struct {
	Handle int32
	Result pool.Result
}

func (c *PoolOpenAckCmd) dispatch(d *Dispatcher) { d.pool.OpenAck(c.Handle, c.Result) }

// PoolCloseAckCmd is Pool.CloseAck.
type PoolCloseAckCmd struct {
	Handle int32
	Result pool.Result
}

func (c *PoolCloseAckCmd) dispatch(d *Dispatcher) { d.pool.CloseAck(c.Handle, c.Result) }

// PoolRefreshAckCmd is Pool.RefreshAck.
type PoolRefreshAckCmd struct {
	Handle int32
	Result pool.Result
}

func (c *PoolRefreshAckCmd) dispatch(d *Dispatcher) { d.pool.RefreshAck(c.Handle, c.Result) }

// CreateMyDidCmd is Signus.CreateMyDid.
type CreateMyDidCmd struct {
	Info  model.MyDidInfo
	Reply func(did *model.MyDid, err error)
}

func (c *CreateMyDidCmd) dispatch(d *Dispatcher) {
	did, err := d.signus.CreateMyDid(c.Info)
	c.Reply(did, err)
}

// CreateTheirDidCmd is Signus.CreateTheirDid.
type CreateTheirDidCmd struct {
	Info  model.TheirDidInfo
	Reply func(did *model.TheirDid, err error)
}

func (c *CreateTheirDidCmd) dispatch(d *Dispatcher) {
	did, err := d.signus.CreateTheirDid(c.Info)
	c.Reply(did, err)
}

// SignCmd is Signus.Sign.
type SignCmd struct {
	Did   *model.MyDid
	Doc   []byte
	Reply func(signed []byte, err error)
}

func (c *SignCmd) dispatch(d *Dispatcher) {
	signed, err := d.signus.Sign(c.Did, c.Doc)
	c.Reply(signed, err)
}

// VerifyCmd is Signus.Verify.
type VerifyCmd struct {
	Their     *model.TheirDid
	SignedMsg []byte
	Reply     func(ok bool, err error)
}

func (c *VerifyCmd) dispatch(d *Dispatcher) {
	ok, err := d.signus.Verify(c.Their, c.SignedMsg)
	c.Reply(ok, err)
}

// EncryptCmd is Signus.Encrypt.
type EncryptCmd struct {
	My    *model.MyDid
	Their *model.TheirDid
	Doc   []byte
	Reply func(ciphertext, nonce string, err error)
}

func (c *EncryptCmd) dispatch(d *Dispatcher) {
	ciphertext, nonce, err := d.signus.Encrypt(c.My, c.Their, c.Doc)
	c.Reply(ciphertext, nonce, err)
}

// DecryptCmd is Signus.Decrypt.
type DecryptCmd struct {
	My         *model.MyDid
	Their      *model.TheirDid
	Ciphertext string
	Nonce      string
	Reply      func(doc []byte, err error)
}

func (c *DecryptCmd) dispatch(d *Dispatcher) {
	doc, err := d.signus.Decrypt(c.My, c.Their, c.Ciphertext, c.Nonce)
	c.Reply(doc, err)
}
