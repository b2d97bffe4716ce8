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

// Package pool implements the Pool Command Executor: it correlates
// asynchronous ledger-pool open/close/refresh acknowledgements back to
// their callers by handle, through three disjoint waiter maps. The
// executor itself never talks to a ledger; that's the Transport
// collaborator's job.
package pool

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sovereignkit/agentcore/apperrors"
)

// Result is what an acknowledgement carries back to a waiting continuation.
type Result struct {
	Err error
}

// Transport is the ledger-pool substrate the executor drives. It is an
// external collaborator: this package only ever reaches the pool through
// this interface, never over a concrete wire protocol.
type Transport interface {
	// Create registers a new named pool configuration.
	Create(name string, config []byte) error
	// Delete removes a named pool configuration.
	Delete(name string) error
	// InitiateOpen starts opening the pool and returns a pending handle
	// synchronously; the corresponding OpenAck arrives later.
	InitiateOpen(name string, config []byte) (int32, error)
	// InitiateClose starts closing an open pool handle.
	InitiateClose(handle int32) error
	// InitiateRefresh starts refreshing an open pool handle.
	InitiateRefresh(handle int32) error
}

// Executor is the Pool Command Executor. Every method is safe to call from
// any goroutine for enqueueing, but the waiter maps themselves are only
// ever mutated by the executor's own single consumer that drains its
// command queue; see Run.
type Executor struct {
	transport Transport

	openWaiters    *waiterMap
	closeWaiters   *waiterMap
	refreshWaiters *waiterMap

	cmds chan func()

	log zerolog.Logger
}

// New returns a Pool executor driving transport, with its own command
// queue. Call Run to start the single-consumer loop.
func New(transport Transport) *Executor {
	return &Executor{
		transport:      transport,
		openWaiters:    newWaiterMap(),
		closeWaiters:   newWaiterMap(),
		refreshWaiters: newWaiterMap(),
		cmds:           make(chan func(), 64),
		log:            log.With().Str("component", "pool.Executor").Logger(),
	}
}

// Run drains the executor's command queue until stopCh is closed. It is
// the single consumer: every waiter-map mutation happens on this
// goroutine, so the reentrancy guard inside waiterMap is a backstop, not
// the primary mechanism of exclusion.
func (e *Executor) Run(stopCh <-chan struct{}) {
	for {
		select {
		case cmd := <-e.cmds:
			cmd()
		case <-stopCh:
			return
		}
	}
}

// enqueue posts a unit of work onto the single-consumer queue. Callers
// outside the Run goroutine use this for every state transition.
func (e *Executor) enqueue(fn func()) {
	e.cmds <- fn
}

// Create is a synchronous pass-through to the transport.
func (e *Executor) Create(name string, config []byte) error {
	if name == "" {
		return apperrors.InvalidParam("name")
	}
	return e.transport.Create(name, config)
}

// Delete is a synchronous pass-through to the transport.
func (e *Executor) Delete(name string) error {
	if name == "" {
		return apperrors.InvalidParam("name")
	}
	return e.transport.Delete(name)
}

// Open asks the transport to initiate opening name and registers cb to
// fire when the matching OpenAck arrives. cb is invoked exactly once,
// either synchronously (on a transport error) or later from the Run
// goroutine.
func (e *Executor) Open(name string, config []byte, cb func(handle int32, err error)) {
	handle, err := e.transport.InitiateOpen(name, config)
	if err != nil {
		cb(0, err)
		return
	}

	e.enqueue(func() {
		if err := e.openWaiters.register(handle, func(r Result) { cb(handle, r.Err) }); err != nil {
			e.log.Error().Err(err).Int32("handle", handle).Msg("failed to register open waiter")
			cb(handle, err)
		}
	})
}

// Close asks the transport to initiate closing handle and registers cb to
// fire when the matching CloseAck arrives.
func (e *Executor) Close(handle int32, cb func(err error)) {
	if err := e.transport.InitiateClose(handle); err != nil {
		cb(err)
		return
	}

	e.enqueue(func() {
		if err := e.closeWaiters.register(handle, func(r Result) { cb(r.Err) }); err != nil {
			e.log.Error().Err(err).Int32("handle", handle).Msg("failed to register close waiter")
			cb(err)
		}
	})
}

// Refresh asks the transport to initiate refreshing handle and registers
// cb to fire when the matching RefreshAck arrives.
func (e *Executor) Refresh(handle int32, cb func(err error)) {
	if err := e.transport.InitiateRefresh(handle); err != nil {
		cb(err)
		return
	}

	e.enqueue(func() {
		if err := e.refreshWaiters.register(handle, func(r Result) { cb(r.Err) }); err != nil {
			e.log.Error().Err(err).Int32("handle", handle).Msg("failed to register refresh waiter")
			cb(err)
		}
	})
}

// OpenAck delivers an open acknowledgement. An orphan or duplicate ack
// (no matching waiter) is logged and dropped, not fatal.
func (e *Executor) OpenAck(handle int32, result Result) {
	e.enqueue(func() { e.deliver(e.openWaiters, "OpenAck", handle, result) })
}

// CloseAck delivers a close acknowledgement.
func (e *Executor) CloseAck(handle int32, result Result) {
	e.enqueue(func() { e.deliver(e.closeWaiters, "CloseAck", handle, result) })
}

// RefreshAck delivers a refresh acknowledgement.
func (e *Executor) RefreshAck(handle int32, result Result) {
	e.enqueue(func() { e.deliver(e.refreshWaiters, "RefreshAck", handle, result) })
}

func (e *Executor) deliver(waiters *waiterMap, ackName string, handle int32, result Result) {
	cb, found, err := waiters.resolve(handle)
	if err != nil {
		e.log.Error().Err(err).Str("ack", ackName).Int32("handle", handle).Msg("reentrant waiter-map mutation detected")
		return
	}
	if !found {
		e.log.Error().Str("ack", ackName).Int32("handle", handle).Msg("orphan acknowledgement discarded")
		return
	}
	cb(result)
}

// sweepTimeouts drops every waiter across all three maps registered more
// than timeout ago, delivering each a synthesized PoolLedgerTimeout result.
// Scheduled periodically by an external caller (see StartTimeoutSweep);
// always runs as an enqueued unit of work so it never mutates the maps
// outside the single-consumer goroutine.
func (e *Executor) sweepTimeouts(timeout time.Duration) {
	e.enqueue(func() {
		e.openWaiters.sweep(timeout, func(handle int32, cb func(Result)) {
			e.log.Warn().Int32("handle", handle).Msg("open waiter timed out")
			cb(Result{Err: apperrors.PoolTimeout("open acknowledgement never arrived")})
		})
		e.closeWaiters.sweep(timeout, func(handle int32, cb func(Result)) {
			e.log.Warn().Int32("handle", handle).Msg("close waiter timed out")
			cb(Result{Err: apperrors.PoolTimeout("close acknowledgement never arrived")})
		})
		e.refreshWaiters.sweep(timeout, func(handle int32, cb func(Result)) {
			e.log.Warn().Int32("handle", handle).Msg("refresh waiter timed out")
			cb(Result{Err: apperrors.PoolTimeout("refresh acknowledgement never arrived")})
		})
	})
}
