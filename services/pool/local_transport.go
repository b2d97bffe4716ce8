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

package pool

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cskr/pubsub"
	"github.com/sovereignkit/agentcore/apperrors"
)

// LocalTransport is a sample, in-process Transport: it simulates a ledger
// pool by completing every open/close/refresh request on a short delay,
// publishing the acknowledgement on a pubsub topic keyed by handle. It
// exists to exercise the executor end-to-end without a real ledger, and
// as a template for a genuine remote transport (see RemoteTransport).
type LocalTransport struct {
	ps         *pubsub.PubSub
	nextHandle int32

	mu    sync.Mutex
	names map[string]bool

	exec *Executor
}

// NewLocalTransport returns a LocalTransport whose acknowledgements are
// published on an internal pubsub bus.
func NewLocalTransport() *LocalTransport {
	return &LocalTransport{
		ps:    pubsub.New(16),
		names: make(map[string]bool),
	}
}

// AttachExecutor wires exec so every handle InitiateOpen/InitiateClose/
// InitiateRefresh produces is bridged automatically: callers don't need to
// invoke BridgeOpen/BridgeClose/BridgeRefresh themselves. Call this once,
// before handing the transport to the executor's Run loop.
func (t *LocalTransport) AttachExecutor(exec *Executor) {
	t.exec = exec
}

// Subscribe returns a one-shot channel carrying the Result published for
// handle, then unsubscribes. Used by the Bridge* helpers below to forward
// an acknowledgement into the executor.
func (t *LocalTransport) Subscribe(handle int32) <-chan Result {
	ch := t.ps.Sub(topicFor(handle))
	out := make(chan Result, 1)
	go func() {
		msg := <-ch
		if r, ok := msg.(Result); ok {
			out <- r
		}
		t.ps.Unsub(ch)
	}()
	return out
}

// BridgeOpen forwards LocalTransport's next acknowledgement for handle
// into exec.OpenAck. Call this right after InitiateOpen returns handle.
func BridgeOpen(t *LocalTransport, exec *Executor, handle int32) {
	go func() { exec.OpenAck(handle, <-t.Subscribe(handle)) }()
}

// BridgeClose forwards LocalTransport's next acknowledgement for handle
// into exec.CloseAck.
func BridgeClose(t *LocalTransport, exec *Executor, handle int32) {
	go func() { exec.CloseAck(handle, <-t.Subscribe(handle)) }()
}

// BridgeRefresh forwards LocalTransport's next acknowledgement for handle
// into exec.RefreshAck.
func BridgeRefresh(t *LocalTransport, exec *Executor, handle int32) {
	go func() { exec.RefreshAck(handle, <-t.Subscribe(handle)) }()
}

func topicFor(handle int32) string {
	return strconv.FormatInt(int64(handle), 10)
}

func (t *LocalTransport) Create(name string, _ []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.names[name] {
		return apperrors.New(apperrors.FamilyPool, apperrors.PoolLedgerNotCreated, "pool already exists: "+name)
	}
	t.names[name] = true
	return nil
}

func (t *LocalTransport) Delete(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.names[name] {
		return apperrors.IOError("pool does not exist: "+name, nil)
	}
	delete(t.names, name)
	return nil
}

func (t *LocalTransport) InitiateOpen(name string, _ []byte) (int32, error) {
	t.mu.Lock()
	known := t.names[name]
	t.mu.Unlock()
	if !known {
		return 0, apperrors.New(apperrors.FamilyPool, apperrors.PoolLedgerNotCreated, "pool not created: "+name)
	}

	handle := atomic.AddInt32(&t.nextHandle, 1)
	if t.exec != nil {
		BridgeOpen(t, t.exec, handle)
	}
	t.complete(handle, nil)
	return handle, nil
}

func (t *LocalTransport) InitiateClose(handle int32) error {
	if t.exec != nil {
		BridgeClose(t, t.exec, handle)
	}
	t.complete(handle, nil)
	return nil
}

func (t *LocalTransport) InitiateRefresh(handle int32) error {
	if t.exec != nil {
		BridgeRefresh(t, t.exec, handle)
	}
	t.complete(handle, nil)
	return nil
}

// complete publishes the acknowledgement asynchronously, mirroring how a
// real ledger pool would respond on its own schedule rather than
// synchronously within the initiating call.
func (t *LocalTransport) complete(handle int32, err error) {
	go func() {
		time.Sleep(time.Millisecond)
		t.ps.Pub(Result{Err: err}, topicFor(handle))
	}()
}
