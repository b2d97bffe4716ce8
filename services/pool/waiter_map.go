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
	"sync"
	"time"

	"github.com/sovereignkit/agentcore/apperrors"
)

type waiterEntry struct {
	cb         func(Result)
	registered time.Time
}

// waiterMap holds one-shot continuations keyed by pending request handle.
// It is driven exclusively by the executor's single-consumer goroutine;
// the TryLock guard below exists to detect and reject any reentrant
// mutation rather than silently corrupting the map, per §5's interior
// mutation requirement.
type waiterMap struct {
	mu      sync.Mutex
	waiters map[int32]waiterEntry
}

func newWaiterMap() *waiterMap {
	return &waiterMap{waiters: make(map[int32]waiterEntry)}
}

func (w *waiterMap) register(handle int32, cb func(Result)) error {
	if !w.mu.TryLock() {
		return apperrors.New(apperrors.FamilyCommon, apperrors.CommonInvalidState, "reentrant mutation of pool waiter map")
	}
	defer w.mu.Unlock()

	w.waiters[handle] = waiterEntry{cb: cb, registered: time.Now()}
	return nil
}

// resolve removes and returns the continuation for handle, if present.
// Removal strictly precedes invocation by the caller: resolve only ever
// hands back the callback, it never calls it itself.
func (w *waiterMap) resolve(handle int32) (func(Result), bool, error) {
	if !w.mu.TryLock() {
		return nil, false, apperrors.New(apperrors.FamilyCommon, apperrors.CommonInvalidState, "reentrant mutation of pool waiter map")
	}
	defer w.mu.Unlock()

	entry, found := w.waiters[handle]
	if !found {
		return nil, false, nil
	}
	delete(w.waiters, handle)
	return entry.cb, true, nil
}

// sweep removes every entry registered more than timeout ago, invoking
// onExpired(handle, cb) for each one after it has already been removed
// from the map.
func (w *waiterMap) sweep(timeout time.Duration, onExpired func(handle int32, cb func(Result))) {
	if !w.mu.TryLock() {
		return
	}

	cutoff := time.Now().Add(-timeout)
	var expired []struct {
		handle int32
		cb     func(Result)
	}
	for handle, entry := range w.waiters {
		if entry.registered.Before(cutoff) {
			expired = append(expired, struct {
				handle int32
				cb     func(Result)
			}{handle, entry.cb})
			delete(w.waiters, handle)
		}
	}
	w.mu.Unlock()

	for _, e := range expired {
		onExpired(e.handle, e.cb)
	}
}
