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
	"time"

	"github.com/claudiu/gocron"
)

// TimeoutSweeper periodically drops waiters that have outlived timeout,
// delivering each a synthesized Timeout result. This is the optional
// per-waiter timeout mentioned in §5: the sweep itself only enqueues work
// onto the executor's single-consumer queue, preserving the invariant
// that waiter maps are mutated from one goroutine only.
type TimeoutSweeper struct {
	scheduler *gocron.Scheduler
}

// StartTimeoutSweep schedules a sweep of exec's waiter maps every
// checkInterval, expiring any waiter older than timeout. checkInterval is
// truncated to whole seconds before it is handed to the scheduler. Call
// Stop to halt it.
func StartTimeoutSweep(exec *Executor, timeout, checkInterval time.Duration) *TimeoutSweeper {
	scheduler := gocron.NewScheduler()
	scheduler.Every(uint64(checkInterval.Seconds())).Seconds().Do(func() {
		exec.sweepTimeouts(timeout)
	})
	scheduler.Start()

	return &TimeoutSweeper{scheduler: scheduler}
}

// Stop halts the periodic sweep.
func (s *TimeoutSweeper) Stop() {
	s.scheduler.Clear()
}
