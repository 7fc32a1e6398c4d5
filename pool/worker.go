// File: pool/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker slot lifecycle: one goroutine per slot, optionally locked to a
// native OS thread and pinned to a CPU core.

package pool

import (
	"log"
	"runtime"
	"sync/atomic"

	"github.com/momentics/prethread/api"
	"github.com/momentics/prethread/internal/concurrency"
)

// workerSlot is one indexed position in the pool's thread array. A slot that
// StartAll never reached stays unstarted; Join reports it as a distinct
// error instead of blocking on it.
type workerSlot struct {
	id      int
	started bool
	done    chan struct{}
}

// run executes the work function and marks the slot terminated. When the
// goroutine exits while locked to its OS thread, the runtime discards that
// thread, which is the desired pre-threading teardown.
func (w *workerSlot) run(p *ThreadPool, fn api.WorkFunc, arg any) {
	if cpu, ok := p.cfg.pinTarget(w.id); ok {
		// An affinity mask the pre-check accepted can still be rejected at
		// runtime (restricted cgroup cpuset); the worker then runs unpinned.
		if err := concurrency.PinCurrentThread(cpu); err != nil {
			log.Printf("pin: worker %d failed to set thread affinity: %v", w.id, err)
		} else {
			atomic.AddInt64(&p.pinned, 1)
		}
	} else if p.cfg.osThreads {
		runtime.LockOSThread()
	}
	defer close(w.done)
	fn(arg)
}

// startable validates the slot's pin target before the goroutine is spawned.
// An unsatisfiable target is the one start failure this runtime can detect
// up front, and it must stop StartAll at this slot.
func (w *workerSlot) startable(cfg config) bool {
	cpu, ok := cfg.pinTarget(w.id)
	if !ok {
		return true
	}
	return cpu >= 0 && cpu < runtime.NumCPU()
}
