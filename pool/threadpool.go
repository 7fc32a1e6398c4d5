// File: pool/threadpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ThreadPool core: construction, bulk start, indexed lock/wait/signal
// operations, and the two teardown paths (Free vs JoinFree).

package pool

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/momentics/prethread/api"
)

// Pool lifecycle states.
const (
	stateCreated int32 = iota // threads allocated, none running
	stateRunning              // StartAll ran, 0 < started <= Size
	stateFreed                // terminal; every operation fails
)

// ThreadPool owns three parallel resources: worker thread slots, mutexes,
// and condition variables, all sized at construction and immutable after.
// The zero value is not usable; construct with New.
type ThreadPool struct {
	cfg     config
	mutexes []sync.Mutex
	conds   []*condvar
	workers []*workerSlot

	state   int32 // atomic: stateCreated/stateRunning/stateFreed
	started int64 // atomic: slots successfully started
	pinned  int64 // atomic: workers whose CPU pin took effect
	joined  int32 // atomic: 1 after the first Join call
}

var _ api.Pool = (*ThreadPool)(nil)

// New allocates a pool of threads threads, mutexes mutexes, and condvars
// condition variables as one unit. threads must be at least one; the
// primitive counts may be zero. No thread runs until StartAll.
func New(threads, mutexes, condvars int, opts ...Option) (*ThreadPool, error) {
	if threads <= 0 {
		return nil, api.WrapError(api.ErrCodeInvalidArgument, api.ErrZeroThreads).
			WithContext("threads", threads)
	}
	if mutexes < 0 || condvars < 0 {
		return nil, api.WrapError(api.ErrCodeInvalidArgument, api.ErrNegativeCount).
			WithContext("mutexes", mutexes).WithContext("condvars", condvars)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &ThreadPool{
		cfg:     cfg,
		mutexes: make([]sync.Mutex, mutexes),
		conds:   make([]*condvar, condvars),
		workers: make([]*workerSlot, threads),
	}
	for i := range p.conds {
		p.conds[i] = newCondvar()
	}
	for i := range p.workers {
		p.workers[i] = &workerSlot{id: i, done: make(chan struct{})}
	}
	return p, nil
}

// StartAll starts a thread for every slot in index order, each running
// fn(arg). On the first slot that cannot start it stops attempting further
// slots and returns the count started so far. Returns 0 on a nil pool, a nil
// fn, a freed pool, or a pool whose threads were already started.
func (p *ThreadPool) StartAll(fn api.WorkFunc, arg any) int {
	if p == nil || fn == nil {
		return 0
	}
	if !atomic.CompareAndSwapInt32(&p.state, stateCreated, stateRunning) {
		return 0
	}

	count := 0
	for _, w := range p.workers {
		if !w.startable(p.cfg) {
			break
		}
		w.started = true
		go w.run(p, fn, arg)
		count++
	}
	atomic.StoreInt64(&p.started, int64(count))
	return count
}

// Size returns the number of thread slots, 0 on a nil pool.
func (p *ThreadPool) Size() int {
	if p == nil {
		return 0
	}
	return len(p.workers)
}

// MutexSize returns the number of pool-owned mutexes, 0 on a nil pool.
func (p *ThreadPool) MutexSize() int {
	if p == nil {
		return 0
	}
	return len(p.mutexes)
}

// CondSize returns the number of pool-owned condition variables, 0 on a nil
// pool.
func (p *ThreadPool) CondSize() int {
	if p == nil {
		return 0
	}
	return len(p.conds)
}

// checkMutex validates the pool reference, lifecycle state, and mutex index.
func (p *ThreadPool) checkMutex(i int) error {
	if p == nil {
		return api.ErrInvalidPool
	}
	if atomic.LoadInt32(&p.state) == stateFreed {
		return api.WrapError(api.ErrCodeClosed, api.ErrPoolClosed)
	}
	if i < 0 || i >= len(p.mutexes) {
		return api.WrapError(api.ErrCodeOutOfRange, api.ErrMutexIndex).
			WithContext("index", i).WithContext("mutexes", len(p.mutexes))
	}
	return nil
}

// checkCond validates the pool reference, lifecycle state, and condvar index.
func (p *ThreadPool) checkCond(i int) error {
	if p == nil {
		return api.ErrInvalidPool
	}
	if atomic.LoadInt32(&p.state) == stateFreed {
		return api.WrapError(api.ErrCodeClosed, api.ErrPoolClosed)
	}
	if i < 0 || i >= len(p.conds) {
		return api.WrapError(api.ErrCodeOutOfRange, api.ErrCondIndex).
			WithContext("index", i).WithContext("condvars", len(p.conds))
	}
	return nil
}

// Lock blocks until the mutex at index i is acquired.
func (p *ThreadPool) Lock(i int) error {
	if err := p.checkMutex(i); err != nil {
		return err
	}
	p.mutexes[i].Lock()
	return nil
}

// TryLock acquires the mutex at index i without blocking. ErrLocked reports
// a mutex currently held elsewhere.
func (p *ThreadPool) TryLock(i int) error {
	if err := p.checkMutex(i); err != nil {
		return err
	}
	if !p.mutexes[i].TryLock() {
		return fmt.Errorf("%w: index %d", api.ErrLocked, i)
	}
	return nil
}

// Unlock releases the mutex at index i. Unlocking a mutex the caller does
// not hold is undefined, as with any mutex.
func (p *ThreadPool) Unlock(i int) error {
	if err := p.checkMutex(i); err != nil {
		return err
	}
	p.mutexes[i].Unlock()
	return nil
}

// Wait atomically releases mutex m and blocks on condition variable c until
// woken, then re-acquires m. The caller must hold m. Spurious wake-ups are
// possible; callers re-check their predicate in a loop. When Wait returns
// ErrPoolClosed the pool was freed mid-wait and m is not held.
func (p *ThreadPool) Wait(c, m int) error {
	if p == nil {
		return api.ErrInvalidPool
	}
	if c < 0 || c >= len(p.conds) {
		return api.WrapError(api.ErrCodeOutOfRange, api.ErrCondIndex).
			WithContext("index", c).WithContext("condvars", len(p.conds))
	}
	if m < 0 || m >= len(p.mutexes) {
		return api.WrapError(api.ErrCodeOutOfRange, api.ErrMutexIndex).
			WithContext("index", m).WithContext("mutexes", len(p.mutexes))
	}
	// The freed-pool check lives inside the condvar: it releases m before
	// reporting ErrPoolClosed, so a caller abandoned by Free never leaves
	// the mutex locked behind it.
	return p.conds[c].wait(&p.mutexes[m])
}

// Signal wakes at most one waiter on condition variable c. Holding the
// associated mutex while signaling avoids lost wake-ups; the pool does not
// enforce it.
func (p *ThreadPool) Signal(c int) error {
	if err := p.checkCond(c); err != nil {
		return err
	}
	p.conds[c].signal()
	return nil
}

// Broadcast wakes every current waiter on condition variable c.
func (p *ThreadPool) Broadcast(c int) error {
	if err := p.checkCond(c); err != nil {
		return err
	}
	p.conds[c].broadcast()
	return nil
}

// Join blocks until every started thread has terminated, visiting slots in
// index order. A slot that never started is a distinct accumulated error;
// Join still visits every remaining slot rather than short-circuiting. Join
// may be called at most once per pool, and only by a caller for whom the
// StartAll call has already completed: the pool does not synchronize the
// two, it relies on the caller's program order.
func (p *ThreadPool) Join() error {
	if p == nil {
		return api.ErrInvalidPool
	}
	if atomic.LoadInt32(&p.state) == stateFreed {
		return api.ErrPoolClosed
	}
	if !atomic.CompareAndSwapInt32(&p.joined, 0, 1) {
		return api.ErrAlreadyJoined
	}

	var errs []error
	for _, w := range p.workers {
		if !w.started {
			errs = append(errs, api.WrapError(api.ErrCodeNotStarted, api.ErrNotStarted).
				WithContext("slot", w.id))
			continue
		}
		<-w.done
	}
	return errors.Join(errs...)
}

// Free releases the pool without joining. Threads still executing are
// abandoned: any subsequent pool operation they attempt fails with
// ErrPoolClosed, and threads blocked in Wait are woken with the same error.
// Safe on a nil pool; a second Free is a no-op.
func (p *ThreadPool) Free() {
	if p == nil {
		return
	}
	for {
		state := atomic.LoadInt32(&p.state)
		if state == stateFreed {
			return
		}
		if atomic.CompareAndSwapInt32(&p.state, state, stateFreed) {
			break
		}
	}
	for _, cv := range p.conds {
		cv.shut()
	}
}

// JoinFree joins all started threads, then frees the pool. The pool is
// released even when Join fails; the accumulated join error is returned so
// the failure is not silent.
func (p *ThreadPool) JoinFree() error {
	if p == nil {
		return api.ErrInvalidPool
	}
	err := p.Join()
	p.Free()
	return err
}

// Stats returns basic pool metrics.
func (p *ThreadPool) Stats() map[string]int64 {
	if p == nil {
		return nil
	}
	var waiting int64
	for _, cv := range p.conds {
		waiting += cv.waiting()
	}
	return map[string]int64{
		"threads":  int64(len(p.workers)),
		"mutexes":  int64(len(p.mutexes)),
		"condvars": int64(len(p.conds)),
		"started":  atomic.LoadInt64(&p.started),
		"pinned":   atomic.LoadInt64(&p.pinned),
		"waiting":  waiting,
		"state":    int64(atomic.LoadInt32(&p.state)),
	}
}

// Name returns the label set with WithName.
func (p *ThreadPool) Name() string {
	if p == nil {
		return ""
	}
	return p.cfg.name
}
