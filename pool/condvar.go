// File: pool/condvar.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Channel-based condition variable. Unlike sync.Cond, a waiter may pair the
// condition variable with any pool mutex per call, which the indexed Wait
// operation requires. A closed channel survives the wake-up race: a signal
// that lands between registration and the blocking receive is never lost.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/prethread/api"
)

type condvar struct {
	mu      sync.Mutex
	waiters []chan struct{}
	closed  bool
	nwait   int64 // atomic: waiters currently registered
}

func newCondvar() *condvar {
	return &condvar{}
}

// wait registers the caller, releases m, blocks until signal, broadcast, or
// close, then re-acquires m. The caller must hold m. Registration happens
// before m is released, so a wake-up issued by a thread that acquires m
// afterwards cannot be missed.
//
// On close the mutex is NOT re-acquired: the pool is being freed and another
// woken waiter may never release it again.
func (cv *condvar) wait(m *sync.Mutex) error {
	cv.mu.Lock()
	if cv.closed {
		cv.mu.Unlock()
		m.Unlock()
		return api.ErrPoolClosed
	}
	ch := make(chan struct{})
	cv.waiters = append(cv.waiters, ch)
	atomic.AddInt64(&cv.nwait, 1)
	cv.mu.Unlock()

	m.Unlock()
	<-ch
	atomic.AddInt64(&cv.nwait, -1)

	cv.mu.Lock()
	closed := cv.closed
	cv.mu.Unlock()
	if closed {
		return api.ErrPoolClosed
	}

	m.Lock()
	return nil
}

// signal wakes the oldest waiter, if any.
func (cv *condvar) signal() {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	if len(cv.waiters) == 0 {
		return
	}
	close(cv.waiters[0])
	cv.waiters = cv.waiters[1:]
}

// broadcast wakes every current waiter.
func (cv *condvar) broadcast() {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	for _, ch := range cv.waiters {
		close(ch)
	}
	cv.waiters = nil
}

// shut marks the condvar dead and releases all waiters with ErrPoolClosed.
func (cv *condvar) shut() {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	if cv.closed {
		return
	}
	cv.closed = true
	for _, ch := range cv.waiters {
		close(ch)
	}
	cv.waiters = nil
}

func (cv *condvar) waiting() int64 {
	return atomic.LoadInt64(&cv.nwait)
}
