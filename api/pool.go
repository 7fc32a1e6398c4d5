// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Pool contract: a fixed-capacity bundle of pre-started worker threads with
// index-addressed mutexes and condition variables.

package api

// WorkFunc is the single unit of work every pool thread runs. All threads
// receive the same argument; per-thread differentiation is the caller's
// responsibility via shared state inside arg.
type WorkFunc func(arg any)

// Pool abstracts a pre-allocated thread pool whose synchronization primitives
// are addressed by integer index rather than by handle.
type Pool interface {
	// StartAll starts one thread per slot, each running fn(arg), in index
	// order. It stops at the first slot that fails to start and returns the
	// number of threads successfully started.
	StartAll(fn WorkFunc, arg any) int

	// Size returns the number of thread slots.
	Size() int

	// MutexSize returns the number of pool-owned mutexes.
	MutexSize() int

	// CondSize returns the number of pool-owned condition variables.
	CondSize() int

	// Lock blocks until the mutex at index i is acquired.
	Lock(i int) error

	// TryLock acquires the mutex at index i without blocking, returning
	// ErrLocked when it is held elsewhere.
	TryLock(i int) error

	// Unlock releases the mutex at index i. Calling Unlock on a mutex the
	// caller does not hold is undefined.
	Unlock(i int) error

	// Wait atomically releases mutex m and blocks on condition variable c
	// until signaled or broadcast, then re-acquires m before returning.
	// Callers must re-check their predicate in a loop. When Wait returns
	// ErrPoolClosed the mutex is not held.
	Wait(c, m int) error

	// Signal wakes at most one waiter on condition variable c.
	Signal(c int) error

	// Broadcast wakes every current waiter on condition variable c.
	Broadcast(c int) error

	// Join blocks until every started thread has terminated, visiting slots
	// in index order. Failures accumulate; Join never short-circuits.
	Join() error

	// Free releases the pool without joining. Running threads are abandoned;
	// any thread blocked in Wait is woken with ErrPoolClosed.
	Free()

	// JoinFree joins, then frees the pool regardless of the join outcome,
	// returning any accumulated join error.
	JoinFree() error

	// Stats returns basic pool metrics.
	Stats() map[string]int64
}
