// File: jobqueue/jobqueue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded FIFO job queue coordinated entirely by a pool's indexed
// primitives: mutex 0 guards the buffer, condvar 0 signals not-empty,
// condvar 1 signals not-full. The classic monitor pattern, expressed
// through the prethread operation set.

package jobqueue

import (
	"fmt"

	"github.com/eapache/queue"

	"github.com/momentics/prethread/api"
)

// Primitive slots the queue claims on its pool.
const (
	mutexSlot    = 0
	condNotEmpty = 0
	condNotFull  = 1
)

// Errors reported by queue operations.
var (
	ErrQueueClosed  = fmt.Errorf("job queue is closed")
	ErrNoCapacity   = fmt.Errorf("queue capacity must be at least one")
	ErrPoolTooSmall = fmt.Errorf("pool needs at least one mutex and two condition variables")
)

// Job is a unit of work submitted by producers and run by pool threads.
type Job func()

// JobQueue is a bounded producer/consumer queue. Producers call Put, pool
// threads started with Runner call Take. All state is protected by the
// pool's mutex 0; the queue itself holds no locks of its own.
type JobQueue struct {
	pool     api.Pool
	buf      *queue.Queue
	capacity int
	closed   bool
}

// New builds a queue on top of p. The pool must expose at least one mutex
// and two condition variables; those slots belong to the queue and must not
// be used for anything else.
func New(p api.Pool, capacity int) (*JobQueue, error) {
	if p == nil || p.Size() == 0 {
		return nil, api.ErrInvalidPool
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoCapacity, capacity)
	}
	if p.MutexSize() < 1 || p.CondSize() < 2 {
		return nil, fmt.Errorf("%w: have %d/%d", ErrPoolTooSmall, p.MutexSize(), p.CondSize())
	}
	return &JobQueue{
		pool:     p,
		buf:      queue.New(),
		capacity: capacity,
	}, nil
}

// Put appends a job, blocking while the queue is full. Returns
// ErrQueueClosed once Close has run, or the pool's error if the pool was
// freed underneath the queue.
func (q *JobQueue) Put(j Job) error {
	if err := q.pool.Lock(mutexSlot); err != nil {
		return err
	}
	for q.buf.Length() >= q.capacity && !q.closed {
		if err := q.pool.Wait(condNotFull, mutexSlot); err != nil {
			// Pool freed mid-wait; the mutex is no longer held.
			return err
		}
	}
	if q.closed {
		q.pool.Unlock(mutexSlot)
		return ErrQueueClosed
	}
	q.buf.Add(j)
	q.pool.Signal(condNotEmpty)
	return q.pool.Unlock(mutexSlot)
}

// Take removes the oldest job, blocking while the queue is empty. Once the
// queue is closed, Take drains remaining jobs and then reports
// ErrQueueClosed.
func (q *JobQueue) Take() (Job, error) {
	if err := q.pool.Lock(mutexSlot); err != nil {
		return nil, err
	}
	for q.buf.Length() == 0 && !q.closed {
		if err := q.pool.Wait(condNotEmpty, mutexSlot); err != nil {
			return nil, err
		}
	}
	if q.buf.Length() == 0 {
		q.pool.Unlock(mutexSlot)
		return nil, ErrQueueClosed
	}
	j := q.buf.Remove().(Job)
	q.pool.Signal(condNotFull)
	if err := q.pool.Unlock(mutexSlot); err != nil {
		return nil, err
	}
	return j, nil
}

// Close stops the queue. Blocked producers and consumers are released;
// consumers still drain jobs accepted before the close.
func (q *JobQueue) Close() error {
	if err := q.pool.Lock(mutexSlot); err != nil {
		return err
	}
	q.closed = true
	q.pool.Broadcast(condNotEmpty)
	q.pool.Broadcast(condNotFull)
	return q.pool.Unlock(mutexSlot)
}

// Len reports the number of queued jobs, 0 when the pool is unusable.
func (q *JobQueue) Len() int {
	if err := q.pool.Lock(mutexSlot); err != nil {
		return 0
	}
	n := q.buf.Length()
	q.pool.Unlock(mutexSlot)
	return n
}

// Runner is the WorkFunc for queue consumers: pass the JobQueue itself as
// the shared argument to StartAll. Each pool thread loops taking jobs until
// the queue closes.
func Runner(arg any) {
	q, ok := arg.(*JobQueue)
	if !ok {
		return
	}
	for {
		j, err := q.Take()
		if err != nil {
			return
		}
		j()
	}
}
