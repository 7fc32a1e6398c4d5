// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package pool implements the prethread ThreadPool: a fixed-capacity bundle
// of pre-allocated worker threads, mutexes, and condition variables created
// together and destroyed together. Mutexes and condition variables are
// addressed only by integer index; every access is bounds-checked.
//
// The pool runs the same work function with the same argument on every
// thread. It is a passive shared resource: all coordination correctness
// (avoiding deadlock, avoiding lost wake-ups) stays with the caller, exactly
// as with raw mutex/condvar usage. Lock, Wait, and Join block without
// timeout; the library provides no way to interrupt a blocked operation.
package pool
