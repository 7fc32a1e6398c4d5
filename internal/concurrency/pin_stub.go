//go:build !linux
// +build !linux

// File: internal/concurrency/pin_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback pinning for platforms without sched_setaffinity. The OS-thread
// lock still applies; core placement is left to the scheduler.

package concurrency

import "runtime"

// PinCurrentThread locks the calling goroutine to its native thread. CPU
// placement is not constrained on this platform.
func PinCurrentThread(cpuID int) error {
	runtime.LockOSThread()
	return nil
}
