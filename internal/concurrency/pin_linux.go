//go:build linux
// +build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation of thread pinning via sched_setaffinity. Pure Go,
// no cgo or libnuma requirement.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCurrentThread locks the calling goroutine to its native thread and
// binds that thread to the given CPU core.
func PinCurrentThread(cpuID int) error {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	// tid 0 targets the calling thread.
	return unix.SchedSetaffinity(0, &set)
}
