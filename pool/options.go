// File: pool/options.go
// Package pool defines functional options for ThreadPool construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

// config holds construction-time settings. All fields are immutable after
// New returns.
type config struct {
	name      string
	osThreads bool
	cpus      []int
}

// pinTarget returns the CPU core for slot id, assigned round-robin over the
// configured set.
func (c config) pinTarget(id int) (int, bool) {
	if len(c.cpus) == 0 {
		return 0, false
	}
	return c.cpus[id%len(c.cpus)], true
}

// Option customizes pool construction.
type Option func(*config)

// WithName labels the pool in Stats output.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithOSThreads locks every worker goroutine to a dedicated native thread
// for its whole lifetime.
func WithOSThreads() Option {
	return func(c *config) {
		c.osThreads = true
	}
}

// WithCPUPinning pins worker threads to the given CPU cores, round-robin by
// slot index. Pinning implies OS-thread mode. A core index outside the
// machine's range makes the owning slot fail to start.
func WithCPUPinning(cpus []int) Option {
	return func(c *config) {
		c.osThreads = true
		c.cpus = append([]int(nil), cpus...)
	}
}
