// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// OS-thread helpers for prethread: locking worker goroutines to native
// threads and pinning them to CPU cores, with per-platform build tags.
package concurrency
