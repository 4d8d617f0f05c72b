// Package resource implements a memory budget shared by allocation capabilities.
//
// A Controller tracks the bytes held by every block handed out through a
// budgeted capability (see alloc.Budgeted) and optionally enforces a hard
// limit. Acquisition never blocks: a request that would exceed the limit
// fails immediately with ErrMemoryLimitExceeded and the caller decides what
// to do next.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 20, // 1MB
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(4096)
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use, so one Controller may
// govern many containers.
//
// # Nil Controller
//
// A nil *Controller admits every block and reports zero usage, so budgets
// stay optional for capabilities that accept one.
package resource
