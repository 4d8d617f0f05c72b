package resource

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when a block would not fit in the budget.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config describes a block budget.
type Config struct {
	// MemoryLimitBytes caps the bytes held by all blocks charged to the
	// controller. Zero only counts usage.
	MemoryLimitBytes int64
}

// Controller charges block allocations against a shared byte budget.
// A nil *Controller admits everything and counts nothing.
type Controller struct {
	cfg Config

	budget *semaphore.Weighted // nil without a limit
	used   atomic.Int64
	peak   atomic.Int64
}

// NewController returns a controller enforcing cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	if cfg.MemoryLimitBytes > 0 {
		c.budget = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	return c
}

// AcquireMemory charges bytes for a block about to be allocated. It never
// waits: a block that does not fit fails with ErrMemoryLimitExceeded and
// nothing is charged.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.budget != nil && !c.budget.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}
	c.notePeak(c.used.Add(bytes))
	return nil
}

// ReleaseMemory returns the bytes of a deallocated block to the budget.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.budget != nil {
		c.budget.Release(bytes)
	}
	c.used.Add(-bytes)
}

// MemoryUsage returns the bytes currently held by charged blocks.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.used.Load()
}

// PeakMemoryUsage returns the highest MemoryUsage seen so far.
func (c *Controller) PeakMemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.peak.Load()
}

// MemoryLimit returns the byte cap, or 0 when usage is only counted.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

func (c *Controller) notePeak(used int64) {
	for {
		peak := c.peak.Load()
		if used <= peak || c.peak.CompareAndSwap(peak, used) {
			return
		}
	}
}
