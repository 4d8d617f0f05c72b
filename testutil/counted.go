package testutil

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrCloneFailed is returned by Counted.Clone once the counter's clone budget
// is exhausted.
var ErrCloneFailed = errors.New("testutil: clone failed")

// Counter keeps track of the Counted values it created that are still alive.
type Counter struct {
	live        atomic.Int64
	created     atomic.Int64
	destroyed   atomic.Int64
	cloneBudget atomic.Int64 // 0: unlimited, otherwise clones left + 1
}

// New returns a live value carrying id.
func (c *Counter) New(id int) Counted {
	c.live.Add(1)
	c.created.Add(1)
	return Counted{ID: id, counter: c}
}

// FailCloneAfter makes Clone fail once n more clones succeeded.
// A negative n disarms the fault.
func (c *Counter) FailCloneAfter(n int) {
	if n < 0 {
		n = -1
	}
	c.cloneBudget.Store(int64(n) + 1) // zero value means unlimited
}

// Live returns created minus destroyed.
func (c *Counter) Live() int {
	return int(c.live.Load())
}

// Created returns the number of values created through New or Clone.
func (c *Counter) Created() int {
	return int(c.created.Load())
}

// Destroyed returns the number of Destroy calls.
func (c *Counter) Destroyed() int {
	return int(c.destroyed.Load())
}

// Counted is an element type with observable copies and destruction.
// It implements alloc.Cloner and alloc.Destroyer.
type Counted struct {
	ID      int
	counter *Counter
}

// Clone implements alloc.Cloner.
func (v Counted) Clone() (Counted, error) {
	if v.counter == nil {
		return v, nil
	}
	c := v.counter
	for {
		budget := c.cloneBudget.Load()
		if budget == 0 {
			break
		}
		if budget == 1 {
			return Counted{}, fmt.Errorf("%w: id %d", ErrCloneFailed, v.ID)
		}
		if c.cloneBudget.CompareAndSwap(budget, budget-1) {
			break
		}
	}
	return c.New(v.ID), nil
}

// Destroy implements alloc.Destroyer.
func (v Counted) Destroy() {
	if v.counter == nil {
		return
	}
	v.counter.live.Add(-1)
	v.counter.destroyed.Add(1)
}

func (v Counted) String() string {
	return fmt.Sprintf("#%d", v.ID)
}
