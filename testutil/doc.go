// Package testutil provides testing utilities for containers and capabilities.
//
// This package is intended for use in tests and benchmarks only.
//
// # Fault Injection
//
//	fa := testutil.NewFaultyAllocator[int](nil)
//	fa.FailAllocateAfter(2)  // third Allocate fails
//	fa.FailConstructAfter(5) // sixth Construct fails
//
// # Live Object Accounting
//
//	var c testutil.Counter
//	v := c.New(1)            // c.Live() == 1
//	w, _ := v.Clone()        // c.Live() == 2
//	w.Destroy()              // c.Live() == 1
//
// # Random Input
//
//	rng := testutil.NewRNG(seed)
//	vals := rng.Ints(100, 1000)
package testutil
