// Package storage implements the block management behind vector.Vector.
//
// A Buffer owns one block obtained from an alloc.Allocator and keeps two
// marks inside it:
//
//	block[0]              block[live]            block[len(block)]
//	|---- live elements ----|---- uninitialized ----|
//
// buffer.go grows, shrinks and releases the block; lifecycle.go constructs,
// destroys and shifts elements and is the only code that moves the live mark.
//
// Growth never partially applies: the new block is obtained before anything
// is touched and element moves cannot fail. Constructions that fail part way
// destroy the siblings built by the same call before the error is returned.
package storage
