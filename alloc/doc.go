// Package alloc defines the allocation capability consumed by vector.Vector.
//
// An Allocator hands out raw blocks sized in element units and constructs or
// destroys single elements inside those blocks. The container never touches
// memory it did not receive from its Allocator, and it never frees a block
// through anything but Deallocate.
//
// # Slots
//
// A block returned by Allocate has len(block) == n. Every slot starts out
// uninitialized: it holds the zero value of T and no element lives there yet.
// Construct turns an uninitialized slot into a live element, Destroy turns a
// live element back into an uninitialized slot.
//
// Moving an element is a plain copy of its bits followed by zeroing the source
// slot. Moves cannot fail, so a capability is only told about them when it
// implements Relocator.
//
// # Capabilities
//
//   - Heap: the default, backed by the Go heap.
//   - Aligned: heap blocks starting on a 64-byte boundary.
//   - Arena: carves blocks out of large chunks, freed together on Reset.
//   - Budgeted: charges every block against a resource.Controller.
//   - Tracking: records live slots per block and reports leaks, double
//     destroys and constructions over live elements.
//
// # Element hooks
//
// Element types may implement Cloner to customize copy construction and
// Destroyer to release resources when an element is destroyed. Destroy runs
// the hook for every live element, zero values included. An element whose
// ownership moved into another block ends its lifetime through Forget, which
// skips the hook.
package alloc
