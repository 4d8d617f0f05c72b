package alloc

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/hupe1980/vector/internal/conv"
	"github.com/hupe1980/vector/resource"
)

const (
	// DefaultArenaChunkSlots is the default number of slots per chunk.
	DefaultArenaChunkSlots = 4096
	// DefaultArenaMaxChunks limits the number of chunks an arena may hold.
	DefaultArenaMaxChunks = 65536
)

// ErrArenaExhausted is returned when an arena already holds its maximum
// number of chunks.
var ErrArenaExhausted = errors.New("arena: max chunks exceeded")

// ArenaStats tracks arena usage.
//
// Note on semantics:
//   - SlotsReserved: slots held in chunks
//   - SlotsUsed: slots handed out and not reclaimed
//   - SlotsWasted: chunk tails skipped because a request did not fit
//   - Reclaimed: deallocations of the most recent block, whose slots were
//     handed out again
type ArenaStats struct {
	ChunksAllocated uint64 // Historical: total chunks ever created
	ActiveChunks    uint64
	SlotsReserved   uint64
	SlotsUsed       uint64
	SlotsWasted     uint64
	TotalAllocs     uint64 // Historical
	Reclaimed       uint64 // Historical
}

type arenaConfig struct {
	chunkSlots int
	maxChunks  int
	rc         *resource.Controller
}

// ArenaOption configures an Arena.
type ArenaOption func(*arenaConfig)

// WithChunkSlots sets the number of slots per chunk. Requests larger than a
// chunk get a chunk of their own.
func WithChunkSlots(n int) ArenaOption {
	return func(c *arenaConfig) {
		c.chunkSlots = n
	}
}

// WithMaxChunks limits the number of chunks.
func WithMaxChunks(n int) ArenaOption {
	return func(c *arenaConfig) {
		c.maxChunks = n
	}
}

// WithArenaController charges every chunk against rc. Chunks are released on
// Reset.
func WithArenaController(rc *resource.Controller) ArenaOption {
	return func(c *arenaConfig) {
		c.rc = rc
	}
}

// Arena carves blocks out of large chunks and gives memory back only on
// Reset. Deallocating the most recently carved block makes its slots
// available again; any other deallocation only drops the block's referents.
//
// Arena is safe for concurrent use. Two arenas are the same capability only
// if they are the same *Arena.
type Arena[T any] struct {
	cfg arenaConfig

	mu      sync.Mutex
	chunks  [][]T
	current []T
	offset  int
	charged int64
	stats   ArenaStats
}

// NewArena creates an empty arena. No chunk is allocated until the first
// request.
func NewArena[T any](opts ...ArenaOption) *Arena[T] {
	cfg := arenaConfig{
		chunkSlots: DefaultArenaChunkSlots,
		maxChunks:  DefaultArenaMaxChunks,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.chunkSlots <= 0 {
		cfg.chunkSlots = DefaultArenaChunkSlots
	}
	if cfg.maxChunks <= 0 {
		cfg.maxChunks = DefaultArenaMaxChunks
	}
	return &Arena[T]{cfg: cfg}
}

// Allocate implements Allocator.
func (a *Arena[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative slot count %d", ErrAllocationFailure, n)
	}
	if n == 0 {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if n > a.cfg.chunkSlots {
		chunk, err := a.newChunkLocked(n)
		if err != nil {
			return nil, err
		}
		a.stats.TotalAllocs++
		a.stats.SlotsUsed += uint64(n) //nolint:gosec // n > 0
		return chunk[:n:n], nil
	}

	if a.current == nil || a.offset+n > len(a.current) {
		chunk, err := a.newChunkLocked(a.cfg.chunkSlots)
		if err != nil {
			return nil, err
		}
		if a.current != nil {
			a.stats.SlotsWasted += uint64(len(a.current) - a.offset) //nolint:gosec // offset <= len
		}
		a.current = chunk
		a.offset = 0
	}

	block := a.current[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	a.stats.TotalAllocs++
	a.stats.SlotsUsed += uint64(n) //nolint:gosec // n > 0
	return block, nil
}

func (a *Arena[T]) newChunkLocked(slots int) ([]T, error) {
	if len(a.chunks) >= a.cfg.maxChunks {
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailure, ErrArenaExhausted)
	}
	var zero T
	bytes, err := conv.BlockBytes(slots, unsafe.Sizeof(zero))
	if err != nil {
		return nil, fmt.Errorf("%w: %d slots: %w", ErrAllocationFailure, slots, err)
	}
	if err := a.cfg.rc.AcquireMemory(bytes); err != nil {
		return nil, fmt.Errorf("%w: chunk of %d bytes: %w", ErrAllocationFailure, bytes, err)
	}
	chunk := make([]T, slots)
	a.chunks = append(a.chunks, chunk)
	a.charged += bytes
	a.stats.ChunksAllocated++
	a.stats.ActiveChunks++
	a.stats.SlotsReserved += uint64(slots) //nolint:gosec // slots > 0
	return chunk, nil
}

// Deallocate implements Allocator.
func (a *Arena[T]) Deallocate(block []T) {
	if len(block) == 0 {
		return
	}
	clear(block)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.SlotsUsed -= uint64(len(block))
	n := len(block)
	if a.offset >= n && unsafe.SliceData(block) == &a.current[a.offset-n] {
		a.offset -= n
		a.stats.Reclaimed++
	}
}

// Construct implements Allocator.
func (a *Arena[T]) Construct(slot *T, ctor Constructor[T]) error {
	return Heap[T]{}.Construct(slot, ctor)
}

// Destroy implements Allocator.
func (a *Arena[T]) Destroy(slot *T) {
	destroyElement(slot)
}

// Stats returns a snapshot of the arena's usage.
func (a *Arena[T]) Stats() ArenaStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Reset drops every chunk and returns their charge to the controller.
//
// IMPORTANT: every block handed out before Reset becomes invalid; callers
// must have released all vectors using the arena.
func (a *Arena[T]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cfg.rc.ReleaseMemory(a.charged)
	a.charged = 0
	a.chunks = nil
	a.current = nil
	a.offset = 0

	// Historical counts are kept.
	a.stats.ActiveChunks = 0
	a.stats.SlotsReserved = 0
	a.stats.SlotsUsed = 0
	a.stats.SlotsWasted = 0
}

func (a *Arena[T]) String() string {
	s := a.Stats()
	return fmt.Sprintf("Arena{chunks: %d, reserved: %d, used: %d, wasted: %d, allocs: %d}",
		s.ActiveChunks, s.SlotsReserved, s.SlotsUsed, s.SlotsWasted, s.TotalAllocs)
}
