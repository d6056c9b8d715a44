// Package arena implements a chunked bump allocator (memory arena).
// Vectors use it as a storage source: every reallocation carves a fresh
// region and the abandoned regions come back on Reset or Release.
package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

var (
	// ErrReleased is returned by allocations on an arena after Release.
	ErrReleased = errors.New("arena: use after Release()")
	// ErrExhausted is returned when an allocation would exceed the byte limit.
	ErrExhausted = errors.New("arena: byte limit exhausted")
)

// Source hands out raw, pointer-aligned byte regions.
// Both *Arena and *SafeArena implement it.
type Source interface {
	AllocBytes(n int) ([]byte, error)
}

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator. Not goroutine-safe.
// Use SafeArena for concurrent access.
type Arena struct {
	chunks    []chunk
	chunkSize int
	limit     int // max bytes across all chunks, 0 means unbounded
	current   *chunk
	released  bool
}

// NewArena creates an unbounded Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	return NewArenaLimit(chunkSize, 0)
}

// NewArenaLimit creates an Arena whose chunks may never total more than
// limit bytes. A limit <= 0 disables the bound. No chunk is allocated
// until the first request.
func NewArenaLimit(chunkSize, limit int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if limit < 0 {
		limit = 0
	}
	return &Arena{chunkSize: chunkSize, limit: limit}
}

// AllocBytes returns n bytes carved from the current chunk, growing the
// arena when the chunk is full. The slice stays valid until Reset or Release.
// Returns nil, nil if n <= 0.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if n <= 0 {
		return nil, nil
	}

	// Fast path: use cached current chunk
	if c := a.current; c != nil {
		off := alignPtr(c.offset)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			c.offset = off + uintptr(n)
			return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n), nil
		}
	}
	return a.allocBytesSlow(n)
}

// allocBytesSlow handles allocation when fast path fails. Chunks after the
// current one survive a Reset and are tried before growing.
func (a *Arena) allocBytesSlow(n int) ([]byte, error) {
	for i := a.currentIndex() + 1; i < len(a.chunks); i++ {
		c := &a.chunks[i]
		if uintptr(n) <= uintptr(len(c.buf)) {
			a.current = c
			c.offset = uintptr(n)
			return c.buf[:n:n], nil
		}
	}

	if err := a.grow(n); err != nil {
		return nil, err
	}
	c := a.current
	c.offset = uintptr(n)
	return c.buf[:n:n], nil
}

// EnsureCapacity makes sure the next allocation of n bytes will not need
// a new chunk beyond the one it reports an error for.
func (a *Arena) EnsureCapacity(n int) error {
	if a.released {
		return ErrReleased
	}
	if c := a.current; c != nil && alignPtr(c.offset)+uintptr(n) <= uintptr(len(c.buf)) {
		return nil
	}
	return a.grow(n)
}

// Reset rewinds every chunk but keeps them for reuse.
// Everything previously returned by AllocBytes becomes invalid.
func (a *Arena) Reset() {
	if a.released {
		panic(ErrReleased)
	}
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	if len(a.chunks) > 0 {
		a.current = &a.chunks[0]
	}
}

// Release drops all chunks and makes the arena unusable.
// Releasing twice is safe.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = nil
	a.released = true
}

// grow appends a new chunk of at least min bytes, honoring the limit.
func (a *Arena) grow(min int) error {
	size := a.chunkSize
	if min > size {
		size = min
	}
	if a.limit > 0 {
		if used := a.Capacity(); used+size > a.limit {
			if used+min > a.limit {
				return fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrExhausted, min, used, a.limit)
			}
			size = a.limit - used
		}
	}
	// append may move the chunk headers; current always points at the new one
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.current = &a.chunks[len(a.chunks)-1]
	return nil
}

// currentIndex returns the index of the cached chunk, or -1.
func (a *Arena) currentIndex() int {
	for i := range a.chunks {
		if &a.chunks[i] == a.current {
			return i
		}
	}
	return -1
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const align = unsafe.Sizeof(uintptr(0))
	mask := align - 1
	return (off + mask) & ^mask
}
