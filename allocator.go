package vector

import (
	"fmt"
	"reflect"

	"github.com/pavanmanishd/vector/arena"
)

// Allocator provides the backing storage for a Vector. Alloc returns a
// zeroed slice of exactly n elements or an error; the vector reports any
// error as an allocation failure and leaves its state untouched.
type Allocator[T any] interface {
	Alloc(n int) ([]T, error)
	Free(buf []T)
}

// HeapAllocator allocates from the Go heap.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative size %d", n)
	}
	return make([]T, n), nil
}

func (HeapAllocator[T]) Free([]T) {}

// LimitedAllocator refuses requests for more than Max elements.
type LimitedAllocator[T any] struct {
	Inner Allocator[T]
	Max   int
}

// NewLimitedAllocator bounds inner (HeapAllocator when nil) to max elements.
func NewLimitedAllocator[T any](inner Allocator[T], max int) *LimitedAllocator[T] {
	if inner == nil {
		inner = HeapAllocator[T]{}
	}
	return &LimitedAllocator[T]{Inner: inner, Max: max}
}

func (l *LimitedAllocator[T]) Alloc(n int) ([]T, error) {
	if n > l.Max {
		return nil, fmt.Errorf("request for %d elements exceeds limit %d", n, l.Max)
	}
	return l.Inner.Alloc(n)
}

func (l *LimitedAllocator[T]) Free(buf []T) {
	l.Inner.Free(buf)
}

// ArenaAllocator carves storage out of an arena. Freed storage is only
// reclaimed when the arena is Reset or Released, so every reallocation of a
// growing vector leaves its old region behind.
type ArenaAllocator[T any] struct {
	src arena.Source
}

// NewArenaAllocator returns an allocator drawing from src. Element types
// holding pointers are rejected because arena memory is invisible to the GC.
func NewArenaAllocator[T any](src arena.Source) (*ArenaAllocator[T], error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil arena source", ErrInvalid)
	}
	if !arena.PointerFree[T]() {
		return nil, fmt.Errorf("%w: element type %v contains pointers", ErrInvalid, reflect.TypeFor[T]())
	}
	return &ArenaAllocator[T]{src: src}, nil
}

func (a *ArenaAllocator[T]) Alloc(n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	return arena.MakeSlice[T](a.src, n)
}

func (a *ArenaAllocator[T]) Free([]T) {}
