package vector

import "fmt"

// Config configures a Vector at construction and cannot be changed later.
// The zero value yields a plain value vector on the Go heap with no tracing.
type Config[T any] struct {
	// Copy materializes stored elements. When nil, *T's CopyFrom method is
	// used if it exists, otherwise plain assignment.
	Copy CopyFunc[T]
	// Destroy runs once for every element that leaves the vector. When nil,
	// *T's Destroy method is used if it exists.
	Destroy DestroyFunc[T]
	// Allocator provides storage. Defaults to HeapAllocator.
	Allocator Allocator[T]
	// Observer receives storage events. Defaults to a silent observer.
	Observer Observer
}

// Vector is a resizable array whose capacity follows DefaultPolicy.
// A Vector must not be used from several goroutines at once.
type Vector[T any] struct {
	buf      []T // len(buf) is the capacity
	length   int
	pinned   bool
	released bool

	hooks hooks[T]
	alloc Allocator[T]
	obs   Observer
	stats counters
}

type counters struct {
	grows, shrinks             int
	failedGrows, failedShrinks int
}

// New returns an empty vector with capacity 0.
func New[T any](cfg Config[T]) *Vector[T] {
	v := &Vector[T]{
		hooks: resolveHooks(cfg.Copy, cfg.Destroy),
		alloc: cfg.Allocator,
		obs:   cfg.Observer,
	}
	if v.alloc == nil {
		v.alloc = HeapAllocator[T]{}
	}
	if v.obs == nil {
		v.obs = nopObserver{}
	}
	return v
}

// NewReserved returns an empty vector whose capacity is pinned at capacity:
// it grows when exceeded but is never shrunk automatically.
func NewReserved[T any](capacity int, cfg Config[T]) (*Vector[T], error) {
	if capacity < 0 {
		return nil, &Error{Code: CodeInvalidArgument, Op: "reserve", Err: fmt.Errorf("negative capacity %d", capacity)}
	}
	v := New(cfg)
	v.pinned = true
	if err := v.resize(capacity); err != nil {
		return nil, newError(CodeAllocationFailure, "reserve", err)
	}
	return v, nil
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.length }

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int { return len(v.buf) }

// Pinned reports whether the capacity was explicitly reserved.
func (v *Vector[T]) Pinned() bool { return v.pinned }

// At returns a pointer to element i, or nil when i is outside [0, Len()).
// The pointer is invalidated by the next reallocation.
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.length {
		return nil
	}
	return &v.buf[i]
}

// Get returns a copy of element i and whether i was in range.
func (v *Vector[T]) Get(i int) (T, bool) {
	if p := v.At(i); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// PushBack appends value. On allocation failure the vector is unchanged and
// the error matches ErrAllocation. A copy hook error is returned as is and
// the length is not incremented.
func (v *Vector[T]) PushBack(value T) error {
	v.mustLive()
	if err := v.adjust("push_back", true); err != nil {
		return err
	}
	if err := v.hooks.construct(&v.buf[v.length], &value); err != nil {
		return err
	}
	v.length++
	return nil
}

// Insert places value at pos, shifting [pos, Len()) one slot to the right,
// highest index first. pos must be in [0, Len()].
//
// Insert is not error-safe under copy hook failure: if the hook fails while
// shifting, its error is returned, Len() is unchanged, and the elements from
// pos onward are left in an unspecified state. Callers whose hooks can fail
// should treat the vector as corrupt past pos and Release it.
func (v *Vector[T]) Insert(pos int, value T) error {
	v.mustLive()
	if pos < 0 || pos > v.length {
		return &Error{Code: CodeOutOfRange, Op: "insert", Err: fmt.Errorf("position %d outside [0, %d]", pos, v.length)}
	}
	if err := v.adjust("insert", true); err != nil {
		return err
	}
	if v.hooks.copy == nil {
		copy(v.buf[pos+1:v.length+1], v.buf[pos:v.length])
	} else {
		for i := v.length; i > pos; i-- {
			if err := v.hooks.copy(&v.buf[i], &v.buf[i-1]); err != nil {
				return err
			}
		}
	}
	if err := v.hooks.construct(&v.buf[pos], &value); err != nil {
		return err
	}
	v.length++
	return nil
}

// PopBack destroys the last element. It reports false on an empty vector.
func (v *Vector[T]) PopBack() bool {
	v.mustLive()
	if v.length == 0 {
		return false
	}
	v.adjust("pop_back", false)
	v.length--
	v.hooks.release(&v.buf[v.length])
	return true
}

// RemoveAt destroys the element at pos and moves the tail left.
func (v *Vector[T]) RemoveAt(pos int) error {
	v.mustLive()
	if pos < 0 || pos >= v.length {
		return &Error{Code: CodeOutOfRange, Op: "remove", Err: fmt.Errorf("position %d outside [0, %d)", pos, v.length)}
	}
	v.adjust("remove", false)
	v.hooks.release(&v.buf[pos])
	copy(v.buf[pos:], v.buf[pos+1:v.length])
	v.length--
	var zero T
	v.buf[v.length] = zero
	return nil
}

// Clear destroys every element, then lets the policy shrink the storage.
func (v *Vector[T]) Clear() {
	v.mustLive()
	for i := 0; i < v.length; i++ {
		v.hooks.release(&v.buf[i])
	}
	v.length = 0
	v.adjust("clear", false)
}

// Reserve pins the capacity and grows it to at least n slots.
func (v *Vector[T]) Reserve(n int) error {
	v.mustLive()
	if n < 0 {
		return &Error{Code: CodeInvalidArgument, Op: "reserve", Err: fmt.Errorf("negative capacity %d", n)}
	}
	if old := len(v.buf); n > old {
		if err := v.resize(n); err != nil {
			v.stats.failedGrows++
			v.emit(EventGrowFailed, old, n, err)
			return newError(CodeAllocationFailure, "reserve", err)
		}
		v.stats.grows++
		v.emit(EventGrow, old, n, nil)
	}
	v.pinned = true
	return nil
}

// Release destroys every element and returns the storage to the allocator.
// The vector must not be mutated afterwards; releasing twice is a no-op.
func (v *Vector[T]) Release() {
	if v.released {
		return
	}
	n := v.length
	for i := 0; i < n; i++ {
		v.hooks.release(&v.buf[i])
	}
	old := len(v.buf)
	if v.buf != nil {
		v.alloc.Free(v.buf)
	}
	v.buf = nil
	v.length = 0
	v.released = true
	v.obs.Observe(Event{Kind: EventRelease, Len: n, OldCap: old, Pinned: v.pinned})
}

// adjust runs the capacity policy against the current length and capacity.
// Only a failed growth is reported; a failed shrink keeps the old storage.
func (v *Vector[T]) adjust(op string, allowGrow bool) error {
	old := len(v.buf)
	action, next := DefaultPolicy.Decide(v.length, old, v.pinned, allowGrow)
	switch action {
	case Grow:
		if err := v.resize(next); err != nil {
			v.stats.failedGrows++
			v.emit(EventGrowFailed, old, next, err)
			return newError(CodeAllocationFailure, op, err)
		}
		v.stats.grows++
		v.emit(EventGrow, old, next, nil)
	case Shrink:
		if err := v.resize(next); err != nil {
			v.stats.failedShrinks++
			v.emit(EventShrinkFailed, old, next, err)
			return nil
		}
		v.stats.shrinks++
		v.emit(EventShrink, old, next, nil)
	}
	return nil
}

// resize moves the live elements into fresh storage of exactly n slots.
// On error nothing is modified.
func (v *Vector[T]) resize(n int) error {
	buf, err := v.alloc.Alloc(n)
	if err != nil {
		return err
	}
	if len(buf) < n {
		v.alloc.Free(buf)
		return fmt.Errorf("allocator returned %d of %d elements", len(buf), n)
	}
	copy(buf, v.buf[:v.length])
	if v.buf != nil {
		v.alloc.Free(v.buf)
	}
	v.buf = buf[:n:n]
	return nil
}

func (v *Vector[T]) emit(kind EventKind, oldCap, newCap int, err error) {
	v.obs.Observe(Event{
		Kind:   kind,
		Len:    v.length,
		OldCap: oldCap,
		NewCap: newCap,
		Pinned: v.pinned,
		Err:    err,
	})
}

func (v *Vector[T]) mustLive() {
	if v.released {
		panic("vector: use after Release()")
	}
}
