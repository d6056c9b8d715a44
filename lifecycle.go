package vector

// CopyFunc materializes *dst from *src. A non-nil error aborts the
// operation and is returned to the caller unchanged.
type CopyFunc[T any] func(dst, src *T) error

// DestroyFunc releases whatever an element owns when it leaves the vector.
type DestroyFunc[T any] func(*T)

// Copier is implemented by element types that know how to copy themselves.
// It is used when Config.Copy is nil.
type Copier[T any] interface {
	CopyFrom(src *T) error
}

// Destroyer is implemented by element types that need cleanup.
// It is used when Config.Destroy is nil.
type Destroyer interface {
	Destroy()
}

// hooks resolves the configured callbacks, falling back to methods on *T.
type hooks[T any] struct {
	copy    CopyFunc[T]
	destroy DestroyFunc[T]
}

func resolveHooks[T any](c CopyFunc[T], d DestroyFunc[T]) hooks[T] {
	h := hooks[T]{copy: c, destroy: d}
	var probe *T
	if h.copy == nil {
		if _, ok := any(probe).(Copier[T]); ok {
			h.copy = func(dst, src *T) error {
				return any(dst).(Copier[T]).CopyFrom(src)
			}
		}
	}
	if h.destroy == nil {
		if _, ok := any(probe).(Destroyer); ok {
			h.destroy = func(p *T) {
				any(p).(Destroyer).Destroy()
			}
		}
	}
	return h
}

// construct writes src into dst with the copy hook, or by assignment.
func (h hooks[T]) construct(dst, src *T) error {
	if h.copy == nil {
		*dst = *src
		return nil
	}
	return h.copy(dst, src)
}

// release runs the destroy hook, if any, and zeroes the slot.
func (h hooks[T]) release(p *T) {
	if h.destroy != nil {
		h.destroy(p)
	}
	var zero T
	*p = zero
}
