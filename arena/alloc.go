package arena

import (
	"fmt"
	"reflect"
	"unsafe"
)

// MakeSlice returns a zeroed slice of n elements of T carved from src.
// The GC does not scan arena memory, so T must not contain pointers;
// use PointerFree to check. Returns nil, nil if n <= 0.
func MakeSlice[T any](src Source, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if n > maxInt/elemSize {
		return nil, fmt.Errorf("%w: %d elements of %d bytes overflow", ErrExhausted, n, elemSize)
	}
	b, err := src.AllocBytes(elemSize * n)
	if err != nil {
		return nil, err
	}
	// reused chunks carry stale bytes
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// PointerFree reports whether values of T hold no pointers and are
// therefore safe to keep in arena memory.
func PointerFree[T any]() bool {
	return !hasPointers(reflect.TypeFor[T]())
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

const maxInt = int(^uint(0) >> 1)
