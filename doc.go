// Package vector implements a generic resizable array with a geometric
// capacity policy that both grows and shrinks its storage.
//
// # Overview
//
// A Vector[T] owns one contiguous []T obtained from an Allocator. Before
// every mutation the capacity policy looks at the current length and
// capacity:
//
//   - full (Len == Cap): grow to ceil(A*Cap + B)
//   - over-provisioned (Len < floor((Cap - B)/A)): shrink to that target,
//     never below Len
//   - otherwise: keep
//
// A = GrowthFactor (1.3) and B = MinIncrement (1) are fixed at build time.
// Starting from an empty vector the capacity runs 0, 1, 3, 5, 8, 12, ...
//
// # Basic Usage
//
//	v := vector.New(vector.Config[int]{})
//	defer v.Release()
//
//	if err := v.PushBack(42); err != nil {
//		// errors.Is(err, vector.ErrAllocation)
//	}
//	_ = v.Insert(0, 7)
//	p := v.At(1) // *int, nil when out of range
//
// # Element Lifecycle
//
// Elements that own resources register a copy hook and a destroy hook, or
// implement Copier and Destroyer on their pointer type:
//
//	v := vector.New(vector.Config[City]{
//		Copy:    func(dst, src *City) error { ... },
//		Destroy: func(c *City) { ... },
//	})
//
// The copy hook materializes every stored element, including the ones
// shifted by Insert. Its error is returned to the caller unchanged; use
// UserError and CodeOf for numeric codes at or above FirstUserCode. The
// destroy hook runs exactly once for each element that leaves the vector
// through PopBack, RemoveAt, Clear or Release, never for unused slots.
//
// # Reserved Capacity
//
// NewReserved and Reserve pin the capacity. A pinned vector still grows
// when full but is never shrunk automatically.
//
// # Failures
//
// A refused growth leaves the vector exactly as it was and returns an error
// matching ErrAllocation. A refused shrink is not an error; the larger
// storage is kept. Insert is not error-safe when the copy hook fails while
// shifting elements: see Insert.
//
// # Observability
//
// The package never writes output itself. Pass an Observer in Config to
// receive grow and shrink events; package observe provides zap, Prometheus
// and in-memory implementations. Metrics returns counters for the vector.
//
// # Thread Safety
//
// A Vector is single-owner. Callers sharing one must serialize access.
package vector
