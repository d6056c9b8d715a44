// Package arena implements a chunked bump allocator for Go.
//
// # Overview
//
// An arena hands out regions of large chunks on demand and reclaims all of
// them at once. Within this module it backs vector.ArenaAllocator: a vector
// that grows or shrinks leaves its old region behind, and the whole arena is
// rewound with Reset when the batch of vectors is done.
//
// # Basic Usage
//
//	a := arena.NewArenaLimit(0, 1<<20) // default chunks, 1 MiB cap
//	defer a.Release()
//
//	buf, err := a.AllocBytes(1024)
//	xs, err := arena.MakeSlice[int64](a, 100)
//
//	a.Reset() // every region above is now invalid
//
// # Limits
//
// With a non-zero limit the arena refuses to grow past that many bytes and
// AllocBytes returns ErrExhausted. Vectors report this as an allocation
// failure and stay unchanged.
//
// # Pointers
//
// Arena memory is not scanned by the garbage collector. MakeSlice must only
// be used for element types without pointers; PointerFree reports whether a
// type qualifies.
//
// # Thread Safety
//
// Arena is not thread-safe. SafeArena wraps it with a mutex and implements
// the same Source interface.
package arena
