package arena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena. Several vectors,
// each owned by its own goroutine, may draw storage from one SafeArena.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified chunk size
// and byte limit (0 for unbounded).
func NewSafeArena(chunkSize, limit int) *SafeArena {
	return &SafeArena{a: NewArenaLimit(chunkSize, limit)}
}

// AllocBytes thread-safely allocates n bytes.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// EnsureCapacity thread-safely reserves room for an n byte allocation.
func (s *SafeArena) EnsureCapacity(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.EnsureCapacity(n)
}

// Reset thread-safely rewinds the arena for reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all chunks.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
