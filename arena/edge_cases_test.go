package arena_test

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"github.com/pavanmanishd/vector/arena"
)

// TestEdgeCases covers chunk sizing and oversized requests
func TestEdgeCases(t *testing.T) {
	t.Run("ZeroAndNegativeChunkSizes", func(t *testing.T) {
		testCases := []struct {
			size     int
			expected int
		}{
			{0, arena.DefaultChunkSize},
			{-1, arena.DefaultChunkSize},
			{-1000, arena.DefaultChunkSize},
			{1, 1},
		}

		for _, tc := range testCases {
			a := arena.NewArena(tc.size)
			if a.ChunkSize() != tc.expected {
				t.Errorf("NewArena(%d): got chunkSize %d, want %d", tc.size, a.ChunkSize(), tc.expected)
			}
			a.Release()
		}
	})

	t.Run("LargeAllocations", func(t *testing.T) {
		a := arena.NewArena(1024)
		defer a.Release()

		large, err := a.AllocBytes(2048)
		if err != nil || len(large) != 2048 {
			t.Errorf("Large allocation failed: got %d, %v, want 2048", len(large), err)
		}

		veryLarge, err := a.AllocBytes(1024 * 1024)
		if err != nil || len(veryLarge) != 1024*1024 {
			t.Errorf("Very large allocation failed: got %d, %v", len(veryLarge), err)
		}
	})

	t.Run("SliceOverflow", func(t *testing.T) {
		a := arena.NewArena(1024)
		defer a.Release()

		if _, err := arena.MakeSlice[int64](a, int(^uint(0)>>1)/4); err == nil {
			t.Error("MakeSlice with overflowing size should fail")
		}
	})
}

// TestMemoryCorruption checks that slices carved from many chunks stay intact
func TestMemoryCorruption(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	slices := make([][]byte, 100)
	for i := range slices {
		s, err := arena.MakeSlice[byte](a, 64)
		if err != nil {
			t.Fatalf("MakeSlice failed: %v", err)
		}
		for j := range s {
			s[j] = byte(i)
		}
		slices[i] = s
	}

	for i, s := range slices {
		for j, b := range s {
			if b != byte(i) {
				t.Errorf("Memory corruption detected at slice[%d][%d]: got %d, want %d", i, j, b, byte(i))
			}
		}
	}
}

// TestBoundaryConditions tests exact-fit and alignment boundaries
func TestBoundaryConditions(t *testing.T) {
	t.Run("ExactChunkSizeAllocation", func(t *testing.T) {
		chunkSize := 1024
		a := arena.NewArena(chunkSize)
		defer a.Release()

		buf, _ := a.AllocBytes(chunkSize)
		if len(buf) != chunkSize {
			t.Errorf("Exact chunk size allocation failed: got %d, want %d", len(buf), chunkSize)
		}

		// This should trigger a new chunk
		buf2, _ := a.AllocBytes(1)
		if len(buf2) != 1 {
			t.Errorf("Small allocation after full chunk failed: got %d, want 1", len(buf2))
		}

		if a.NumChunks() < 2 {
			t.Errorf("Expected at least 2 chunks, got %d", a.NumChunks())
		}
	})

	t.Run("AlignmentBoundaries", func(t *testing.T) {
		a := arena.NewArena(1024)
		defer a.Release()

		sizes := []int{1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17}
		for _, size := range sizes {
			buf, _ := a.AllocBytes(size)
			if len(buf) != size {
				t.Errorf("Allocation of size %d failed: got %d", size, len(buf))
			}

			addr := uintptr(unsafe.Pointer(&buf[0]))
			align := unsafe.Sizeof(uintptr(0))
			if addr%align != 0 {
				t.Errorf("Buffer of size %d not properly aligned: %x", size, addr)
			}
		}
	})
}

// TestConcurrencyStress hammers a SafeArena from many goroutines
func TestConcurrencyStress(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping stress test in short mode")
	}

	s := arena.NewSafeArena(64*1024, 0)
	defer s.Release()

	const (
		numWorkers      = 20
		numOpsPerWorker = 1000
	)

	var wg sync.WaitGroup
	errs := make(chan error, numWorkers)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for j := 0; j < numOpsPerWorker; j++ {
				switch j % 4 {
				case 0:
					buf, err := s.AllocBytes(64)
					if err != nil || len(buf) != 64 {
						errs <- fmt.Errorf("worker %d: AllocBytes failed: %v", workerID, err)
						return
					}
				case 1:
					slice, err := arena.MakeSlice[int32](s, 10)
					if err != nil || len(slice) != 10 {
						errs <- fmt.Errorf("worker %d: MakeSlice failed: %v", workerID, err)
						return
					}
				case 2:
					s.EnsureCapacity(128)
				case 3:
					if m := s.Metrics(); m.SizeInUse > m.Capacity {
						errs <- fmt.Errorf("worker %d: in use %d exceeds capacity %d", workerID, m.SizeInUse, m.Capacity)
						return
					}
				}

				if j%50 == 0 {
					runtime.Gosched()
				}
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
