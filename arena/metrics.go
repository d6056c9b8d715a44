package arena

// SizeInUse returns the bytes handed out since the last Reset,
// including alignment padding.
func (a *Arena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently held.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total size in bytes of all chunks.
func (a *Arena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Limit returns the byte limit, 0 when unbounded.
func (a *Arena) Limit() int {
	return a.limit
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Limit:       a.limit,
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.chunkSize,
		Utilization: a.Utilization(),
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	SizeInUse   int     // Bytes currently allocated
	Capacity    int     // Total capacity in bytes
	Limit       int     // Byte limit, 0 when unbounded
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
