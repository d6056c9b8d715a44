package vector

// Utilization returns Len()/Cap(), or 0 for a vector without storage.
func (v *Vector[T]) Utilization() float64 {
	if len(v.buf) == 0 {
		return 0
	}
	return float64(v.length) / float64(len(v.buf))
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() Metrics {
	return Metrics{
		Len:           v.length,
		Cap:           len(v.buf),
		Pinned:        v.pinned,
		Utilization:   v.Utilization(),
		Grows:         v.stats.grows,
		Shrinks:       v.stats.shrinks,
		FailedGrows:   v.stats.failedGrows,
		FailedShrinks: v.stats.failedShrinks,
	}
}

// Metrics contains statistical information about a vector.
type Metrics struct {
	Len           int     // Elements stored
	Cap           int     // Slots allocated
	Pinned        bool    // Capacity explicitly reserved
	Utilization   float64 // Len/Cap (0.0-1.0)
	Grows         int     // Successful growths, including Reserve
	Shrinks       int     // Successful shrinks
	FailedGrows   int     // Growths refused by the allocator
	FailedShrinks int     // Shrinks refused by the allocator (not errors)
}
