// Package observe provides vector.Observer implementations.
//
// # Logging
//
// ZapObserver writes one structured entry per storage event. Grow and
// shrink events are logged at debug level, refused growths at warn and
// refused shrinks at info, since the vector keeps working in that case.
//
// # Metrics
//
// PromObserver exports length and capacity gauges and an event counter
// labelled by kind, all carrying a constant "vector" label:
//
//	reg := prometheus.NewRegistry()
//	obs, err := observe.NewPromObserver(reg, "cities")
//	v := vector.New(vector.Config[City]{Observer: obs})
//
// # Recording
//
// Recorder keeps the most recent events in memory, which is useful in tests
// and for dumping the recent history of a vector after a failure.
//
// Multi fans one event out to several observers.
package observe
