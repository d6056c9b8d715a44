package vector

// EventKind identifies what happened to a vector's storage.
type EventKind int

const (
	EventGrow EventKind = iota + 1
	EventShrink
	EventGrowFailed
	EventShrinkFailed
	EventRelease
)

func (k EventKind) String() string {
	switch k {
	case EventGrow:
		return "grow"
	case EventShrink:
		return "shrink"
	case EventGrowFailed:
		return "grow_failed"
	case EventShrinkFailed:
		return "shrink_failed"
	case EventRelease:
		return "release"
	}
	return "unknown"
}

// Event describes one storage change. For failed events NewCap is the
// capacity that was requested and Err the allocator's error.
type Event struct {
	Kind   EventKind
	Len    int
	OldCap int
	NewCap int
	Pinned bool
	Err    error
}

// Observer receives storage events synchronously on the goroutine that
// mutates the vector.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type nopObserver struct{}

func (nopObserver) Observe(Event) {}
