package observe

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/pavanmanishd/vector"
)

// DefaultRecorderLimit is used by NewRecorder for limits <= 0.
const DefaultRecorderLimit = 256

// Recorder keeps the most recent events in a bounded ring. It is safe to
// read from another goroutine while the owning goroutine mutates the vector.
type Recorder struct {
	mu    sync.Mutex
	q     *queue.Queue
	limit int
	total int
}

var _ vector.Observer = (*Recorder)(nil)

// NewRecorder returns a Recorder holding at most limit events.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultRecorderLimit
	}
	return &Recorder{q: queue.New(), limit: limit}
}

// Observe implements vector.Observer, dropping the oldest event when full.
func (r *Recorder) Observe(e vector.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.q.Add(e)
	if r.q.Length() > r.limit {
		r.q.Remove()
	}
	r.total++
}

// Events returns the retained events, oldest first.
func (r *Recorder) Events() []vector.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]vector.Event, r.q.Length())
	for i := range out {
		out[i] = r.q.Get(i).(vector.Event)
	}
	return out
}

// Last returns the most recent event.
func (r *Recorder) Last() (vector.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.q.Length() == 0 {
		return vector.Event{}, false
	}
	return r.q.Get(r.q.Length() - 1).(vector.Event), true
}

// Total returns the number of events observed, including dropped ones.
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Reset drops all retained events and zeroes the total.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.q = queue.New()
	r.total = 0
}
