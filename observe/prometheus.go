package observe

import (
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/vector"
)

const namespace = "vector"

// PromObserver exports vector state as Prometheus metrics. The length gauge
// holds the length seen by the last storage event. Grow and shrink events
// fire before the mutation that caused them, so it lags that mutation by one.
type PromObserver struct {
	length   prom.Gauge
	capacity prom.Gauge
	events   *prom.CounterVec
}

var _ vector.Observer = (*PromObserver)(nil)

// NewPromObserver registers the metrics of the vector called name with reg.
// Registering the same name twice on one registry fails.
func NewPromObserver(reg prom.Registerer, name string) (*PromObserver, error) {
	labels := prom.Labels{"vector": name}
	p := &PromObserver{
		length: prom.NewGauge(prom.GaugeOpts{
			Namespace:   namespace,
			Name:        "length",
			Help:        "Number of elements stored.",
			ConstLabels: labels,
		}),
		capacity: prom.NewGauge(prom.GaugeOpts{
			Namespace:   namespace,
			Name:        "capacity",
			Help:        "Number of element slots allocated.",
			ConstLabels: labels,
		}),
		events: prom.NewCounterVec(prom.CounterOpts{
			Namespace:   namespace,
			Name:        "storage_events_total",
			Help:        "Storage events by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
	}
	for _, c := range []prom.Collector{p.length, p.capacity, p.events} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Observe implements vector.Observer.
func (p *PromObserver) Observe(e vector.Event) {
	p.events.WithLabelValues(e.Kind.String()).Inc()
	switch e.Kind {
	case vector.EventGrow, vector.EventShrink:
		p.capacity.Set(float64(e.NewCap))
		p.length.Set(float64(e.Len))
	case vector.EventRelease:
		p.capacity.Set(0)
		p.length.Set(0)
	}
}
