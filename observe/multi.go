package observe

import "github.com/pavanmanishd/vector"

type multi []vector.Observer

// Multi returns an observer forwarding each event to every non-nil
// observer in order.
func Multi(observers ...vector.Observer) vector.Observer {
	m := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multi) Observe(e vector.Event) {
	for _, o := range m {
		o.Observe(e)
	}
}
