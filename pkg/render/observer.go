package render

import "time"

// Observer receives rendering events. Metrics and tracing middleware
// implement it.
type Observer interface {
	// NodeRendered is called once per top-level content item, with the
	// item's kind as reported by content.KindOf.
	NodeRendered(kind string)

	// PageRendered is called after a page has been written.
	PageRendered(route string, elapsed time.Duration)

	// VerificationFailed is called when a page's content fails link
	// verification.
	VerificationFailed(route string, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) NodeRendered(string)                {}
func (NopObserver) PageRendered(string, time.Duration) {}
func (NopObserver) VerificationFailed(string, error)   {}

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	var list multiObserver
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	switch len(list) {
	case 0:
		return NopObserver{}
	case 1:
		return list[0]
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) NodeRendered(kind string) {
	for _, o := range m {
		o.NodeRendered(kind)
	}
}

func (m multiObserver) PageRendered(route string, elapsed time.Duration) {
	for _, o := range m {
		o.PageRendered(route, elapsed)
	}
}

func (m multiObserver) VerificationFailed(route string, err error) {
	for _, o := range m {
		o.VerificationFailed(route, err)
	}
}
