package servicefilter

import (
	"golang.org/x/exp/slices"
)

// ServiceWindow is the fixed set of service identifiers worth keeping for a
// feed. It is built once and never modified.
type ServiceWindow struct {
	ids map[string]struct{}
}

func NewServiceWindow(ids ...string) *ServiceWindow {
	window := &ServiceWindow{
		ids: make(map[string]struct{}, len(ids)),
	}

	for _, id := range ids {
		window.ids[id] = struct{}{}
	}

	return window
}

func (w *ServiceWindow) Contains(serviceID string) bool {
	_, exists := w.ids[serviceID]
	return exists
}

func (w *ServiceWindow) Len() int {
	return len(w.ids)
}

func (w *ServiceWindow) IDs() []string {
	ids := make([]string, 0, len(w.ids))
	for id := range w.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}
