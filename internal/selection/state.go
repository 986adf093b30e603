// Package selection owns the checked/unchecked state of every catalog entry.
package selection

import (
	"errors"
	"fmt"

	"linite/internal/models"
)

// ErrUnknownApp is returned when toggling an ID the catalog does not contain
var ErrUnknownApp = errors.New("unknown app")

// Change describes one mutation of the selection
type Change struct {
	Added   []string // IDs that became checked
	Removed []string // IDs that became unchecked
	Total   int      // Checked count after the change
}

// Listener receives change notifications
type Listener func(Change)

// State is the selection controller. Views read from it and subscribe to it;
// they never hold selection flags themselves.
type State struct {
	catalog   *models.Catalog
	checked   map[string]bool
	listeners map[int]Listener
	order     []int
	nextID    int
}

// New creates an empty selection over catalog
func New(catalog *models.Catalog) *State {
	return &State{
		catalog:   catalog,
		checked:   make(map[string]bool),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for change notifications. Listeners run synchronously
// in subscription order. The returned func removes the listener.
func (s *State) Subscribe(fn Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)

	return func() {
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Toggle sets the checked flag of appID. Setting the current value again does nothing.
func (s *State) Toggle(appID string, checked bool) error {
	if s.catalog.Lookup(appID) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownApp, appID)
	}

	if s.checked[appID] == checked {
		return nil
	}

	change := Change{}
	if checked {
		s.checked[appID] = true
		change.Added = []string{appID}
	} else {
		delete(s.checked, appID)
		change.Removed = []string{appID}
	}
	change.Total = len(s.checked)

	s.publish(change)
	return nil
}

// Flip inverts the checked flag of appID
func (s *State) Flip(appID string) error {
	return s.Toggle(appID, !s.checked[appID])
}

// ToggleAll checks or unchecks every entry in the catalog
func (s *State) ToggleAll(checked bool) {
	change := Change{}
	for _, app := range s.catalog.Apps() {
		if s.checked[app.ID] == checked {
			continue
		}
		if checked {
			s.checked[app.ID] = true
			change.Added = append(change.Added, app.ID)
		} else {
			delete(s.checked, app.ID)
			change.Removed = append(change.Removed, app.ID)
		}
	}

	if len(change.Added) == 0 && len(change.Removed) == 0 {
		return
	}
	change.Total = len(s.checked)
	s.publish(change)
}

// IsChecked reports whether appID is checked
func (s *State) IsChecked(appID string) bool {
	return s.checked[appID]
}

// Count returns the number of checked entries
func (s *State) Count() int {
	return len(s.checked)
}

// CurrentSelections returns the checked entries in catalog order
func (s *State) CurrentSelections() []*models.AppEntry {
	var selected []*models.AppEntry
	for _, app := range s.catalog.Apps() {
		if s.checked[app.ID] {
			selected = append(selected, app)
		}
	}
	return selected
}

// Snapshot copies the checked IDs
func (s *State) Snapshot() map[string]bool {
	snap := make(map[string]bool, len(s.checked))
	for id := range s.checked {
		snap[id] = true
	}
	return snap
}

// Restore replaces the selection with snap, ignoring IDs the catalog does not know
func (s *State) Restore(snap map[string]bool) {
	change := Change{}
	for _, app := range s.catalog.Apps() {
		want := snap[app.ID]
		if s.checked[app.ID] == want {
			continue
		}
		if want {
			s.checked[app.ID] = true
			change.Added = append(change.Added, app.ID)
		} else {
			delete(s.checked, app.ID)
			change.Removed = append(change.Removed, app.ID)
		}
	}

	if len(change.Added) == 0 && len(change.Removed) == 0 {
		return
	}
	change.Total = len(s.checked)
	s.publish(change)
}

func (s *State) publish(change Change) {
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(change)
		}
	}
}
