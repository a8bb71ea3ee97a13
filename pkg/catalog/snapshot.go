package catalog

import "strconv"

// UnknownLabel is the display name resolution falls back to when an
// identifier has no match in the cached collections.
const UnknownLabel = "Unknown"

// Snapshot is an immutable triple of the three cached collections,
// replaced wholesale by the catalog cache on every successful refresh.
// A published snapshot is never mutated, so concurrent readers need no
// locking.
type Snapshot struct {
	Events     []Event
	Users      []User
	Categories []Category
}

// CategoryName resolves a single category identifier to its display
// name via the cached category collection.
func (s *Snapshot) CategoryName(id int) string {
	key := strconv.Itoa(id)
	for _, c := range s.Categories {
		if c.ID == key {
			return c.Name
		}
	}
	return UnknownLabel
}

// CategoryNames resolves each of the given category identifiers,
// preserving order. Identifiers with no match resolve to UnknownLabel
// rather than failing.
func (s *Snapshot) CategoryNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, s.CategoryName(id))
	}
	return names
}

// UserName resolves a creator identifier to the user's display name,
// with the same UnknownLabel fallback.
func (s *Snapshot) UserName(id int) string {
	key := strconv.Itoa(id)
	for _, u := range s.Users {
		if u.ID == key {
			return u.Name
		}
	}
	return UnknownLabel
}

// Event returns the cached event with the given identifier.
func (s *Snapshot) Event(id string) (Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}
