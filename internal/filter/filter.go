// Package filter derives display subsets of a catalog snapshot. The
// derivation is pure: the snapshot is never mutated and the cache's
// relative event ordering is preserved.
package filter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/eventdeck/eventdeck/pkg/catalog"
)

// Filter contains the criteria supplied by the presentation boundary.
type Filter struct {
	// Query is matched case-insensitively as a substring of an event's
	// title or description. Empty retains every event.
	Query string

	// Category retains only events with at least one category
	// identifier resolving to this display name. Empty disables the
	// filter. Both criteria compose by intersection.
	Category string
}

// Apply returns the events of the snapshot matching the filter, in the
// snapshot's order.
func (f Filter) Apply(snap *catalog.Snapshot) []catalog.Event {
	if snap == nil {
		return nil
	}

	matcher := search.New(language.Und, search.IgnoreCase)

	results := make([]catalog.Event, 0, len(snap.Events))
	for _, event := range snap.Events {
		if f.matches(matcher, snap, event) {
			results = append(results, event)
		}
	}
	return results
}

// matches checks an event against both criteria.
func (f Filter) matches(m *search.Matcher, snap *catalog.Snapshot, event catalog.Event) bool {
	return f.matchesQuery(m, event) && f.matchesCategory(snap, event)
}

// matchesQuery checks the free-text criterion against title and
// description.
func (f Filter) matchesQuery(m *search.Matcher, event catalog.Event) bool {
	if f.Query == "" {
		return true
	}
	return containsFold(m, event.Title, f.Query) || containsFold(m, event.Description, f.Query)
}

// matchesCategory checks the category criterion against the event's
// resolved category display names. Unresolvable identifiers resolve to
// the Unknown label and so never match a real category name.
func (f Filter) matchesCategory(snap *catalog.Snapshot, event catalog.Event) bool {
	if f.Category == "" {
		return true
	}
	for _, name := range snap.CategoryNames(event.CategoryIDs) {
		if name == f.Category {
			return true
		}
	}
	return false
}

// containsFold reports whether needle is a case-folded substring of
// haystack.
func containsFold(m *search.Matcher, haystack, needle string) bool {
	start, _ := m.IndexString(haystack, needle)
	return start >= 0
}
