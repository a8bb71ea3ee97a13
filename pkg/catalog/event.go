// Package catalog defines the core record types for the eventdeck
// system: events, the users and categories they reference, and the
// immutable snapshot the catalog cache publishes. It also defines the
// Store interface through which every remote operation flows.
package catalog

import (
	"github.com/agentstation/utc"
)

// Event is a single event record as held by the remote record store.
// Events are created locally or by the store, mutated only through the
// mutation coordinator, and destroyed only by an explicit delete.
type Event struct {
	ID          string   `json:"id"`
	CreatedBy   int      `json:"createdBy"`   // references a User
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`       // image URL
	CategoryIDs []int    `json:"categoryIds"` // non-empty, ordered
	Location    string   `json:"location"`
	StartTime   utc.Time `json:"startTime"`
	EndTime     utc.Time `json:"endTime"`
}

// HasCategory reports whether the event carries the given category identifier.
func (e Event) HasCategory(id int) bool {
	for _, c := range e.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}
