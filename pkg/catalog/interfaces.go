package catalog

import "context"

// Lister lists whole collections from the remote record store.
type Lister interface {
	ListEvents(ctx context.Context) ([]Event, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// Getter fetches single records by identifier. A missing identifier
// yields an error satisfying errors.IsNotFound.
type Getter interface {
	GetEvent(ctx context.Context, id string) (Event, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetCategory(ctx context.Context, id string) (Category, error)
}

// EventWriter mutates the events collection. Users and categories are
// read-only; only events can be written.
type EventWriter interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	ReplaceEvent(ctx context.Context, id string, event Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// Store is the complete remote record store surface. Implementations
// perform no retries and surface errors unchanged; retry policy belongs
// to callers.
type Store interface {
	Lister
	Getter
	EventWriter
}
