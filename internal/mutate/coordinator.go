// Package mutate executes create, update, and delete operations against
// the remote record store's events collection. Mutations are optimistic
// with an explicit rollback contract: on success the caller receives the
// confirmed post-mutation event, on failure the typed error is surfaced
// and the caller's pre-mutation view stays valid.
package mutate

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/eventdeck/eventdeck/pkg/catalog"
	"github.com/eventdeck/eventdeck/pkg/errors"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

// Allocator issues local event identifiers. Implemented by
// internal/idalloc.
type Allocator interface {
	Allocate() (int, error)
}

// Coordinator drives event mutations through the store.
type Coordinator struct {
	store    catalog.Store
	alloc    Allocator
	logger   *zerolog.Logger
	validate *validator.Validate
}

// New creates a coordinator.
func New(store catalog.Store, alloc Allocator, logger *zerolog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		store:    store,
		alloc:    alloc,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create validates the form, allocates a local identifier, and creates
// the event. A failed create abandons the allocated identifier;
// identifiers are never reclaimed. No partial event is left visible on
// failure. The cache picks the new event up on its next refresh;
// callers wanting immediate visibility trigger a refresh themselves.
func (c *Coordinator) Create(ctx context.Context, form Form) (catalog.Event, error) {
	event, err := c.buildEvent(form)
	if err != nil {
		return catalog.Event{}, err
	}

	id, err := c.alloc.Allocate()
	if err != nil {
		return catalog.Event{}, err
	}
	event.ID = strconv.Itoa(id)

	created, err := c.store.CreateEvent(ctx, event)
	if err != nil {
		c.logger.Debug().
			Int("abandoned_id", id).
			Err(err).
			Msg("Create failed, local identifier abandoned")
		return catalog.Event{}, err
	}

	c.logger.Info().Str("event_id", created.ID).Msg("Event created")
	return created, nil
}

// Update fetches the event fresh from the store, merges the partial
// changes over that copy, and replaces it. Merging against the fresh
// copy rather than a locally held one keeps concurrent remote edits
// from being clobbered. On failure the caller's held copy remains the
// valid view.
func (c *Coordinator) Update(ctx context.Context, id string, changes Changes) (catalog.Event, error) {
	current, err := c.store.GetEvent(ctx, id)
	if err != nil {
		return catalog.Event{}, err
	}

	merged := current
	if err := changes.apply(&merged); err != nil {
		return catalog.Event{}, err
	}
	if merged.EndTime.Time.Before(merged.StartTime.Time) {
		return catalog.Event{}, errors.NewValidationError("endTime", merged.EndTime, "must not precede start time")
	}

	updated, err := c.store.ReplaceEvent(ctx, id, merged)
	if err != nil {
		c.logger.Warn().Str("event_id", id).Err(err).Msg("Update failed, prior view retained")
		return catalog.Event{}, err
	}

	c.logger.Info().Str("event_id", id).Msg("Event updated")
	return updated, nil
}

// Delete removes the event from the store. The user-facing confirmation
// gate is enforced exactly once at the presentation boundary, not here.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	if err := c.store.DeleteEvent(ctx, id); err != nil {
		c.logger.Warn().Str("event_id", id).Err(err).Msg("Delete failed, event retained")
		return err
	}
	c.logger.Info().Str("event_id", id).Msg("Event deleted")
	return nil
}

// buildEvent validates the form and converts it into an event value
// without an identifier.
func (c *Coordinator) buildEvent(form Form) (catalog.Event, error) {
	if err := c.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return catalog.Event{}, errors.NewValidationError(fe.Field(), fe.Value(), "failed "+fe.Tag()+" rule")
		}
		return catalog.Event{}, errors.WrapValidation("", err)
	}

	// The "select" placeholder means no category was chosen; it maps
	// to identifier 0 and is rejected here, never stored.
	name := catalog.CategoryName(form.Category)
	if !catalog.KnownCategory(name) {
		return catalog.Event{}, errors.NewValidationError("category", form.Category, "no category chosen")
	}

	start, err := parseInstant("startTime", form.StartTime)
	if err != nil {
		return catalog.Event{}, err
	}
	end, err := parseInstant("endTime", form.EndTime)
	if err != nil {
		return catalog.Event{}, err
	}
	if end.Time.Before(start.Time) {
		return catalog.Event{}, errors.NewValidationError("endTime", form.EndTime, "must not precede start time")
	}

	creator, err := coerceID("createdBy", form.CreatedBy)
	if err != nil {
		return catalog.Event{}, err
	}

	return catalog.Event{
		CreatedBy:   creator,
		Title:       form.Title,
		Description: form.Description,
		Image:       form.ImageURL,
		CategoryIDs: []int{catalog.CategoryID(name)},
		Location:    form.Location,
		StartTime:   start,
		EndTime:     end,
	}, nil
}
