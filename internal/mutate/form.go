package mutate

import (
	"strconv"
	"time"

	"github.com/agentstation/utc"

	"github.com/eventdeck/eventdeck/pkg/catalog"
	"github.com/eventdeck/eventdeck/pkg/errors"
)

// Form is the raw create input supplied by the presentation boundary.
// All fields arrive as strings; validation and coercion happen before
// any network call.
type Form struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image" validate:"omitempty,url"`
	Category    string `json:"category" validate:"required"`
	Location    string `json:"location" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	CreatedBy   string `json:"createdBy" validate:"required"`
}

// Changes is a partial update: nil fields are left unchanged. Creator
// and category identifiers are coerced to integers during the merge.
type Changes struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Location    *string  `json:"location,omitempty"`
	StartTime   *string  `json:"startTime,omitempty"`
	EndTime     *string  `json:"endTime,omitempty"`
	CreatedBy   *string  `json:"createdBy,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
}

// apply merges the changes over event in place.
func (ch Changes) apply(event *catalog.Event) error {
	if ch.Title != nil {
		event.Title = *ch.Title
	}
	if ch.Description != nil {
		event.Description = *ch.Description
	}
	if ch.Image != nil {
		event.Image = *ch.Image
	}
	if ch.Location != nil {
		event.Location = *ch.Location
	}
	if ch.StartTime != nil {
		t, err := parseInstant("startTime", *ch.StartTime)
		if err != nil {
			return err
		}
		event.StartTime = t
	}
	if ch.EndTime != nil {
		t, err := parseInstant("endTime", *ch.EndTime)
		if err != nil {
			return err
		}
		event.EndTime = t
	}
	if ch.CreatedBy != nil {
		id, err := coerceID("createdBy", *ch.CreatedBy)
		if err != nil {
			return err
		}
		event.CreatedBy = id
	}
	if ch.CategoryIDs != nil {
		ids := make([]int, 0, len(ch.CategoryIDs))
		for _, raw := range ch.CategoryIDs {
			id, err := coerceID("categoryIds", raw)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return errors.NewValidationError("categoryIds", ch.CategoryIDs, "must not be empty")
		}
		event.CategoryIDs = ids
	}
	return nil
}

// instantLayouts are the accepted timestamp shapes: full RFC 3339
// instants and the datetime-local form browsers submit.
var instantLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// parseInstant parses a timestamp string into a UTC instant.
func parseInstant(field, value string) (utc.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return utc.Time{Time: t.UTC()}, nil
		}
	}
	return utc.Time{}, errors.NewValidationError(field, value, "not a valid timestamp")
}

// coerceID converts a string identifier to its integer form.
func coerceID(field, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.NewValidationError(field, value, "not a numeric identifier")
	}
	return id, nil
}
