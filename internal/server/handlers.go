package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/eventdeck/eventdeck/internal/filter"
	"github.com/eventdeck/eventdeck/internal/mutate"
	"github.com/eventdeck/eventdeck/pkg/catalog"
	"github.com/eventdeck/eventdeck/pkg/errors"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

// eventView is an event decorated with resolved display names for the
// presentation boundary.
type eventView struct {
	catalog.Event
	CategoryNames []string `json:"categoryNames"`
	CreatedByName string   `json:"createdByName"`
}

func newEventView(snap *catalog.Snapshot, event catalog.Event) eventView {
	return eventView{
		Event:         event,
		CategoryNames: snap.CategoryNames(event.CategoryIDs),
		CreatedByName: snap.UserName(event.CreatedBy),
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Kind           string `json:"kind"`
		Message        string `json:"message"`
		UpstreamStatus int    `json:"upstreamStatus,omitempty"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"cache":  s.catalog.State().String(),
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logging.WithCollection(r.Context(), "events"))

	snap, ok := s.catalog.Snapshot()
	if !ok {
		s.writeError(w, r, errors.ErrCacheEmpty)
		return
	}

	q := r.URL.Query()
	f := filter.Filter{Query: q.Get("q"), Category: q.Get("category")}

	key := listCacheKey(f)
	if cached, found := s.respCache.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	views := make([]eventView, 0)
	for _, event := range f.Apply(snap) {
		views = append(views, newEventView(snap, event))
	}
	s.respCache.SetDefault(key, views)
	writeJSON(w, http.StatusOK, views)
}

// listCacheKey builds the response-cache key with the criteria escaped,
// so a search query containing literal separator text cannot collide
// with a differently filtered request.
func listCacheKey(f filter.Filter) string {
	return "events?" + url.Values{"q": {f.Query}, "category": {f.Category}}.Encode()
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logging.WithCollection(r.Context(), "events"))

	snap, ok := s.catalog.Snapshot()
	if !ok {
		s.writeError(w, r, errors.ErrCacheEmpty)
		return
	}

	id := r.PathValue("id")
	event, found := snap.Event(id)
	if !found {
		s.writeError(w, r, errors.NewNotFoundError("events", id))
		return
	}
	writeJSON(w, http.StatusOK, newEventView(snap, event))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logging.WithOperation(r.Context(), "create"))

	var form mutate.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.writeError(w, r, errors.WrapValidation("body", err))
		return
	}

	created, err := s.coord.Create(r.Context(), form)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logging.WithOperation(r.Context(), "update"))

	var changes mutate.Changes
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		s.writeError(w, r, errors.WrapValidation("body", err))
		return
	}

	updated, err := s.coord.Update(r.Context(), r.PathValue("id"), changes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logging.WithOperation(r.Context(), "delete"))

	// The confirmation gate: a delete without confirm=true is rejected
	// before it reaches the coordinator.
	if r.URL.Query().Get("confirm") != "true" {
		s.writeError(w, r, errors.NewValidationError("confirm", "", "delete requires confirm=true"))
		return
	}

	if err := s.coord.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logging.WithCollection(r.Context(), "users"))

	snap, ok := s.catalog.Snapshot()
	if !ok {
		s.writeError(w, r, errors.ErrCacheEmpty)
		return
	}
	writeJSON(w, http.StatusOK, snap.Users)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(logging.WithCollection(r.Context(), "categories"))

	snap, ok := s.catalog.Snapshot()
	if !ok {
		s.writeError(w, r, errors.ErrCacheEmpty)
		return
	}
	writeJSON(w, http.StatusOK, snap.Categories)
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, unknown records 404, remote rejections 502 with the
// upstream status attached, transport failures and an empty cache 503.
// The failure is logged through the request-scoped logger.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var body errorBody
	body.Error.Message = err.Error()

	status := http.StatusInternalServerError
	switch {
	case errors.IsValidationError(err):
		status = http.StatusBadRequest
		body.Error.Kind = "validation"
	case errors.IsNotFound(err):
		status = http.StatusNotFound
		body.Error.Kind = "not_found"
	case errors.IsTransportError(err):
		status = http.StatusServiceUnavailable
		body.Error.Kind = "network"
	case errors.Is(err, errors.ErrCacheEmpty):
		status = http.StatusServiceUnavailable
		body.Error.Kind = "cache_empty"
	default:
		if upstream, ok := errors.IsRemoteError(err); ok {
			status = http.StatusBadGateway
			body.Error.Kind = "remote"
			body.Error.UpstreamStatus = upstream
		} else {
			body.Error.Kind = "internal"
		}
	}

	logging.Ctx(r.Context()).Debug().
		Err(err).
		Int("status", status).
		Str("kind", body.Error.Kind).
		Msg("Request failed")

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
