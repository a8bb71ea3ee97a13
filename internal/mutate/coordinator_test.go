package mutate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdeck/eventdeck/internal/idalloc"
	"github.com/eventdeck/eventdeck/internal/remote"
	"github.com/eventdeck/eventdeck/pkg/catalog"
	"github.com/eventdeck/eventdeck/pkg/errors"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

func validForm() Form {
	return Form{
		Title:       "Chess Night",
		Description: "quiet",
		Category:    "games",
		Location:    "Community Hall",
		StartTime:   "2026-09-01T18:00:00Z",
		EndTime:     "2026-09-01T21:00:00Z",
		CreatedBy:   "1",
	}
}

func newCoordinator(t *testing.T, baseURL string) *Coordinator {
	t.Helper()
	alloc := idalloc.New(filepath.Join(t.TempDir(), "state.yaml"))
	return New(remote.New(baseURL), alloc, &logging.Nop)
}

func TestCreateValidation(t *testing.T) {
	// Validation failures must be caught before any network call.
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	}))
	defer srv.Close()

	coord := newCoordinator(t, srv.URL)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Form)
	}{
		{"missing title", func(f *Form) { f.Title = "" }},
		{"missing location", func(f *Form) { f.Location = "" }},
		{"no category chosen", func(f *Form) { f.Category = "select" }},
		{"unknown category", func(f *Form) { f.Category = "knitting" }},
		{"missing start time", func(f *Form) { f.StartTime = "" }},
		{"malformed end time", func(f *Form) { f.EndTime = "tomorrow evening" }},
		{"end precedes start", func(f *Form) { f.EndTime = "2026-09-01T17:00:00Z" }},
		{"missing creator", func(f *Form) { f.CreatedBy = "" }},
		{"non-numeric creator", func(f *Form) { f.CreatedBy = "maarten" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			_, err := coord.Create(ctx, form)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "want validation error, got %v", err)
		})
	}
}

func TestCreateAllocatesAndPosts(t *testing.T) {
	var posted catalog.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/events", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(posted)
	}))
	defer srv.Close()

	coord := newCoordinator(t, srv.URL)
	created, err := coord.Create(context.Background(), validForm())
	require.NoError(t, err)

	// First allocation after the default last value of 5.
	assert.Equal(t, "6", created.ID)
	assert.Equal(t, "6", posted.ID)
	assert.Equal(t, []int{2}, posted.CategoryIDs)
	assert.Equal(t, 1, posted.CreatedBy)
	assert.Equal(t, "Chess Night", posted.Title)
}

func TestFailedCreateAbandonsIdentifier(t *testing.T) {
	var ids []string
	fail := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event catalog.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		ids = append(ids, event.ID)
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(event)
	}))
	defer srv.Close()

	coord := newCoordinator(t, srv.URL)
	ctx := context.Background()

	_, err := coord.Create(ctx, validForm())
	require.Error(t, err)
	status, ok := errors.IsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, 500, status)

	// The identifier consumed by the failed create is not reused.
	fail = false
	created, err := coord.Create(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID)
	assert.Equal(t, []string{"6", "7"}, ids)
}

func TestUpdateMergesOverFreshCopy(t *testing.T) {
	// The stored event carries a title edited remotely after the caller
	// last saw it; the merge must preserve that edit.
	stored := catalog.Event{
		ID:          "6",
		CreatedBy:   1,
		Title:       "Chess Night (rescheduled)",
		Description: "quiet",
		CategoryIDs: []int{2},
		Location:    "Old Park",
	}

	var replaced catalog.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "/events/6", r.URL.Path)
			_ = json.NewEncoder(w).Encode(stored)
		case http.MethodPut:
			require.Equal(t, "/events/6", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&replaced))
			_ = json.NewEncoder(w).Encode(replaced)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	coord := newCoordinator(t, srv.URL)
	location := "New Park"
	creator := "2"
	updated, err := coord.Update(context.Background(), "6", Changes{
		Location:    &location,
		CreatedBy:   &creator,
		CategoryIDs: []string{"2", "3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "New Park", updated.Location)
	assert.Equal(t, 2, updated.CreatedBy)
	assert.Equal(t, []int{2, 3}, updated.CategoryIDs)
	assert.Equal(t, "Chess Night (rescheduled)", updated.Title, "remote edit must survive the merge")
	assert.Equal(t, replaced, updated)
}

func TestUpdateFailureRetainsPriorValues(t *testing.T) {
	stored := catalog.Event{ID: "6", Title: "Chess Night", Location: "Old Park", CategoryIDs: []int{2}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(stored)
		case http.MethodPut:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	coord := newCoordinator(t, srv.URL)
	location := "New Park"
	_, err := coord.Update(context.Background(), "6", Changes{Location: &location})
	require.Error(t, err)

	status, ok := errors.IsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, 500, status)
	// The store was never replaced; the caller's view of the prior
	// location stays valid.
	assert.Equal(t, "Old Park", stored.Location)
}

func TestUpdateMissingEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "{}", http.StatusNotFound)
	}))
	defer srv.Close()

	coord := newCoordinator(t, srv.URL)
	title := "x"
	_, err := coord.Update(context.Background(), "99", Changes{Title: &title})
	assert.True(t, errors.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/events/6", r.URL.Path)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		coord := newCoordinator(t, srv.URL)
		require.NoError(t, coord.Delete(context.Background(), "6"))
	})

	t.Run("failure surfaces error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		coord := newCoordinator(t, srv.URL)
		err := coord.Delete(context.Background(), "6")
		require.Error(t, err)
		assert.True(t, errors.IsStoreUnavailable(err))
	})
}

func TestParseInstantAcceptsDatetimeLocal(t *testing.T) {
	ts, err := parseInstant("startTime", "2026-09-01T18:00")
	require.NoError(t, err)
	assert.Equal(t, 18, ts.Time.Hour())
}
