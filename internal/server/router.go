package server

import "net/http"

// Handler creates the HTTP handler with routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/v1/events", s.handleListEvents)
	mux.HandleFunc("GET /api/v1/events/{id}", s.handleGetEvent)
	mux.HandleFunc("POST /api/v1/events", s.handleCreateEvent)
	mux.HandleFunc("PUT /api/v1/events/{id}", s.handleUpdateEvent)
	mux.HandleFunc("DELETE /api/v1/events/{id}", s.handleDeleteEvent)

	mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	mux.HandleFunc("GET /api/v1/categories", s.handleListCategories)

	return s.applyMiddleware(mux)
}

// applyMiddleware wraps the mux with the middleware chain, innermost
// first.
func (s *Server) applyMiddleware(h http.Handler) http.Handler {
	h = requestLogger(s.logger)(h)
	h = recoverer(s.logger)(h)
	return h
}
