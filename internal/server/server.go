// Package server provides the HTTP facade presentation collaborators
// consume: the filtered event list, single-event reads, and the three
// mutations, each returning typed JSON errors. It never exposes the
// remote record store directly.
package server

import (
	"context"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/eventdeck/eventdeck/internal/cache"
	"github.com/eventdeck/eventdeck/internal/mutate"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

// Config holds the HTTP facade settings.
type Config struct {
	ListenAddr string
	// CacheTTL bounds how long a cached list response may be served.
	CacheTTL time.Duration
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	catalog   *cache.Cache
	coord     *mutate.Coordinator
	respCache *gocache.Cache
	logger    *zerolog.Logger
	config    Config
	httpSrv   *http.Server
}

// New creates a server instance.
func New(catalogCache *cache.Cache, coord *mutate.Coordinator, cfg Config, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 30 * time.Second
	}

	s := &Server{
		catalog:   catalogCache,
		coord:     coord,
		respCache: gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:    logger,
		config:    cfg,
	}
	s.httpSrv = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start begins serving. It blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.config.ListenAddr).Msg("HTTP facade listening")
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// invalidate flushes the response cache and refreshes the catalog so a
// successful mutation becomes visible without waiting for the next
// scheduled poll.
func (s *Server) invalidate() {
	s.respCache.Flush()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.catalog.Refresh(ctx)
	}()
}
