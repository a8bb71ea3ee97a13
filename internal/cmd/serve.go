package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventdeck/eventdeck/internal/cache"
	"github.com/eventdeck/eventdeck/internal/idalloc"
	"github.com/eventdeck/eventdeck/internal/mutate"
	"github.com/eventdeck/eventdeck/internal/server"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

// shutdownTimeout bounds how long a stopping server waits for in-flight
// requests.
const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog poller and the HTTP facade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			logger := logging.Default()
			store := storeClient(cfg)

			catalogCache := cache.New(store, logger)
			poller := cache.NewPoller(catalogCache, cfg.RefreshInterval, logger)
			if err := poller.Start(cmd.Context()); err != nil {
				return err
			}
			defer poller.Stop()

			coord := mutate.New(store, idalloc.New(cfg.StatePath), logger)
			srv := server.New(catalogCache, coord, server.Config{
				ListenAddr: cfg.ListenAddr,
				CacheTTL:   cfg.CacheTTL,
			}, logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info().Msg("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		},
	}
}
