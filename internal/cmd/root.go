// Package cmd implements the eventdeck command line interface.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eventdeck/eventdeck/internal/config"
	"github.com/eventdeck/eventdeck/internal/remote"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

// rootOptions are the persistent flags shared by all subcommands.
type rootOptions struct {
	configFile string
	baseURL    string
	verbose    bool
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "eventdeck",
		Short:         "Browse and manage events held by a remote record store",
		Long:          "eventdeck keeps a local view of a remote event record store in sync,\nlets you search and filter it, and applies create/update/delete\nmutations with explicit failure reporting.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.verbose {
				logging.SetDefault(logging.Default().Level(zerolog.DebugLevel))
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "remote record store base URL (overrides config)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newEventsCmd(opts),
	)
	return root
}

// load resolves configuration with flag overrides applied.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	return cfg, nil
}

// storeClient creates the record store client for the loaded config.
func storeClient(cfg *config.Config) *remote.Client {
	return remote.New(cfg.BaseURL, remote.WithTimeout(cfg.HTTPTimeout))
}
