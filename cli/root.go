// Package cli wires the terminal commands of the assistant client.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shulechat/client/api"
	"github.com/shulechat/client/authstore"
	"github.com/shulechat/client/config"
	"github.com/shulechat/client/logger"
)

var (
	dataDir   string
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "shulechat",
	Short:         "Talk to your school's assistant from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the client data directory")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Override the backend base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// app bundles what every command needs: resolved config, the token store,
// the backend client and an invocation-scoped logger.
type app struct {
	cfg    config.Config
	store  *authstore.Store
	client *api.Client
	log    *slog.Logger
}

func newApp() (*app, error) {
	if verbose {
		os.Setenv("LOG_LEVEL", "debug")
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	logger.Init(logger.Config{DataDir: cfg.DataDir, DevMode: cfg.DevMode})
	log := logger.NewInvocationLogger()
	log.Debug("client invocation", "server", cfg.ServerURL, "dataDir", cfg.DataDir)

	store, err := authstore.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open auth store: %w", err)
	}

	return &app{
		cfg:    cfg,
		store:  store,
		client: api.NewClient(cfg.ServerURL, store, cfg.RequestTimeout),
		log:    log,
	}, nil
}
