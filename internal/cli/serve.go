// File path: internal/cli/serve.go
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/nicodishanthj/affirmd/internal/api"
	"github.com/nicodishanthj/affirmd/internal/app"
	"github.com/nicodishanthj/affirmd/internal/common"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	logger := common.Logger()

	logger.Info("affirmd: startup initiated", "addr", cfg.Addr, "db", cfg.DBPath, "prefix", cfg.APIPrefix, "tz", cfg.Timezone)
	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("affirmd: initialization failed", "error", err)
		return err
	}
	defer application.Close()

	server, err := api.NewServer(application)
	if err != nil {
		logger.Error("affirmd: server construction failed", "error", err)
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("affirmd: server listening", "addr", cfg.Addr, "health", "/healthz", "suggestion", "curl "+reachableURL(cfg.Addr, cfg.APIPrefix))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("affirmd: server stopped", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("affirmd: shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("affirmd: shutdown failed", "error", err)
		return err
	}
	logger.Info("affirmd: server stopped")
	return nil
}
