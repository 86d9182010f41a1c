// File path: cmd/affirmd/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nicodishanthj/affirmd/internal/cli"
	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "affirmd:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env must be applied before the logger reads LOG_* variables.
	loaded, envErr := config.LoadDotEnv()
	logger := common.Logger()
	switch {
	case envErr != nil:
		logger.Warn("affirmd: .env file not loaded", "error", envErr)
	case loaded:
		logger.Info("affirmd: environment loaded from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("affirmd: config load failed", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.NewRootCommand(cfg).ExecuteContext(ctx)
}
