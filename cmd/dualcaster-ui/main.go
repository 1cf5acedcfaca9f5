package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback" // CA bundle for scratch/distroless images

	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/config"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/server"
	"github.com/dualcaster-deals/dualcaster/app/internal/version"
)

func main() {
	cmd := &cobra.Command{
		Use:   "dualcaster-ui",
		Short: "Dualcaster Deals web user interface",
		Long:  `Web UI for the Dualcaster Deals trading card marketplace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.Version = version.Get().String()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return err
	}

	serverLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	serverLogger.Info("Starting Dualcaster UI",
		slog.String("version", version.Get().Version),
		slog.String("environment", cfg.Environment),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	srv, err := server.New(cfg, serverLogger)
	if err != nil {
		serverLogger.Error("Failed to initialize server", slog.String("error", err.Error()))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		serverLogger.Error("UI server error", slog.String("error", err.Error()))
		return err
	}

	serverLogger.Info("UI server shutdown complete")
	return nil
}
