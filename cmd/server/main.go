package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/paycore/infra/initializer"
	"github.com/amirasaad/paycore/pkg/app"
	"github.com/amirasaad/paycore/pkg/config"
	"github.com/amirasaad/paycore/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("Starting payment API",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"payout_provider", cfg.Payout.Provider,
		"metrics", cfg.Metrics.Enabled,
	)

	return serve(ctx, webapi.SetupApp(app.New(deps, cfg)), addr, cfg.Server.ShutdownTimeout)
}

// serve listens on addr until ctx is cancelled, then drains in-flight
// requests for at most grace.
func serve(ctx context.Context, fiberApp *fiber.App, addr string, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fiberApp.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server", "grace", grace)
	if err := fiberApp.ShutdownWithTimeout(grace); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
