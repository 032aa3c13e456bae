// Command server starts the resume scoring HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpserver "github.com/gradecv/gradecv/internal/adapter/httpserver"
	"github.com/gradecv/gradecv/internal/adapter/observability"
	"github.com/gradecv/gradecv/internal/app"
	"github.com/gradecv/gradecv/internal/config"
	"github.com/gradecv/gradecv/internal/roles"
	"github.com/gradecv/gradecv/internal/scoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Role taxonomy is loaded once; a broken taxonomy is fatal.
	registry, err := roles.Load(cfg.RolesPath)
	if err != nil {
		slog.Error("role taxonomy load failed", slog.Any("error", err), slog.String("path", cfg.RolesPath))
		os.Exit(1)
	}
	slog.Info("role taxonomy loaded", slog.Int("roles", len(registry.List())), slog.String("path", cfg.RolesPath))

	engine := scoring.NewEngine(registry)

	// Drift baselines come from the calibration corpus means; the window and
	// threshold are wide enough that only sustained shifts alert.
	drift := observability.NewDriftMonitor("2026-08", map[string]float64{
		"ats_simulation": 55,
		"quality_coach":  60,
	}, 100, 15)

	srv := httpserver.NewServer(cfg, engine, registry, drift)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
