// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rawadhossain/GikiZero/internal/api"
	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/config"
	"github.com/rawadhossain/GikiZero/internal/database"
	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/metrics"
	"github.com/rawadhossain/GikiZero/internal/supervisor"
	"github.com/rawadhossain/GikiZero/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run() error {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Msg("Starting GikiZero")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize session tokens: %w", err)
	}
	accounts := auth.NewAccounts(db, cfg.Security.BcryptCost)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.IsProduction() && !cfg.Security.CookieSecure {
		logging.Warn().Msg("COOKIE_SECURE=false in production: session cookies will be sent over plain HTTP")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" && cfg.IsProduction() {
			logging.Warn().Msg("CORS_ORIGINS=* in production: any site may call the API (credentials disabled)")
			break
		}
	}

	handler := api.NewHandler(accounts, jwtManager, db, db, cfg)
	router := api.NewRouter(
		handler,
		auth.NewMiddleware(jwtManager, cfg.Security.CookieName),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewHealthProbeService(db, 30*time.Second))
	tree.AddDataService(services.NewUptimeService(startTime, 15*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// ServeBackground delivers exactly one value and never closes errCh.
	if err := waitForShutdown(ctx, errCh); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

// waitForShutdown blocks until the supervisor tree has returned its single
// result. A canceled context is a clean stop.
func waitForShutdown(ctx context.Context, errCh <-chan error) error {
	var err error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
