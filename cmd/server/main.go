package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/campuspay/backend/infra"
	"github.com/campuspay/backend/infra/provider/mockpayment"
	"github.com/campuspay/backend/infra/provider/razorpay"
	infrarepo "github.com/campuspay/backend/infra/repository"
	"github.com/campuspay/backend/pkg/app"
	"github.com/campuspay/backend/pkg/config"
	"github.com/campuspay/backend/pkg/provider/payment"
	"github.com/campuspay/backend/webapi"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var gateway payment.Gateway
	if cfg.Razorpay.KeyID != "" {
		gateway = razorpay.New(cfg.Razorpay, logger)
	} else {
		// No gateway credentials configured; local development runs
		// against the in-process double.
		logger.Warn("RAZORPAY_KEY_ID not set, using mock payment gateway")
		gateway = mockpayment.New("mock_secret")
	}

	a := app.New(&app.Deps{
		Uow:     infrarepo.NewUoW(db),
		Gateway: gateway,
		Logger:  logger,
	}, cfg)

	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return fiberApp.Listen(addr)
}

// newLogger builds the process logger from config: JSON in deployments,
// text for local reading.
func newLogger(cfg *config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
