// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over file entries.
func Load() (*App, error) {
	logger := slog.Default()
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"server_port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"razorpay_base_url", cfg.Razorpay.BaseURL,
		"razorpay_key_id", maskValue(cfg.Razorpay.KeyID),
	)
	return &cfg, nil
}

// maskValue hides secrets in startup logs, keeping a short prefix so
// operators can still tell keys apart.
func maskValue(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 8 {
		return "****"
	}
	return v[:4] + "****"
}
