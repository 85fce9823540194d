// Package providers contains dependency injection providers for the journal server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/traveljournal/journal-server/internal/config"
	"github.com/traveljournal/journal-server/internal/logger"
	"github.com/traveljournal/journal-server/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == config.EnvDevelopment,
		Environment: cfg.App.Environment,
	})

	log.Info("Starting journal server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
		"token_format", cfg.Auth.TokenFormat,
	)

	return log, nil
}

// ProvideValidator provides the shared request validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
