package main

import (
	"context"
	"fmt"

	"github.com/nrel/windwatts-core/internal/api"
	"github.com/nrel/windwatts-core/internal/config"
	"github.com/nrel/windwatts-core/internal/logger"
	"github.com/nrel/windwatts-core/internal/repository"
	"github.com/nrel/windwatts-core/internal/service"
	"github.com/nrel/windwatts-core/internal/wind"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load config: %w", err))
	}
	logger.SetLevel(cfg.LogLevel)

	repo, err := repository.New(cfg.DBConnString, cfg.DBName)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to create repository: %w", err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error(fmt.Errorf("failed to close repository: %w", err))
		}
	}()

	registry, err := loadRegistry(cfg)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load power curves: %w", err))
	}

	svc, err := service.New(context.Background(), repo, registry, cfg.BatchWorkers)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to create wind service: %w", err))
	}

	if err := api.RunAPI(cfg, svc); err != nil {
		logger.Fatal(fmt.Errorf("failed to run windwatts api: %w", err))
	}
}

func loadRegistry(cfg *config.Config) (*wind.Registry, error) {
	curves := wind.BuiltinCurves()
	if cfg.PowerCurveDir == "" {
		return wind.NewRegistry(curves...), nil
	}
	return wind.LoadRegistry(cfg.PowerCurveDir, curves...)
}
