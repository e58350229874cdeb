package main

import (
	"context"
	"fmt"

	"todos/internal/api"
	"todos/internal/config"
	"todos/internal/logging"
	"todos/internal/ui"
)

func runTUI(ctx context.Context, cfg config.Config) error {
	logger, closer, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := api.New(cfg.APIURL, cfg.UserID, api.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}

	logger.Info("starting", "api", cfg.APIURL, "user", cfg.UserID, "filter", cfg.Filter())
	if err := ui.Run(ctx, client, cfg, logger); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
