package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"todos/internal/logging"
	"todos/internal/server"
	"todos/internal/storage"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var listen, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todos API locally from a SQLite database",
		Long: `Serve runs a local implementation of the todos API backed by SQLite.
Point api_url (or --api-url) at it to use the client without the remote service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listen
			}
			if cmd.Flags().Changed("db") {
				cfg.Server.DBPath = dbPath
			}
			return serve(cmd.Context(), cfg.Server.Listen, cfg.Server.DBPath, cfg.LogLevel)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database path")
	return cmd
}

func serve(ctx context.Context, listen, dbPath, level string) error {
	logger := logging.New(os.Stderr, level)

	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              listen,
		Handler:           server.NewRouter(server.NewTodoController(store, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", listen, "db", dbPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
