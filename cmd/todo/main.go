package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"todos/internal/config"
)

type rootFlags struct {
	configPath string
	userID     int
	apiURL     string
	filter     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Printf("error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Keyboard-driven todo list backed by a remote todos API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/todos/config.toml)")
	cmd.Flags().IntVarP(&flags.userID, "user-id", "u", 0, "user id to act for")
	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "base url of the todos API")
	cmd.Flags().StringVarP(&flags.filter, "filter", "f", "", "initial filter: all, active or completed")

	cmd.AddCommand(newServeCmd(&flags))
	return cmd
}

// loadConfig resolves the config file and layers flags on top of it. Flags
// win over environment variables, which win over the file.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if f := cmd.Flags().Lookup("user-id"); f != nil && f.Changed {
		cfg.UserID = flags.userID
	}
	if f := cmd.Flags().Lookup("api-url"); f != nil && f.Changed {
		cfg.APIURL = flags.apiURL
	}
	if f := cmd.Flags().Lookup("filter"); f != nil && f.Changed {
		cfg.DefaultFilter = flags.filter
	}

	if cfg.LogPath != "" && !filepath.IsAbs(cfg.LogPath) {
		cfg.LogPath = filepath.Join(filepath.Dir(path), cfg.LogPath)
	}
	if db := cfg.Server.DBPath; !filepath.IsAbs(db) && !strings.HasPrefix(db, "file:") {
		cfg.Server.DBPath = filepath.Join(filepath.Dir(path), cfg.Server.DBPath)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
