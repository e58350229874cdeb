package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/internal/todo"
)

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	t.Setenv("TODO_USER_ID", "")
	t.Setenv("TODO_API_URL", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", path,
		"--user-id", "7",
		"--api-url", "http://127.0.0.1:9999",
		"--filter", "completed",
	}))

	var flags rootFlags
	flags.configPath, _ = cmd.Flags().GetString("config")
	flags.userID, _ = cmd.Flags().GetInt("user-id")
	flags.apiURL, _ = cmd.Flags().GetString("api-url")
	flags.filter, _ = cmd.Flags().GetString("filter")

	cfg, err := loadConfig(cmd, &flags)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.UserID)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.APIURL)
	assert.Equal(t, todo.FilterCompleted, cfg.Filter())
	assert.Equal(t, filepath.Join(dir, "todo.db"), cfg.Server.DBPath)
	assert.FileExists(t, path)
}

func TestLoadConfigRejectsBadFilter(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--filter", "someday"}))

	flags := rootFlags{configPath: filepath.Join(dir, "config.toml"), filter: "someday"}
	_, err := loadConfig(cmd, &flags)
	assert.Error(t, err)
}

func TestServeIsRegistered(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("db"))
	assert.NotNil(t, cmd.Flags().Lookup("listen"))
}
