package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/internal/todo"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TODO_CONFIG", "TODO_API_URL", "TODO_USER_ID", "TODO_LOG_LEVEL", "TODO_DB_PATH"} {
		t.Setenv(k, "")
	}
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateKeepsDefaultsForMissingKeys(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	data := `
user_id = 42
default_filter = "active"
api_url = ""

[keys]
quit = "Q"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.UserID)
	assert.Equal(t, todo.FilterActive, cfg.Filter())
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "Q", cfg.Keys.Quit)
	assert.Equal(t, "j", cfg.Keys.Down)
	assert.Equal(t, 3*time.Second, cfg.ErrorTimeout())
	assert.Equal(t, DefaultListen, cfg.Server.Listen)
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("user_id = ["), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_API_URL", "http://localhost:9999")
	t.Setenv("TODO_USER_ID", "7")
	t.Setenv("TODO_LOG_LEVEL", "debug")
	t.Setenv("TODO_DB_PATH", "/tmp/other.db")

	cfg, err := LoadOrCreate(filepath.Join(t.TempDir(), DefaultConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.APIURL)
	assert.Equal(t, 7, cfg.UserID)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/other.db", cfg.Server.DBPath)
}

func TestInvalidUserIDEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_USER_ID", "abc")
	cfg := Default()
	cfg.UserID = 3
	ApplyEnv(&cfg)
	assert.Equal(t, 3, cfg.UserID)
}

func TestResolveConfigPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", AppName, DefaultConfigFileName), ResolveConfigPath())

	t.Setenv("TODO_CONFIG", "/explicit.toml")
	assert.Equal(t, "/explicit.toml", ResolveConfigPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.APIURL = "/todos" }, wantErr: true},
		{name: "negative user", mutate: func(c *Config) { c.UserID = -1 }, wantErr: true},
		{name: "bad filter", mutate: func(c *Config) { c.DefaultFilter = "done" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.ErrorTimeoutMS = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
