package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"todos/internal/todo"
)

const (
	AppName               = "todos"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultAPIURL         = "https://mate.academy/students-api"
	DefaultListen         = "127.0.0.1:8080"
	DefaultErrorTimeoutMS = 3000
)

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	ToggleAll       string `toml:"toggle_all"`
	Delete          string `toml:"delete"`
	Edit            string `toml:"edit"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	NextFilter      string `toml:"next_filter"`
	FilterAll       string `toml:"filter_all"`
	FilterActive    string `toml:"filter_active"`
	FilterCompleted string `toml:"filter_completed"`
	ClearCompleted  string `toml:"clear_completed"`
	Dismiss         string `toml:"dismiss"`
}

type Server struct {
	Listen string `toml:"listen"`
	DBPath string `toml:"db_path"`
}

type Config struct {
	APIURL         string `toml:"api_url"`
	UserID         int    `toml:"user_id"`
	DefaultFilter  string `toml:"default_filter"`
	ErrorTimeoutMS int    `toml:"error_timeout_ms"`
	LogPath        string `toml:"log_path"`
	LogLevel       string `toml:"log_level"`
	Server         Server `toml:"server"`
	Keys           Keymap `toml:"keys"`
}

// ErrorTimeout is how long an error banner stays visible.
func (c Config) ErrorTimeout() time.Duration {
	return time.Duration(c.ErrorTimeoutMS) * time.Millisecond
}

// Filter returns the parsed default filter.
func (c Config) Filter() todo.Filter {
	f, _ := todo.ParseFilter(c.DefaultFilter)
	return f
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute http(s) url", c.APIURL)
	}
	if c.UserID < 0 {
		return fmt.Errorf("user_id must not be negative, got %d", c.UserID)
	}
	if _, err := todo.ParseFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	if c.ErrorTimeoutMS <= 0 {
		return fmt.Errorf("error_timeout_ms must be positive, got %d", c.ErrorTimeoutMS)
	}
	return nil
}

// ResolveConfigPath picks the config file: $TODO_CONFIG, then
// $XDG_CONFIG_HOME/todos/config.toml, then ~/.config/todos/config.toml.
func ResolveConfigPath() string {
	if p := os.Getenv("TODO_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), DefaultConfigFileName)
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Environment overrides are applied on top.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		ApplyEnv(&cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	fillDefaults(&cfg)
	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg from TODO_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("TODO_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TODO_USER_ID"); v != "" {
		if id, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.UserID = id
		}
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_DB_PATH"); v != "" {
		cfg.Server.DBPath = v
	}
}

func fillDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.APIURL == "" {
		cfg.APIURL = def.APIURL
	}
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = def.DefaultFilter
	}
	if cfg.ErrorTimeoutMS == 0 {
		cfg.ErrorTimeoutMS = def.ErrorTimeoutMS
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = def.Server.Listen
	}
	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = def.Server.DBPath
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the configuration written on first launch.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		DefaultFilter:  "all",
		ErrorTimeoutMS: DefaultErrorTimeoutMS,
		LogLevel:       "info",
		Server: Server{
			Listen: DefaultListen,
			DBPath: DefaultDBName,
		},
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			ToggleAll:       "t",
			Delete:          "d",
			Edit:            "e",
			Confirm:         "enter",
			Cancel:          "esc",
			NextFilter:      "f",
			FilterAll:       "1",
			FilterActive:    "2",
			FilterCompleted: "3",
			ClearCompleted:  "c",
			Dismiss:         "x",
		},
	}
}
