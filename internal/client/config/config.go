// Package config loads client settings from a YAML file, the environment
// (optionally seeded from a .env file) and command-line flags, in increasing
// order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "FIELDSYNC_"

// DefaultPath is read when no config file is given; a missing default file is not an error
const DefaultPath = "fieldsync.yaml"

// Config holds client settings
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Sync    SyncConfig    `yaml:"sync"`
}

// ServerConfig describes the remote authority
type ServerConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"` // JWT для заголовка Authorization
}

// StorageConfig describes the local store
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SyncConfig tunes the sync engine
type SyncConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	Interval       time.Duration `yaml:"interval"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LogConfig selects the log handler
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Server:  ServerConfig{URL: "http://localhost:8080"},
		Storage: StorageConfig{Path: "fieldsync-client.db"},
		Log:     LogConfig{Level: "warn", Format: "text"},
		Sync: SyncConfig{
			Debounce:       300 * time.Millisecond,
			RequestTimeout: 30 * time.Second,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path, then
// environment variables. An empty path reads DefaultPath if it exists.
// Variables from a .env file in the working directory are loaded first and
// never override variables already set.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Файл по умолчанию необязателен
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decode overlays YAML data on cfg, rejecting unknown fields
func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overlays FIELDSYNC_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strVars := map[string]*string{
		"SERVER_URL": &c.Server.URL,
		"TOKEN":      &c.Server.Token,
		"DB":         &c.Storage.Path,
		"LOG_LEVEL":  &c.Log.Level,
		"LOG_FORMAT": &c.Log.Format,
	}
	for name, target := range strVars {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*target = v
		}
	}

	durationVars := map[string]*time.Duration{
		"SYNC_DEBOUNCE":   &c.Sync.Debounce,
		"SYNC_INTERVAL":   &c.Sync.Interval,
		"REQUEST_TIMEOUT": &c.Sync.RequestTimeout,
	}
	for name, target := range durationVars {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*target = d
	}

	return nil
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server url is required")
	}
	if !strings.HasPrefix(c.Server.URL, "http://") && !strings.HasPrefix(c.Server.URL, "https://") {
		return fmt.Errorf("server url %q must start with http:// or https://", c.Server.URL)
	}
	if c.Storage.Path == "" {
		return errors.New("storage path is required")
	}
	if c.Sync.Debounce < 0 || c.Sync.Interval < 0 || c.Sync.RequestTimeout < 0 {
		return errors.New("sync durations cannot be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	return nil
}

// ParseLevel converts a level name into a slog.Level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// NewLogger creates the logger described by the log settings
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// durationString renders a duration setting for display
func durationString(d time.Duration) string {
	if d == 0 {
		return "off"
	}
	return d.String()
}

// Summary returns the effective settings without secrets
func (c *Config) Summary() []string {
	token := "not set"
	if c.Server.Token != "" {
		token = "set (" + strconv.Itoa(len(c.Server.Token)) + " chars)"
	}
	return []string{
		"Server:          " + c.Server.URL,
		"Token:           " + token,
		"Database:        " + c.Storage.Path,
		"Debounce:        " + durationString(c.Sync.Debounce),
		"Interval:        " + durationString(c.Sync.Interval),
		"Request timeout: " + durationString(c.Sync.RequestTimeout),
	}
}
