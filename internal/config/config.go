// Package config loads tradie settings from the environment, optionally
// seeded from .env files in the working directory.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultEnvFiles are read, when present, before the environment is parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Config holds all runtime settings.
type Config struct {
	APIURL         string        `env:"TRADIE_API_URL" envDefault:"https://tdoserver.azurewebsites.net"`
	AuthURL        string        `env:"TRADIE_AUTH_URL" envDefault:"https://authgen.azurewebsites.net"`
	DBPath         string        `env:"TRADIE_DB"`
	PageSize       int           `env:"TRADIE_PAGE_SIZE" envDefault:"20"`
	LookupPageSize int           `env:"TRADIE_LOOKUP_PAGE_SIZE" envDefault:"500"`
	SearchDebounce time.Duration `env:"TRADIE_SEARCH_DEBOUNCE" envDefault:"300ms"`
	Timeout        time.Duration `env:"TRADIE_TIMEOUT" envDefault:"15s"`
	LogLevel       string        `env:"TRADIE_LOG_LEVEL" envDefault:"warn"`
	LogCalls       bool          `env:"TRADIE_LOG_CALLS" envDefault:"false"`
	LogFile        string        `env:"TRADIE_LOG_FILE"`
}

// LoadEnv loads the env files that exist and returns how many were read.
// Variables already set in the process environment win.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads envFiles (DefaultEnvFiles when none are given), parses the
// environment and validates the result.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = DefaultEnvFiles
	}
	if _, err := LoadEnv(envFiles); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.AuthURL = strings.TrimRight(cfg.AuthURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{"TRADIE_API_URL": c.APIURL, "TRADIE_AUTH_URL": c.AuthURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an http(s) URL, got %q", name, raw))
		}
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("TRADIE_PAGE_SIZE must be positive, got %d", c.PageSize))
	}
	if c.LookupPageSize <= 0 {
		errs = append(errs, fmt.Errorf("TRADIE_LOOKUP_PAGE_SIZE must be positive, got %d", c.LookupPageSize))
	}
	if c.SearchDebounce < 0 {
		errs = append(errs, fmt.Errorf("TRADIE_SEARCH_DEBOUNCE must not be negative, got %s", c.SearchDebounce))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("TRADIE_TIMEOUT must be positive, got %s", c.Timeout))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("TRADIE_LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// Logger builds a production zap logger at the configured level. Output
// goes to LogFile when set, otherwise to fallback, otherwise to stderr.
func (c Config) Logger(fallback string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil

	out := "stderr"
	switch {
	case c.LogFile != "":
		out = c.LogFile
	case fallback != "":
		out = fallback
	}
	if out != "stderr" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tradie.db"
	}
	return filepath.Join(home, ".tradie", "tradie.db")
}
