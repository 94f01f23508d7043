package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port            string
	LogLevel        string
	LogFormat       string
	DBPath          string // empty: no SQLite source
	RefDataFile     string
	TempsCSV        string
	TempsURL        string
	LLMEndpoint     string
	LLMAPIKey       string
	LLMModel        string
	ShutdownTimeout time.Duration
}

// Load reads .env (if present) and the environment.
// A missing .env file is not an error; malformed values are.
func Load() (AppConfig, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (AppConfig, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		LogLevel:    strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(get("LOG_FORMAT", "json")),
		DBPath:      get("DB_PATH", ""),
		RefDataFile: get("REFDATA_FILE", ""),
		TempsCSV:    get("TEMPS_CSV", ""),
		TempsURL:    get("TEMPS_URL", ""),
		LLMEndpoint: get("LLM_ENDPOINT", ""),
		LLMAPIKey:   get("LLM_API_KEY", ""),
		LLMModel:    get("LLM_MODEL", "gpt-4o-mini"),
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(get("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return AppConfig{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	var errs []error
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT %q is not a valid port", c.Port))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be debug, info, warn or error", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "console", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or console", c.LogFormat))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.TempsURL != "" && !strings.HasPrefix(c.TempsURL, "http://") && !strings.HasPrefix(c.TempsURL, "https://") {
		errs = append(errs, fmt.Errorf("TEMPS_URL %q must be an http(s) URL", c.TempsURL))
	}
	return errors.Join(errs...)
}

// LLMEnabled reports whether summaries should go through the chat endpoint.
func (c AppConfig) LLMEnabled() bool { return c.LLMEndpoint != "" && c.LLMAPIKey != "" }
