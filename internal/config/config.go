package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	TLSCert         string
	TLSKey          string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// SessionKey signs session cookies. When SESSION_KEY is unset a random
	// key is generated and sessions do not survive a restart.
	SessionKey          []byte
	SessionKeyGenerated bool

	RateLimitRPS   float64
	RateLimitBurst int
	HistorySize    int
	DebounceWindow time.Duration

	// Saved calculations of a session are dropped after HistoryIdleTimeout
	// without use; at most HistoryMaxSessions are kept at once.
	HistoryIdleTimeout time.Duration
	HistoryMaxSessions int
}

// TLSEnabled reports whether both certificate files were configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// LoadEnvFile loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	debounceWindow, err := parseDuration("DEBOUNCE_WINDOW", "500ms")
	if err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(envOrDefault("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_RPS")
	}
	burst, err := parsePositiveInt("RATE_LIMIT_BURST", "10")
	if err != nil {
		return nil, err
	}
	historySize, err := parsePositiveInt("HISTORY_SIZE", "10")
	if err != nil {
		return nil, err
	}
	historyIdle, err := parseDuration("HISTORY_IDLE_TIMEOUT", "24h")
	if err != nil {
		return nil, err
	}
	historySessions, err := parsePositiveInt("HISTORY_MAX_SESSIONS", "10000")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		TLSCert:         os.Getenv("TLS_CERT"),
		TLSKey:          os.Getenv("TLS_KEY"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		HistorySize:     historySize,
		DebounceWindow:  debounceWindow,

		HistoryIdleTimeout: historyIdle,
		HistoryMaxSessions: historySessions,
	}

	if key := os.Getenv("SESSION_KEY"); key != "" {
		cfg.SessionKey = []byte(key)
	} else {
		cfg.SessionKey = []byte(uuid.NewString())
		cfg.SessionKeyGenerated = true
	}

	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key, def string) (int, error) {
	n, err := strconv.Atoi(envOrDefault(key, def))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
