// Package config reads the server configuration from environment variables.
//
// Variables may also come from a .env file in the working directory; values
// already present in the environment win over the file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ivannaromanovych/product-categories/internal/apperror"
)

// Source names where the fixture tables come from.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceYAML     Source = "yaml"
	SourceSQLite   Source = "sqlite"
	SourcePostgres Source = "postgres"
)

const (
	DefaultPort       = 8080
	DefaultSQLitePath = "data/catalog.db"
	DefaultSessionTTL = 30 * time.Minute
	MinSecretLength   = 16
)

type Config struct {
	Port          int
	LogLevel      slog.Level
	FixtureSource Source
	FixturePath   string // YAML file or SQLite database
	DatabaseURL   string // Postgres DSN
	SessionSecret string
	SessionTTL    time.Duration
}

// Load reads the configuration. envFiles are optional dotenv files; when
// none are given, ".env" is tried. Missing files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: reading %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:          DefaultPort,
		LogLevel:      slog.LevelInfo,
		FixtureSource: SourceBuiltin,
		FixturePath:   os.Getenv("FIXTURE_PATH"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    DefaultSessionTTL,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, apperror.ValidationFailed("PORT", fmt.Sprintf("config: invalid PORT %q", v))
		}
		cfg.Port = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, apperror.ValidationFailed("LOG_LEVEL", fmt.Sprintf("config: invalid LOG_LEVEL %q", v))
		}
	}

	if v := os.Getenv("FIXTURE_SOURCE"); v != "" {
		cfg.FixtureSource = Source(strings.ToLower(v))
	}
	switch cfg.FixtureSource {
	case SourceBuiltin:
	case SourceYAML:
		if cfg.FixturePath == "" {
			return Config{}, apperror.ValidationFailed("FIXTURE_PATH", "config: FIXTURE_PATH is required for the yaml source")
		}
	case SourceSQLite:
		if cfg.FixturePath == "" {
			cfg.FixturePath = DefaultSQLitePath
		}
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, apperror.ValidationFailed("DATABASE_URL", "config: DATABASE_URL is required for the postgres source")
		}
	default:
		return Config{}, apperror.ValidationFailed("FIXTURE_SOURCE",
			fmt.Sprintf("config: unknown FIXTURE_SOURCE %q", cfg.FixtureSource))
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return Config{}, apperror.ValidationFailed("SESSION_TTL", fmt.Sprintf("config: invalid SESSION_TTL %q", v))
		}
		cfg.SessionTTL = ttl
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.SessionSecret = secret
	} else if len(cfg.SessionSecret) < MinSecretLength {
		return Config{}, apperror.ValidationFailed("SESSION_SECRET",
			fmt.Sprintf("config: SESSION_SECRET must be at least %d characters", MinSecretLength))
	}

	return cfg, nil
}

// randomSecret returns 32 random bytes, hex encoded. Sessions signed with it
// do not survive a restart, which is fine for state that lives in memory.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("config: generating session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
