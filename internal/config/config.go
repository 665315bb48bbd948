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

const ServiceName = "property-api"

type Config struct {
	Env         string
	Port        string
	Version     string
	LogLevel    string
	GinMode     string
	CORSOrigins []string

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration

	MongoURI string
	MongoDB  string

	ShutdownTimeout time.Duration
}

// PhotoStorageEnabled reports whether a MongoDB URI was configured.
func (c *Config) PhotoStorageEnabled() bool {
	return c.MongoURI != ""
}

// LoadDotEnv reads .env into the process environment when the file exists.
// Variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var missing []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	if len(missing) == len(files) {
		return fmt.Errorf("no env file found (%s)", strings.Join(missing, ", "))
	}
	return nil
}

// Load builds the configuration from environment variables.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Env:         env("ENV", "development"),
		Port:        env("PORT", "8080"),
		Version:     env("APP_VERSION", "1.0.0"),
		LogLevel:    env("LOG_LEVEL", "info"),
		GinMode:     env("GIN_MODE", ""),
		CORSOrigins: splitList(env("CORS_ALLOWED_ORIGINS", "*")),
		DatabaseURL: env("DATABASE_URL", ""),
		MongoURI:    env("MONGO_URI", ""),
		MongoDB:     env("MONGO_DB", "property_photos"),
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	var err error
	if cfg.DBMaxOpenConns, err = intEnv(env, "DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = intEnv(env, "DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.DBConnLifetime, err = durationEnv(env, "DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv(env, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intEnv(env func(string, string) string, key string, def int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return v, nil
}

func durationEnv(env func(string, string) string, key string, def time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
