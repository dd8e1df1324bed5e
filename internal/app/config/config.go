// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"recipe_backend/internal/platform/db"
	"recipe_backend/internal/platform/password"
)

// Config is the full process configuration. It is read once at startup and never mutated.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	LogLevel  slog.Level
	LogFormat string

	JWTSecret  string
	BcryptCost int

	MaxPictureBytes int64

	DBDriver      string
	DBUser        string
	DBPassword    string
	DBName        string
	DBHost        string
	DBPort        string
	DBSSLMode     string
	DBInstance    string
	SQLitePath    string
	DBTimeout     time.Duration
	RunMigrations bool

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "*")),

		LogLevel:  parseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		JWTSecret:  strings.TrimSpace(os.Getenv("JWT_SECRET")),
		BcryptCost: getInt("BCRYPT_COST", password.DefaultCost),

		MaxPictureBytes: getInt64("MAX_PICTURE_BYTES", 5<<20),

		DBDriver:      getEnv("DB_DRIVER", db.DriverPostgres),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "recipes"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBInstance:    getEnv("INSTANCE_CONNECTION_NAME", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "./recipes.db"),
		DBTimeout:     getDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
		RunMigrations: getBool("RUN_MIGRATIONS", true),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBDriver != db.DriverPostgres && c.DBDriver != db.DriverSQLite {
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.DBDriver)
	}
	if c.DBDriver == db.DriverSQLite && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH cannot be empty when DB_DRIVER is sqlite")
	}
	if c.MaxPictureBytes <= 0 {
		return fmt.Errorf("MAX_PICTURE_BYTES must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// DB returns the database connection settings.
func (c *Config) DB() db.Config {
	return db.Config{
		Driver:         c.DBDriver,
		User:           c.DBUser,
		Password:       c.DBPassword,
		Name:           c.DBName,
		Host:           c.DBHost,
		Port:           c.DBPort,
		SSLMode:        c.DBSSLMode,
		InstanceName:   c.DBInstance,
		SQLitePath:     c.SQLitePath,
		ConnectTimeout: c.DBTimeout,
		RunMigrations:  c.RunMigrations,
	}
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseLevel(raw string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
