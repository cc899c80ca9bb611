package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Host            string
	Port            string
	StorageBackend  string
	DatabaseURL     string
	DatabaseName    string // namespace (Postgres schema) holding the results table
	StatsWindow     int
	CatalogFile     string // empty uses the built-in catalog
	RedisURL        string // empty disables the leaderboard
	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "5000"),
		StorageBackend:  getEnv("STORAGE_BACKEND", BackendPostgres),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/typing_racer?sslmode=disable"),
		DatabaseName:    getEnv("DB_NAME", "typing_racer"),
		StatsWindow:     getEnvInt("STATS_WINDOW", 100),
		CatalogFile:     os.Getenv("CATALOG_FILE"),
		RedisURL:        os.Getenv("REDIS_URL"),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 10)) * time.Second,
	}
	return cfg
}

// Addr is the listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadDotenv exports variables from an env file into the process environment
// without overriding ones already set. A missing file is not an error.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
