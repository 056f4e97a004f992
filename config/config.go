package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Favorites storage backends
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Partial-failure policies for category searches
const (
	PolicyFailFast   = "fail-fast"
	PolicyBestEffort = "best-effort"
)

// DefaultFavoritesKey is the storage key the favorites set lives under.
const DefaultFavoritesKey = "my_recipe_favs"

// Config holds all configuration for the application
type Config struct {
	// Recipe API configuration
	MealDBBaseURL         string
	HTTPTimeout           time.Duration
	MaxConcurrentRequests int
	RequestsPerSecond     float64
	PartialFailurePolicy  string
	CategoriesFile        string

	// Favorites storage
	FavoritesBackend string
	FavoritesKey     string
	FavoritesDir     string
	SQLitePath       string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisURL       string
	RedisKeyPrefix string

	// S3 configuration
	S3Bucket    string
	S3KeyPrefix string
	AWSRegion   string

	Debug bool
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load reads the configuration like LoadConfig but leaves validation to the
// caller, so command-line overrides can be applied first.
func Load() (*Config, error) {
	env := GetEnvironment()
	cfg := Default()

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	// Passwords come from Docker secrets when present, as in production
	// deployments; the environment is the fallback for local runs.
	if v := readSecret("db_password"); v != "" {
		cfg.DBPassword = v
	}
	if v := readSecret("redis_password"); v != "" {
		cfg.RedisPassword = v
	}

	if env == Test {
		cfg.FavoritesBackend = getEnv("FAVORITES_BACKEND", BackendMemory)
	}

	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		MealDBBaseURL:         "https://www.themealdb.com/api/json/v1/1",
		HTTPTimeout:           15 * time.Second,
		MaxConcurrentRequests: 8,
		RequestsPerSecond:     10,
		PartialFailurePolicy:  PolicyFailFast,
		FavoritesBackend:      BackendFile,
		FavoritesKey:          DefaultFavoritesKey,
		FavoritesDir:          defaultFavoritesDir(),
		SQLitePath:            filepath.Join(defaultFavoritesDir(), "favorites.db"),
		DBHost:                "localhost",
		DBPort:                "5432",
		DBUser:                "postgres",
		DBName:                "recipehub",
		DBSSLMode:             "disable",
		RedisHost:             "localhost",
		RedisPort:             "6379",
		RedisKeyPrefix:        "recipehub:",
		S3KeyPrefix:           "recipehub/",
	}
}

func loadFromEnv(cfg *Config) error {
	cfg.MealDBBaseURL = getEnv("MEALDB_BASE_URL", cfg.MealDBBaseURL)
	cfg.PartialFailurePolicy = strings.ToLower(getEnv("PARTIAL_FAILURE_POLICY", cfg.PartialFailurePolicy))
	cfg.CategoriesFile = getEnv("CATEGORIES_FILE", cfg.CategoriesFile)

	cfg.FavoritesBackend = strings.ToLower(getEnv("FAVORITES_BACKEND", cfg.FavoritesBackend))
	cfg.FavoritesKey = getEnv("FAVORITES_KEY", cfg.FavoritesKey)
	cfg.FavoritesDir = getEnv("FAVORITES_DIR", cfg.FavoritesDir)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)

	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", cfg.DBSSLMode)

	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.RedisKeyPrefix = getEnv("REDIS_KEY_PREFIX", cfg.RedisKeyPrefix)

	cfg.S3Bucket = getEnv("S3_BUCKET_NAME", cfg.S3Bucket)
	cfg.S3KeyPrefix = getEnv("S3_KEY_PREFIX", cfg.S3KeyPrefix)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)

	var err error
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		if cfg.HTTPTimeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
	}
	if v := os.Getenv("MAX_CONCURRENT_REQUESTS"); v != "" {
		if cfg.MaxConcurrentRequests, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid MAX_CONCURRENT_REQUESTS: %w", err)
		}
	}
	if v := os.Getenv("REQUESTS_PER_SECOND"); v != "" {
		if cfg.RequestsPerSecond, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid REQUESTS_PER_SECOND: %w", err)
		}
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid DEBUG: %w", err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func defaultFavoritesDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "recipehub")
	}
	return filepath.Join(os.TempDir(), "recipehub")
}
