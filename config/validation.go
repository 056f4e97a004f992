package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "\n")
}

// backendRequirements lists the fields each favorites backend needs set.
var backendRequirements = map[string][]string{
	BackendFile:     {"FAVORITES_DIR"},
	BackendMemory:   {},
	BackendRedis:    {"REDIS_HOST", "REDIS_PORT"},
	BackendSQLite:   {"SQLITE_PATH"},
	BackendPostgres: {"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
	BackendS3:       {"S3_BUCKET_NAME"},
}

func fieldValue(cfg *Config, field string) string {
	switch field {
	case "FAVORITES_DIR":
		return cfg.FavoritesDir
	case "REDIS_HOST":
		if cfg.RedisURL != "" {
			return cfg.RedisURL
		}
		return cfg.RedisHost
	case "REDIS_PORT":
		if cfg.RedisURL != "" {
			return cfg.RedisURL
		}
		return cfg.RedisPort
	case "SQLITE_PATH":
		return cfg.SQLitePath
	case "DB_HOST":
		return cfg.DBHost
	case "DB_PORT":
		return cfg.DBPort
	case "DB_USER":
		return cfg.DBUser
	case "DB_NAME":
		return cfg.DBName
	case "S3_BUCKET_NAME":
		return cfg.S3Bucket
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if u, err := url.Parse(cfg.MealDBBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"MEALDB_BASE_URL", "must be an absolute URL"})
	}
	if cfg.HTTPTimeout <= 0 {
		errs = append(errs, ValidationError{"HTTP_TIMEOUT", "must be positive"})
	}
	if cfg.MaxConcurrentRequests < 1 {
		errs = append(errs, ValidationError{"MAX_CONCURRENT_REQUESTS", "must be at least 1"})
	}
	if cfg.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{"REQUESTS_PER_SECOND", "must not be negative"})
	}
	switch cfg.PartialFailurePolicy {
	case PolicyFailFast, PolicyBestEffort:
	default:
		errs = append(errs, ValidationError{"PARTIAL_FAILURE_POLICY", fmt.Sprintf("unknown policy %q", cfg.PartialFailurePolicy)})
	}
	if cfg.FavoritesKey == "" {
		errs = append(errs, ValidationError{"FAVORITES_KEY", "is required"})
	}

	required, ok := backendRequirements[cfg.FavoritesBackend]
	if !ok {
		errs = append(errs, ValidationError{"FAVORITES_BACKEND", fmt.Sprintf("unknown backend %q", cfg.FavoritesBackend)})
	}
	for _, field := range required {
		if fieldValue(cfg, field) == "" {
			errs = append(errs, ValidationError{field, fmt.Sprintf("is required for the %s backend", cfg.FavoritesBackend)})
		}
	}

	if GetEnvironment() == Production && cfg.FavoritesBackend == BackendMemory {
		errs = append(errs, ValidationError{"FAVORITES_BACKEND", "memory backend is not durable and cannot be used in production"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
