package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("MEALDB_BASE_URL", "http://localhost:9999/api")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("MAX_CONCURRENT_REQUESTS", "3")
	t.Setenv("REQUESTS_PER_SECOND", "2.5")
	t.Setenv("PARTIAL_FAILURE_POLICY", "Best-Effort")
	t.Setenv("FAVORITES_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api", cfg.MealDBBaseURL)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.MaxConcurrentRequests)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, PolicyBestEffort, cfg.PartialFailurePolicy)
	assert.Equal(t, BackendRedis, cfg.FavoritesBackend)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())
	for _, key := range []string{"MEALDB_BASE_URL", "HTTP_TIMEOUT", "FAVORITES_BACKEND", "FAVORITES_KEY", "PARTIAL_FAILURE_POLICY"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// Test default values
	assert.Equal(t, "https://www.themealdb.com/api/json/v1/1", cfg.MealDBBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, BackendFile, cfg.FavoritesBackend)
	assert.Equal(t, DefaultFavoritesKey, cfg.FavoritesKey)
	assert.Equal(t, PolicyFailFast, cfg.PartialFailurePolicy)
	assert.NotEmpty(t, cfg.FavoritesDir)
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("FAVORITES_BACKEND", "etcd")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "FAVORITES_BACKEND")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "etcd", cfg.FavoritesBackend)

	cfg.FavoritesBackend = BackendMemory
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigTestEnvironmentUsesMemory(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("FAVORITES_BACKEND", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.FavoritesBackend)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	secrets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "redis_password"), []byte("s3cret\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "db_password"), []byte("pgpass"), 0600))
	t.Setenv("SECRETS_DIR", secrets)
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "development")
	t.Setenv("REDIS_PASSWORD", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.RedisPassword)
	assert.Equal(t, "pgpass", cfg.DBPassword)
}

func TestLoadConfigInvalidNumbers(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "development")
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid HTTP_TIMEOUT")
}

func TestValidateConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "development")

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(Default()))
	})

	t.Run("collects every problem", func(t *testing.T) {
		cfg := Default()
		cfg.MealDBBaseURL = "not a url"
		cfg.MaxConcurrentRequests = 0
		cfg.PartialFailurePolicy = "retry"
		cfg.FavoritesBackend = BackendS3

		err := ValidateConfig(cfg)
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			fields = append(fields, ve.Field)
		}
		assert.ElementsMatch(t, []string{"MEALDB_BASE_URL", "MAX_CONCURRENT_REQUESTS", "PARTIAL_FAILURE_POLICY", "S3_BUCKET_NAME"}, fields)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := Default()
		cfg.FavoritesBackend = "etcd"
		assert.ErrorContains(t, ValidateConfig(cfg), "unknown backend")
	})

	t.Run("redis url satisfies host and port", func(t *testing.T) {
		cfg := Default()
		cfg.FavoritesBackend = BackendRedis
		cfg.RedisHost = ""
		cfg.RedisPort = ""
		cfg.RedisURL = "redis://cache:6379"
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("memory backend rejected in production", func(t *testing.T) {
		t.Setenv("RECIPEHUB_ENV", "production")
		cfg := Default()
		cfg.FavoritesBackend = BackendMemory
		assert.ErrorContains(t, ValidateConfig(cfg), "not durable")
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("RECIPEHUB_ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
