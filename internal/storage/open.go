package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipehub/config"
	"github.com/pageza/recipehub/internal/database"
)

// Open connects the favorites backend selected by cfg.FavoritesBackend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KV, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.FavoritesBackend {
	case config.BackendMemory:
		return NewMemoryKV(), nil

	case config.BackendFile, "":
		return NewFileKV(cfg.FavoritesDir)

	case config.BackendRedis:
		client, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisKV(client, cfg.RedisKeyPrefix), nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := migrateOrClose(db); err != nil {
			return nil, err
		}
		return NewSQLKV(db), nil

	case config.BackendPostgres:
		conn, err := database.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		db, err := conn.Gorm()
		if err != nil {
			conn.Close()
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			conn.Close()
			return nil, err
		}
		return NewSQLKV(db), nil

	case config.BackendS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3KV(s3cfg), nil
	}

	return nil, fmt.Errorf("unknown favorites backend %q", cfg.FavoritesBackend)
}

// migrateOrClose migrates db and releases its pool if that fails.
func migrateOrClose(db *gorm.DB) error {
	if err := database.Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return err
	}
	return nil
}
