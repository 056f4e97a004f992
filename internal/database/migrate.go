package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipehub/internal/models"
)

// Migrate creates or updates the tables the SQL storage backend needs. The
// schema is a single key/value table, so GORM auto-migration covers both
// SQLite and Postgres.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", db.Dialector.Name(), err)
	}
	return nil
}
