package db

import (
	"strings"

	"gorm.io/gorm"

	"github.com/oxhq/strata/models"
)

// Migrate applies the relational schema shared by both dialects: one
// Project row per analysis target plus its four per-project child tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.FileRecord{},
		&models.FunctionRecord{},
		&models.ComplexityRecord{},
		&models.DependencyRecord{},
	)
}

// Connect dispatches to ConnectSQLite or ConnectPostgres based on the DSN
// scheme, so callers configured only with a DATABASE_URL never need to
// know which dialect it names.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	if isPostgres(dsn) {
		return ConnectPostgres(dsn, debug)
	}
	return ConnectSQLite(dsn, debug)
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
