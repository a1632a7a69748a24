// Package database opens the SQLite store and keeps the schema current.
package database

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/warrenhq/warren/internal/server/models"
	"github.com/warrenhq/warren/pkg/logger"
)

// Open connects to the SQLite database at path and migrates the schema.
// Foreign key enforcement is enabled on the connection; cascade deletes and
// the history SET NULL behavior depend on it.
func Open(path string) (*gorm.DB, error) {
	return openDSN(fmt.Sprintf("%s?_foreign_keys=on", path))
}

var memSeq atomic.Int64

// OpenInMemory opens a fresh named in-memory database, used by tests. The
// shared cache keeps the database alive across pooled connections.
func OpenInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:warren-mem-%d?mode=memory&cache=shared&_foreign_keys=on", memSeq.Add(1))
	return openDSN(dsn)
}

func openDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Debug("database ready")
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Folder{},
		&models.Request{},
		&models.Environment{},
		&models.Variable{},
		&models.History{},
	)
}
