// Package storage opens the database and keeps the schema current. The
// returned handle is passed explicitly to the stores that need it; there is
// no package-level connection.
package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"appdeck/internal/models"
)

// Open connects to the sqlite database at path and migrates the schema.
// Use ":memory:" for throwaway databases in tests.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// An in-memory database lives and dies with its connection, so the pool
	// must never open a second one.
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Plan{},
		&models.App{},
		&models.Subscription{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
