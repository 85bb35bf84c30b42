// Package infra wires the ledger store's database connection.
package infra

import (
	"errors"
	"time"

	"github.com/campuspay/backend/infra/repository/student"
	"github.com/campuspay/backend/infra/repository/transaction"
	"github.com/campuspay/backend/infra/repository/vendor"
	"github.com/campuspay/backend/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the postgres connection pool for the ledger store.
func NewDBConnection(cfg *config.DB, appEnv string) (*gorm.DB, error) {
	if cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// Migrate creates or updates the ledger store schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&student.Student{},
		&vendor.Vendor{},
		&transaction.Transaction{},
	)
}
