// Command seed resets the database to the demo dataset used for local
// development: two students with funded wallets and two vendors. All
// existing rows are removed first.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/campuspay/backend/infra"
	infrarepo "github.com/campuspay/backend/infra/repository"
	"github.com/campuspay/backend/pkg/config"
	"github.com/campuspay/backend/pkg/dto"
)

// Balances are in paise: STU001 starts with ₹1000, STU002 with ₹1500.
var students = []dto.StudentCreate{
	{StudentID: "STU001", Name: "John Doe", Balance: 100000, ParentID: "PAR001", Class: "10th", Section: "A"},
	{StudentID: "STU002", Name: "Jane Smith", Balance: 150000, ParentID: "PAR002", Class: "9th", Section: "B"},
}

var vendors = []dto.VendorCreate{
	{VendorID: "VEN001", Name: "Cafeteria Store", UpiID: "cafeteria@upi", StoreType: "Food"},
	{VendorID: "VEN002", Name: "Stationary Shop", UpiID: "stationary@upi", StoreType: "Stationary"},
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger := slog.Default()
	logger.Warn("clearing existing data")
	if err := db.Exec("TRUNCATE TABLE transactions, students, vendors RESTART IDENTITY").Error; err != nil {
		return fmt.Errorf("failed to clear tables: %w", err)
	}

	ctx := context.Background()
	uow := infrarepo.NewUoW(db)

	for _, s := range students {
		if err := uow.Students().Create(ctx, s); err != nil {
			return fmt.Errorf("failed to create student %s: %w", s.StudentID, err)
		}
		logger.Info("student created", "student_id", s.StudentID, "balance_minor", s.Balance)
	}
	for _, v := range vendors {
		if err := uow.Vendors().Create(ctx, v); err != nil {
			return fmt.Errorf("failed to create vendor %s: %w", v.VendorID, err)
		}
		logger.Info("vendor created", "vendor_id", v.VendorID)
	}

	logger.Info("seeding complete")
	return nil
}
