package database

import (
	"fmt"

	"github.com/sangkips/ledgerly-api/internal/config"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("running database migrations")

	err := db.AutoMigrate(
		// Tenant root and accounts
		&entity.Company{},
		&entity.User{},

		// Master data
		&entity.Customer{},
		&entity.Vendor{},
		&entity.Tax{},
		&entity.Carrier{},
		&entity.Product{},
		&entity.ProductStockLocation{},

		// Numbering
		&entity.Sequence{},

		// Documents
		&entity.Estimate{},
		&entity.EstimateItem{},
		&entity.SalesOrder{},
		&entity.SalesOrderItem{},
		&entity.DeliveryNote{},
		&entity.DeliveryNoteItem{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.Expense{},
		&entity.ExpenseItem{},

		// Money and stock movement ledgers
		&entity.Payment{},
		&entity.PaymentAllocation{},
		&entity.InventoryTransaction{},
		&entity.StatusHistory{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("database migrations completed")
	return nil
}
