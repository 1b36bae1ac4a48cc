package database

import (
	"ecommerce-api/internal/model"
	"ecommerce-api/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the MySQL connection and configures the pool. The returned
// handle is owned by the caller; nothing here is kept in a package variable.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Error
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Map driver duplicate-key errors to gorm.ErrDuplicatedKey so the
		// store can translate them.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings from config
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

// Migrate creates the users, orders, products and order_product tables if
// absent. A failure here is not fatal to process start; the caller logs it
// and continues degraded.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{})
}
