package database

import (
	"telemed-service/internal/model"
	"telemed-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the database connection with the provided configuration
// and returns the handle. The handle is injected into the repositories; no
// package keeps its own copy.
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	// Set default log level if not specified
	logLevel := cfg.DB.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// Connect to the database with DisableAutoPrepare option to prevent "prepared statement already exists" errors
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	// TranslateError maps unique-constraint violations onto gorm.ErrDuplicatedKey,
	// which the repositories rely on for race-safe duplicate detection.
	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	// AutoMigrate will automatically create or update the table structure based on our models
	err = db.AutoMigrate(
		&model.User{},
		&model.Patient{},
		&model.Doctor{},
		&model.HealthWorker{},
		&model.Otp{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
