package db

import (
	"database/sql"
	"fmt"
	"time"

	"songvault/config"
	"songvault/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the MySQL connection through GORM and returns it alongside
// the underlying *sql.DB, which the song store queries directly.
func Connect(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gdb, sqlDB, nil
}

// AutoMigrate ensures the songs table exists with the current schema.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.Song{}); err != nil {
		return fmt.Errorf("failed to migrate songs table: %w", err)
	}
	return nil
}
