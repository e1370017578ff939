package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-site/internal/config"
	"auction-site/internal/models"
	"auction-site/utils"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured relational store and tunes its pool
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.DBDriver)
	}

	logLevel := logger.Silent
	if utils.DebugEnabled() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("database: failed to connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: failed to get database instance: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// one writer at a time; concurrent requests queue on the pool
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	}

	utils.Info("database connected", map[string]any{"driver": cfg.DBDriver})
	return db, nil
}

// Migrate creates or updates every table of the auction schema
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Listing{},
		&models.Bid{},
		&models.Comment{},
		&models.WatchlistEntry{},
	)
	if err != nil {
		return fmt.Errorf("database: migration failed: %w", err)
	}
	return nil
}

// SeedCategories makes sure each named category exists
func SeedCategories(ctx context.Context, db *gorm.DB, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category := models.Category{Name: name}
		if err := db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("database: seed category %q: %w", name, err)
		}
	}
	return nil
}

// Ping checks that the underlying connection is alive
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
