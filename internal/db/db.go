// Package db opens the sqlite-backed gorm handle and runs migrations.
package db

import (
	"fmt"
	"strings"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/billcraft/printgen/internal/config"
	"github.com/billcraft/printgen/internal/templatestore"
)

// Open connects to dsn and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "printgen.db"
	}

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", dsn, err)
	}

	if err := gdb.AutoMigrate(&templatestore.VoucherTemplate{}); err != nil {
		return nil, fmt.Errorf("db: migrate: %w", err)
	}
	return gdb, nil
}

// Module provides the gorm handle to the API binary.
var Module = fx.Module("db",
	fx.Provide(func(cfg *config.Config) (*gorm.DB, error) {
		return Open(cfg.Database.DSN)
	}),
)
