package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database when passed to OpenSQLite.
const MemoryPath = ":memory:"

var memoryCounter uint64

// memoryDSN names a shared-cache in-memory database so every pooled
// connection sees the same data.
func memoryDSN() string {
	n := atomic.AddUint64(&memoryCounter, 1)
	return fmt.Sprintf("file:medical_forum_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), n)
}

func withForeignKeys(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// OpenSQLite opens the SQLite database stored at path with foreign key
// enforcement turned on for every connection. The parent directory is
// created when missing.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if path == "" || path == MemoryPath {
		dsn = memoryDSN()
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers anyway; one connection keeps in-memory
	// databases alive and avoids "table is locked" errors.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()
	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// ConnectDatabase opens the database selected by DBDRIVER. The test
// environment always gets a fresh in-memory SQLite database.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()
	if cfg.IsTest() {
		return OpenSQLite(MemoryPath)
	}
	switch cfg.DBDriver {
	case "mysql":
		return ConnectMySQL()
	case "sqlite", "":
		return OpenSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
