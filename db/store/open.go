package store

import (
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"combo-pricing/internal/config"
	"combo-pricing/internal/errors"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// OpenSQLite opens (creating parent directories as needed) a SQLite catalog
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Catalog("creating database directory failed", err).
				WithContext("path", dir)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, errors.Catalog("opening sqlite database failed", err).
			WithContext("path", path)
	}
	return db, nil
}

// OpenMySQL opens a MySQL catalog from a DSN
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, errors.Catalog("opening mysql database failed", err)
	}
	return db, nil
}

// Open dispatches on the configured driver
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "mysql":
		return OpenMySQL(cfg.DSN)
	case "sqlite", "":
		return OpenSQLite(cfg.Path)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported database driver: %s", cfg.Driver)
	}
}
