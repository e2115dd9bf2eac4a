package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB     *gorm.DB
	Driver string
}

func Init(driver, dsn string) *Database {
	var db *gorm.DB
	var err error

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch driver {
	case "mysql":
		db, err = initMySQL(dsn, config)
	case "sqlite":
		db, err = initSQLite(dsn, config)
	default:
		log.Fatalf("unsupported database driver: %s", driver)
	}

	if err != nil {
		log.Fatalf("database connection failed (%s): %v", driver, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	return &Database{
		DB:     db,
		Driver: driver,
	}
}

func initMySQL(dsn string, config *gorm.Config) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql DSN is not set")
	}
	return gorm.Open(mysql.Open(dsn), config)
}

func initSQLite(dsn string, config *gorm.Config) (*gorm.DB, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}
	return gorm.Open(sqlite.Open(dsn), config)
}

func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
