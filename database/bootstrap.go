package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"greenhouse/config"
	"greenhouse/entities"
)

// Open connects to the configured database and migrates the schema.
// sqlite is the default; postgres and mysql take their DSN from DB_DSN.
func Open(cfg config.AppConfig) *gorm.DB {
	var dial gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dial = postgres.Open(cfg.DBDSN)
	case "mysql":
		dial = mysql.Open(cfg.DBDSN)
	case "sqlite":
		dial = sqlite.Open(cfg.DBPath)
	default:
		log.Fatalf("unsupported database driver: %s", cfg.DBDriver)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		log.Fatalf("open %s: %v", cfg.DBDriver, err)
	}

	if err := db.AutoMigrate(
		&entities.Experiment{},
		&entities.Measurement{},
		&entities.InvalidMeasurement{},
		&entities.Configuration{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}
