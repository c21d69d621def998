package datastore

import (
	"log"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow and logged at warn level.
const DefaultSlowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(log.Default(), gormlogger.Config{
		SlowThreshold:             DefaultSlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// performAutoMigration runs gorm auto-migration for all ledger entities.
func performAutoMigration(db *gorm.DB, dbType string) error {
	migrationStart := time.Now()
	migrationLogger := GetLogger().With("db_type", dbType)

	migrationLogger.Debug("Starting database migration")

	if err := db.AutoMigrate(&Tune{}, &ScoreRevision{}, &ScoreRecord{}); err != nil {
		return dbError(err, "auto_migration", "", "db_type", dbType)
	}

	migrationLogger.Debug("Database migration completed successfully",
		"duration", time.Since(migrationStart))
	return nil
}
