// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"github.com/jukevis/jukevis/internal/conf"
	"gorm.io/gorm"
)

// Interface abstracts the underlying database implementation and defines the
// operations the ledger needs from its store.
type Interface interface {
	Open() error
	Close() error

	// Reference catalog
	SaveTunes(tunes []Tune) error
	GetAllTunes(limit int) ([]Tune, error)
	GetTune(tuneID int) (Tune, error)

	// Revision ledger
	CreateRevision(rev *ScoreRevision) error
	DeleteRevision(rev *ScoreRevision) error
	LatestValidRevision() (ScoreRevision, error)
	GetRecords(revisionID uint, tier string) ([]ScoreRecord, error)
	CommitRevision(rev *ScoreRevision, records []ScoreRecord) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore based on the provided settings. Returns nil if
// no database output is enabled.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// Open on a bare DataStore verifies a connection was injected. The concrete
// stores shadow this with real connection setup.
func (ds *DataStore) Open() error {
	if ds.DB == nil {
		return validationError("database connection is not initialized", "db", nil)
	}
	return nil
}

// Close closes the underlying database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return dbError(err, "close", "")
	}
	return sqlDB.Close()
}
