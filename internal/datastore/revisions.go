// revisions.go implements the revision ledger queries and the all-or-nothing commit
package datastore

import (
	"time"

	"gorm.io/gorm"

	"github.com/jukevis/jukevis/internal/errors"
)

// CreateRevision persists a new, not yet valid revision so it obtains an
// identifier. The revision stays invisible to LatestValidRevision until
// committed.
func (ds *DataStore) CreateRevision(rev *ScoreRevision) error {
	if rev == nil {
		return validationError("revision cannot be nil", "revision", nil)
	}
	if rev.UUID == "" {
		return validationError("revision UUID cannot be empty", "uuid", "")
	}
	rev.IsValid = false
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now().UTC()
	}

	if err := ds.DB.Create(rev).Error; err != nil {
		return dbError(err, "create_revision", "", "uuid", rev.UUID)
	}
	return nil
}

// DeleteRevision removes a revision and any records under it. Used to discard
// an aborted revision; child records are deleted in the same transaction.
func (ds *DataStore) DeleteRevision(rev *ScoreRevision) error {
	if rev == nil || rev.ID == 0 {
		return validationError("revision must be persisted before delete", "revision", rev)
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("revision_id = ?", rev.ID).Delete(&ScoreRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ScoreRevision{}, rev.ID).Error
	})
	if err != nil {
		return dbError(err, "delete_revision", errors.PriorityHigh, "revision_id", rev.ID)
	}
	return nil
}

// LatestValidRevision returns the valid revision with the highest creation
// time, ties broken by highest ID. Returns ErrRevisionNotFound when the
// ledger holds no valid revision yet.
func (ds *DataStore) LatestValidRevision() (ScoreRevision, error) {
	var rev ScoreRevision
	err := ds.DB.Where("is_valid = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		First(&rev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScoreRevision{}, notFoundError(ErrRevisionNotFound, "score_revision")
		}
		return ScoreRevision{}, dbError(err, "latest_valid_revision", "")
	}
	return rev, nil
}

// GetRecords returns all score records under the given revision, optionally
// filtered to one tier. Records are ordered by tune identifier.
func (ds *DataStore) GetRecords(revisionID uint, tier string) ([]ScoreRecord, error) {
	query := ds.DB.Where("revision_id = ?", revisionID)
	if tier != "" {
		query = query.Where("tier = ?", tier)
	}

	var records []ScoreRecord
	if err := query.Order("tune_id").Order("tier").Find(&records).Error; err != nil {
		return nil, dbError(err, "get_records", "", "revision_id", revisionID, "tier", tier)
	}
	return records, nil
}

// CommitRevision finalizes a revision: it flips the revision valid and writes
// every built record in a single transaction. Either the whole snapshot
// becomes visible or nothing does.
func (ds *DataStore) CommitRevision(rev *ScoreRevision, records []ScoreRecord) error {
	if rev == nil || rev.ID == 0 {
		return validationError("revision must be persisted before commit", "revision", rev)
	}

	start := time.Now()
	rev.IsValid = true

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rev).Error; err != nil {
			return err
		}
		for i := range records {
			records[i].RevisionID = rev.ID
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 200).Error
	})
	if err != nil {
		rev.IsValid = false
		return dbError(err, "commit_revision", errors.PriorityCritical,
			"revision_id", rev.ID, "record_count", len(records))
	}

	GetLogger().Info("Committed score revision",
		"revision_id", rev.ID,
		"uuid", rev.UUID,
		"records", len(records),
		"duration", time.Since(start))
	return nil
}
