package datastore

import (
	"gorm.io/gorm/clause"
)

// SaveTunes bulk-upserts reference tunes keyed by their tune identifier.
// Used by the reference data loader; records are never deleted here.
func (ds *DataStore) SaveTunes(tunes []Tune) error {
	if len(tunes) == 0 {
		return nil
	}

	err := ds.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tune_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "artist", "level_basic", "level_advanced", "level_extra",
		}),
	}).Create(&tunes).Error
	if err != nil {
		return dbError(err, "save_tunes", "", "tune_count", len(tunes))
	}

	GetLogger().Debug("Saved reference tunes", "count", len(tunes))
	return nil
}

// GetAllTunes retrieves up to limit reference tunes ordered by tune identifier.
func (ds *DataStore) GetAllTunes(limit int) ([]Tune, error) {
	var tunes []Tune
	if err := ds.DB.Order("tune_id").Limit(limit).Find(&tunes).Error; err != nil {
		return nil, dbError(err, "get_all_tunes", "")
	}
	return tunes, nil
}

// GetTune retrieves a single reference tune by its tune identifier.
func (ds *DataStore) GetTune(tuneID int) (Tune, error) {
	var tune Tune
	err := ds.DB.Where("tune_id = ?", tuneID).First(&tune).Error
	if err != nil {
		return Tune{}, dbError(err, "get_tune", "", "tune_id", tuneID)
	}
	return tune, nil
}
