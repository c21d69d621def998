package revision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/errors"
	"github.com/jukevis/jukevis/internal/scoring"
)

const testTuneLimit = 1000

func setupLedger(t *testing.T) *datastore.DataStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to create test database")
	require.NoError(t, db.AutoMigrate(&datastore.Tune{}, &datastore.ScoreRevision{}, &datastore.ScoreRecord{}))

	ds := &datastore.DataStore{DB: db}
	require.NoError(t, ds.SaveTunes([]datastore.Tune{
		{TuneID: 1, Title: "A", LevelBasic: 5, LevelAdvanced: 7, LevelExtra: 9},
		{TuneID: 2, Title: "B", Artist: "Someone", LevelBasic: 4},
	}))
	return ds
}

func submitOne(t *testing.T, ds datastore.Interface, entries []RawEntry) string {
	t.Helper()
	id, err := NewCommitter(ds, testTuneLimit, nil).Submit(context.Background(), entries)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func TestSubmitFirstBatch(t *testing.T) {
	ds := setupLedger(t)

	submitOne(t, ds, []RawEntry{{
		TuneID:         1,
		ScoreBasic:     985000,
		FullComboBasic: true,
		MusicbarBasic:  allYellowBar(),
		LastPlayDate:   "2024-01-01T00:00:00",
	}})

	svc := NewService(ds)
	records, err := svc.CurrentScores(datastore.TierBasic)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, string(scoring.RatingSSS), rec.Rating)
	assert.True(t, rec.IsPlayed)
	assert.Equal(t, 985000, rec.ScoreDiff)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rec.LastUpdateDate)
	assert.True(t, rec.NoGray)
	assert.True(t, rec.AllYellow)

	// One record per tier for each resolved entry.
	all, err := svc.CurrentScores("")
	require.NoError(t, err)
	assert.Len(t, all, len(datastore.Tiers))
}

func TestSubmitUnchangedScoreKeepsUpdateDate(t *testing.T) {
	ds := setupLedger(t)

	submitOne(t, ds, []RawEntry{{
		TuneID:        1,
		ScoreBasic:    900000,
		MusicbarBasic: allYellowBar(),
		LastPlayDate:  "2024-01-01T00:00:00",
	}})

	submitOne(t, ds, []RawEntry{{
		TuneID:        1,
		ScoreBasic:    900000,
		MusicbarBasic: allYellowBar(),
		LastPlayDate:  "2024-06-01T12:00:00",
	}})

	records, err := NewService(ds).CurrentScores(datastore.TierBasic)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Zero(t, rec.ScoreDiff)
	assert.Equal(t, 900000, rec.Score)
	assert.Equal(t, string(scoring.RatingS), rec.Rating)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rec.LastUpdateDate,
		"unchanged score must keep the original update date")
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), rec.LastPlayDate)
}

func TestSubmitImprovedScoreDiffsAgainstPrior(t *testing.T) {
	ds := setupLedger(t)

	submitOne(t, ds, []RawEntry{{
		TuneID: 1, ScoreBasic: 900000, MusicbarBasic: allYellowBar(),
		LastPlayDate: "2024-01-01T00:00:00",
	}})
	submitOne(t, ds, []RawEntry{{
		TuneID: 1, ScoreBasic: 960000, MusicbarBasic: allYellowBar(),
		LastPlayDate: "2024-02-01T00:00:00",
	}})

	records, err := NewService(ds).CurrentScores(datastore.TierBasic)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 60000, records[0].ScoreDiff)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), records[0].LastUpdateDate)
}

func TestSubmitSkipsUnknownTunes(t *testing.T) {
	ds := setupLedger(t)

	submitOne(t, ds, []RawEntry{
		{TuneID: 999, ScoreBasic: 500000, LastPlayDate: "2024-01-01T00:00:00"},
		{TuneID: 1, ScoreBasic: 700000, MusicbarBasic: allYellowBar(), LastPlayDate: "2024-01-01T00:00:00"},
	})

	records, err := NewService(ds).CurrentScores(datastore.TierBasic)
	require.NoError(t, err)
	require.Len(t, records, 1, "unknown tune is dropped, batch continues")
	assert.Equal(t, 1, records[0].TuneID)
}

func TestSubmitMalformedEntryAbortsBatch(t *testing.T) {
	ds := setupLedger(t)

	before := submitOne(t, ds, []RawEntry{{
		TuneID: 1, ScoreBasic: 900000, MusicbarBasic: allYellowBar(),
		LastPlayDate: "2024-01-01T00:00:00",
	}})

	_, err := NewCommitter(ds, testTuneLimit, nil).Submit(context.Background(), []RawEntry{
		{TuneID: 1, ScoreBasic: 950000, MusicbarBasic: allYellowBar(), LastPlayDate: "2024-02-01T00:00:00"},
		{TuneID: 2, ScoreBasic: 800000, LastPlayDate: "garbage"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedEntry))

	// The ledger is unchanged and the aborted revision left nothing behind.
	rev, err := NewService(ds).LatestRevision()
	require.NoError(t, err)
	assert.Equal(t, before, rev.UUID)

	var revCount int64
	require.NoError(t, ds.DB.Model(&datastore.ScoreRevision{}).Count(&revCount).Error)
	assert.EqualValues(t, 1, revCount, "aborted revision must be deleted")

	records, err := NewService(ds).CurrentScores(datastore.TierBasic)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 900000, records[0].Score)
}

func TestSubmitDecodeErrorAbortsBatch(t *testing.T) {
	ds := setupLedger(t)

	_, err := NewCommitter(ds, testTuneLimit, nil).Submit(context.Background(), []RawEntry{{
		TuneID:        1,
		ScoreBasic:    900000,
		MusicbarBasic: "%%%bad%%%",
		LastPlayDate:  "2024-01-01T00:00:00",
	}})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryDecoding))

	_, err = NewService(ds).LatestRevision()
	assert.True(t, errors.Is(err, datastore.ErrRevisionNotFound))

	var revCount int64
	require.NoError(t, ds.DB.Model(&datastore.ScoreRevision{}).Count(&revCount).Error)
	assert.Zero(t, revCount)
}

func TestSubmitCancelledContext(t *testing.T) {
	ds := setupLedger(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCommitter(ds, testTuneLimit, nil).Submit(ctx, []RawEntry{{
		TuneID: 1, ScoreBasic: 900000, MusicbarBasic: allYellowBar(),
		LastPlayDate: "2024-01-01T00:00:00",
	}})
	require.Error(t, err)

	var revCount int64
	require.NoError(t, ds.DB.Model(&datastore.ScoreRevision{}).Count(&revCount).Error)
	assert.Zero(t, revCount, "cancelled batch must not leave a revision behind")
}

func TestSubmitEmptyBatchCommitsEmptyRevision(t *testing.T) {
	ds := setupLedger(t)

	id := submitOne(t, ds, nil)

	rev, err := NewService(ds).LatestRevision()
	require.NoError(t, err)
	assert.Equal(t, id, rev.UUID)

	records, err := NewService(ds).CurrentScores("")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCurrentScoresEmptyLedger(t *testing.T) {
	ds := setupLedger(t)

	records, err := NewService(ds).CurrentScores("")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSubmitStaleCatalogEntriesDropped(t *testing.T) {
	ds := setupLedger(t)

	// Records of a tune later missing from the catalog never resurface: each
	// batch joins against the current catalog only.
	submitOne(t, ds, []RawEntry{{
		TuneID: 2, ScoreBasic: 600000, LastPlayDate: "2024-01-01T00:00:00",
	}})
	require.NoError(t, ds.DB.Where("tune_id = ?", 2).Delete(&datastore.Tune{}).Error)

	submitOne(t, ds, []RawEntry{{
		TuneID: 2, ScoreBasic: 650000, LastPlayDate: "2024-02-01T00:00:00",
	}})

	records, err := NewService(ds).CurrentScores(datastore.TierBasic)
	require.NoError(t, err)
	assert.Empty(t, records)
}
