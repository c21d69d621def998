package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTunes(t *testing.T) {
	t.Run("InsertAndFetch", func(t *testing.T) {
		ds := setupTestDB(t)

		err := ds.SaveTunes([]Tune{
			{TuneID: 2, Title: "B", Artist: "Artist B", LevelBasic: 3, LevelAdvanced: 6, LevelExtra: 9},
			{TuneID: 1, Title: "A", LevelBasic: 5},
		})
		require.NoError(t, err)

		tunes, err := ds.GetAllTunes(1000)
		require.NoError(t, err)
		require.Len(t, tunes, 2)
		assert.Equal(t, 1, tunes[0].TuneID, "tunes ordered by tune id")
		assert.Equal(t, "A", tunes[0].Title)
	})

	t.Run("UpsertByTuneID", func(t *testing.T) {
		ds := setupTestDB(t)

		require.NoError(t, ds.SaveTunes([]Tune{{TuneID: 1, Title: "Old", LevelBasic: 4}}))
		require.NoError(t, ds.SaveTunes([]Tune{{TuneID: 1, Title: "New", Artist: "X", LevelBasic: 5}}))

		tune, err := ds.GetTune(1)
		require.NoError(t, err)
		assert.Equal(t, "New", tune.Title)
		assert.Equal(t, "X", tune.Artist)
		assert.Equal(t, 5, tune.LevelBasic)

		tunes, err := ds.GetAllTunes(1000)
		require.NoError(t, err)
		assert.Len(t, tunes, 1, "upsert must not duplicate")
	})

	t.Run("EmptySliceIsNoop", func(t *testing.T) {
		ds := setupTestDB(t)
		require.NoError(t, ds.SaveTunes(nil))
	})

	t.Run("LimitRespected", func(t *testing.T) {
		ds := setupTestDB(t)
		require.NoError(t, ds.SaveTunes([]Tune{
			{TuneID: 1, Title: "A"},
			{TuneID: 2, Title: "B"},
			{TuneID: 3, Title: "C"},
		}))

		tunes, err := ds.GetAllTunes(2)
		require.NoError(t, err)
		assert.Len(t, tunes, 2)
	})
}

func TestTuneLevel(t *testing.T) {
	tune := Tune{TuneID: 1, Title: "A", LevelBasic: 3, LevelAdvanced: 6, LevelExtra: 9}

	assert.Equal(t, 3, tune.Level(TierBasic))
	assert.Equal(t, 6, tune.Level(TierAdvanced))
	assert.Equal(t, 9, tune.Level(TierExtra))
	assert.Zero(t, tune.Level("bogus"))
}
