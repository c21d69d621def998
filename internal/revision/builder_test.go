package revision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/errors"
	"github.com/jukevis/jukevis/internal/scoring"
)

func testTune() *datastore.Tune {
	return &datastore.Tune{
		TuneID:        1,
		Title:         "A",
		Artist:        "Artist",
		LevelBasic:    5,
		LevelAdvanced: 7,
		LevelExtra:    9,
	}
}

func allYellowBar() string {
	return scoring.EncodeMusicbar([]scoring.Marker{
		scoring.MarkerYellow, scoring.MarkerYellow, scoring.MarkerYellow, scoring.MarkerYellow,
	})
}

func TestBuildRecordFirstSubmission(t *testing.T) {
	entry := &RawEntry{
		TuneID:         1,
		ScoreBasic:     985000,
		FullComboBasic: true,
		MusicbarBasic:  allYellowBar(),
		LastPlayDate:   "2024-01-01T00:00:00",
	}

	rec, err := buildRecord(entry, datastore.TierBasic, testTune(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.TuneID)
	assert.Equal(t, "A", rec.Title)
	assert.Equal(t, "Artist", rec.Artist)
	assert.Equal(t, 5, rec.Level)
	assert.Equal(t, 985000, rec.Score)
	assert.True(t, rec.IsPlayed)
	assert.True(t, rec.IsFullCombo)
	assert.Equal(t, string(scoring.RatingSSS), rec.Rating)
	assert.True(t, rec.NoGray)
	assert.True(t, rec.AllYellow)

	// No prior record: the diff is the full score and the update timestamp
	// matches the play timestamp.
	assert.Equal(t, 985000, rec.ScoreDiff)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, rec.LastPlayDate)
	assert.Equal(t, want, rec.LastUpdateDate)
}

func TestBuildRecordUnchangedScoreCarriesUpdateDate(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prior := &datastore.ScoreRecord{
		TuneID:         1,
		Tier:           datastore.TierBasic,
		Score:          900000,
		LastUpdateDate: t0,
	}
	entry := &RawEntry{
		TuneID:        1,
		ScoreBasic:    900000,
		MusicbarBasic: allYellowBar(),
		LastPlayDate:  "2024-06-01T10:30:00",
	}

	rec, err := buildRecord(entry, datastore.TierBasic, testTune(), prior)
	require.NoError(t, err)

	assert.Zero(t, rec.ScoreDiff)
	assert.Equal(t, t0, rec.LastUpdateDate, "unchanged score keeps the prior update date")
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), rec.LastPlayDate)
	// Rating is recomputed even without a score change.
	assert.Equal(t, string(scoring.RatingS), rec.Rating)
}

func TestBuildRecordImprovedScore(t *testing.T) {
	prior := &datastore.ScoreRecord{
		Score:          900000,
		LastUpdateDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	entry := &RawEntry{
		TuneID:        1,
		ScoreBasic:    960000,
		MusicbarBasic: allYellowBar(),
		LastPlayDate:  "2024-06-01T10:30:00",
	}

	rec, err := buildRecord(entry, datastore.TierBasic, testTune(), prior)
	require.NoError(t, err)

	assert.Equal(t, 60000, rec.ScoreDiff)
	assert.Equal(t, rec.LastPlayDate, rec.LastUpdateDate)
	assert.Equal(t, string(scoring.RatingSS), rec.Rating)
}

func TestBuildRecordRegressionYieldsNegativeDiff(t *testing.T) {
	prior := &datastore.ScoreRecord{Score: 900000}
	entry := &RawEntry{
		TuneID:        1,
		ScoreBasic:    850000,
		MusicbarBasic: allYellowBar(),
		LastPlayDate:  "2024-06-01T10:30:00",
	}

	rec, err := buildRecord(entry, datastore.TierBasic, testTune(), prior)
	require.NoError(t, err)
	assert.Equal(t, -50000, rec.ScoreDiff)
	assert.Equal(t, rec.LastPlayDate, rec.LastUpdateDate)
}

func TestBuildRecordNegativeScoreClamped(t *testing.T) {
	entry := &RawEntry{
		TuneID:       1,
		ScoreBasic:   -100,
		LastPlayDate: "2024-01-01T00:00:00",
	}

	rec, err := buildRecord(entry, datastore.TierBasic, testTune(), nil)
	require.NoError(t, err)

	assert.Zero(t, rec.Score)
	assert.False(t, rec.IsPlayed)
	assert.Equal(t, string(scoring.RatingNone), rec.Rating)
	assert.Zero(t, rec.ScoreDiff)
	assert.True(t, rec.LastUpdateDate.IsZero(), "no prior and no diff leaves the update date unset")
}

func TestBuildRecordTierFields(t *testing.T) {
	entry := &RawEntry{
		TuneID:           1,
		ScoreExtra:       700000,
		FullComboExtra:   true,
		MusicbarExtra:    allYellowBar(),
		ScoreBasic:       999999, // other tiers must not leak in
		FullComboBasic:   false,
		LastPlayDate:     "2024-01-01T00:00:00",
		MusicbarAdvanced: "garbage that must not be touched",
	}

	rec, err := buildRecord(entry, datastore.TierExtra, testTune(), nil)
	require.NoError(t, err)

	assert.Equal(t, datastore.TierExtra, rec.Tier)
	assert.Equal(t, 9, rec.Level)
	assert.Equal(t, 700000, rec.Score)
	assert.True(t, rec.IsFullCombo)
}

func TestBuildRecordMalformedTimestamp(t *testing.T) {
	for _, bad := range []string{"", "2024/01/01 00:00:00", "not-a-date"} {
		entry := &RawEntry{TuneID: 1, LastPlayDate: bad}

		_, err := buildRecord(entry, datastore.TierBasic, testTune(), nil)
		require.Error(t, err, "timestamp %q", bad)
		assert.True(t, errors.Is(err, ErrMalformedEntry))
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	}
}

func TestBuildRecordBadMusicbar(t *testing.T) {
	entry := &RawEntry{
		TuneID:        1,
		ScoreBasic:    900000,
		MusicbarBasic: "!!!not base64!!!",
		LastPlayDate:  "2024-01-01T00:00:00",
	}

	_, err := buildRecord(entry, datastore.TierBasic, testTune(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryDecoding))
}

func TestBuildRecordIncompleteMusicbar(t *testing.T) {
	// A bar with a null marker is treated as absent play data, not an error.
	entry := &RawEntry{
		TuneID:        1,
		ScoreBasic:    900000,
		MusicbarBasic: scoring.EncodeMusicbar([]scoring.Marker{scoring.MarkerYellow, scoring.MarkerNone, scoring.MarkerYellow, scoring.MarkerYellow}),
		LastPlayDate:  "2024-01-01T00:00:00",
	}

	rec, err := buildRecord(entry, datastore.TierBasic, testTune(), nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Musicbar)
	assert.False(t, rec.NoGray)
	assert.False(t, rec.AllYellow)
}

func TestMarkerPackingRoundTrip(t *testing.T) {
	markers := []scoring.Marker{scoring.MarkerGray, scoring.MarkerBlue, scoring.MarkerYellow}
	assert.Equal(t, markers, UnpackMarkers(packMarkers(markers)))
	assert.Nil(t, packMarkers(nil))
	assert.Nil(t, UnpackMarkers(nil))
}
