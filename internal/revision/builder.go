package revision

import (
	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/scoring"
)

// buildRecord derives the full score record of one (entry, tier) pair from
// the reference tune and the matching record of the previous valid revision.
// prior is nil when the tune has never been recorded on this tier.
//
// Deterministic given its inputs. The rating is recomputed even when the
// score is unchanged.
func buildRecord(entry *RawEntry, tier string, tune *datastore.Tune, prior *datastore.ScoreRecord) (datastore.ScoreRecord, error) {
	rec := datastore.ScoreRecord{
		Tier:   tier,
		TuneID: tune.TuneID,
		Title:  tune.Title,
		Artist: tune.Artist,
		Level:  tune.Level(tier),
	}

	playDate, err := entry.playDate()
	if err != nil {
		return datastore.ScoreRecord{}, err
	}
	rec.LastPlayDate = playDate

	score := entry.Score(tier)
	if score < 0 {
		score = 0
		rec.IsPlayed = false
	} else {
		rec.IsPlayed = score > 0
	}
	rec.Score = score
	rec.IsFullCombo = entry.FullCombo(tier)
	rec.Rating = string(scoring.RatingForScore(score))

	markers, err := scoring.DecodeMusicbar(entry.Musicbar(tier))
	if err != nil {
		return datastore.ScoreRecord{}, err
	}
	rec.Musicbar = packMarkers(markers)
	rec.NoGray = scoring.NoGray(markers)
	rec.AllYellow = scoring.AllYellow(markers)

	var priorScore int
	if prior != nil {
		priorScore = prior.Score
	}
	rec.ScoreDiff = score - priorScore

	// The update timestamp only moves when the score moved; otherwise it is
	// carried forward from the prior record, or stays unset on a first
	// submission with no change.
	switch {
	case rec.ScoreDiff != 0:
		rec.LastUpdateDate = playDate
	case prior != nil:
		rec.LastUpdateDate = prior.LastUpdateDate
	}

	return rec, nil
}

// packMarkers stores decoded markers one byte each for persistence.
func packMarkers(markers []scoring.Marker) []byte {
	if len(markers) == 0 {
		return nil
	}
	out := make([]byte, len(markers))
	for i, m := range markers {
		out[i] = byte(m)
	}
	return out
}

// UnpackMarkers restores the marker sequence of a persisted record.
func UnpackMarkers(data []byte) []scoring.Marker {
	if len(data) == 0 {
		return nil
	}
	out := make([]scoring.Marker, len(data))
	for i, b := range data {
		out[i] = scoring.Marker(b)
	}
	return out
}
