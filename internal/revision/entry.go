// Package revision implements the revision computation and commit engine:
// diffing submitted scores against the previous valid snapshot and committing
// the derived records atomically.
package revision

import (
	"time"

	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/errors"
)

// PlayDateLayout is the fixed timestamp format of submitted entries,
// interpreted as UTC.
const PlayDateLayout = "2006-01-02T15:04:05"

// ErrMalformedEntry signals a submitted entry missing required fields or
// carrying an unparsable timestamp. Fatal for the whole batch.
var ErrMalformedEntry = errors.NewStd("malformed score entry")

// RawEntry is one submitted score entry covering all tiers of a tune.
type RawEntry struct {
	TuneID int `json:"tune_id"`

	ScoreBasic    int `json:"score_bas"`
	ScoreAdvanced int `json:"score_adv"`
	ScoreExtra    int `json:"score_ext"`

	FullComboBasic    bool `json:"fc_bas"`
	FullComboAdvanced bool `json:"fc_adv"`
	FullComboExtra    bool `json:"fc_ext"`

	MusicbarBasic    string `json:"mb_bas"`
	MusicbarAdvanced string `json:"mb_adv"`
	MusicbarExtra    string `json:"mb_ext"`

	LastPlayDate string `json:"last_play_date"`
}

// Score returns the submitted score of the given tier.
func (e *RawEntry) Score(tier string) int {
	switch tier {
	case datastore.TierBasic:
		return e.ScoreBasic
	case datastore.TierAdvanced:
		return e.ScoreAdvanced
	case datastore.TierExtra:
		return e.ScoreExtra
	default:
		return 0
	}
}

// FullCombo returns the submitted full-combo flag of the given tier.
func (e *RawEntry) FullCombo(tier string) bool {
	switch tier {
	case datastore.TierBasic:
		return e.FullComboBasic
	case datastore.TierAdvanced:
		return e.FullComboAdvanced
	case datastore.TierExtra:
		return e.FullComboExtra
	default:
		return false
	}
}

// Musicbar returns the submitted packed musicbar of the given tier.
func (e *RawEntry) Musicbar(tier string) string {
	switch tier {
	case datastore.TierBasic:
		return e.MusicbarBasic
	case datastore.TierAdvanced:
		return e.MusicbarAdvanced
	case datastore.TierExtra:
		return e.MusicbarExtra
	default:
		return ""
	}
}

// playDate parses the entry timestamp. An empty or unparsable value is a
// malformed entry.
func (e *RawEntry) playDate() (time.Time, error) {
	if e.LastPlayDate == "" {
		return time.Time{}, errors.New(ErrMalformedEntry).
			Component("revision").
			Category(errors.CategoryValidation).
			Context("tune_id", e.TuneID).
			Context("field", "last_play_date").
			Build()
	}
	t, err := time.ParseInLocation(PlayDateLayout, e.LastPlayDate, time.UTC)
	if err != nil {
		return time.Time{}, errors.New(ErrMalformedEntry).
			Component("revision").
			Category(errors.CategoryValidation).
			Context("tune_id", e.TuneID).
			Context("field", "last_play_date").
			Context("value", e.LastPlayDate).
			Build()
	}
	return t, nil
}
