// model.go defines the persisted entities of the score ledger
package datastore

import "time"

// Tier identifiers for the three difficulty charts of a tune.
const (
	TierBasic    = "bas"
	TierAdvanced = "adv"
	TierExtra    = "ext"
)

// Tiers lists all difficulty tiers in chart order.
var Tiers = []string{TierBasic, TierAdvanced, TierExtra}

// Tune is one reference item of the catalog. Rows are loaded from the
// reference data file and treated as immutable during a batch.
type Tune struct {
	ID            uint   `gorm:"primaryKey"`
	TuneID        int    `gorm:"uniqueIndex;not null"`
	Title         string `gorm:"not null"`
	Artist        string
	LevelBasic    int // 0 = chart not available on this tier
	LevelAdvanced int
	LevelExtra    int
}

// Level returns the difficulty level of the given tier, 0 if the tune has no
// chart on that tier.
func (t *Tune) Level(tier string) int {
	switch tier {
	case TierBasic:
		return t.LevelBasic
	case TierAdvanced:
		return t.LevelAdvanced
	case TierExtra:
		return t.LevelExtra
	default:
		return 0
	}
}

// ScoreRevision is one atomically committed snapshot of all score records.
// A revision is created invalid, populated, and either committed with
// IsValid=true or deleted. It is never otherwise mutated.
type ScoreRevision struct {
	ID        uint      `gorm:"primaryKey"`
	UUID      string    `gorm:"uniqueIndex;not null"` // public identifier
	IsValid   bool      `gorm:"index:idx_revisions_valid_created"`
	CreatedAt time.Time `gorm:"index:idx_revisions_valid_created"`
}

// ScoreRecord is the derived score state of one (tune, tier) pair under one
// revision. Tune metadata is copied in at build time as a snapshot.
type ScoreRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RevisionID uint   `gorm:"index:idx_records_revision_tier;not null"`
	Tier       string `gorm:"index:idx_records_revision_tier;not null"`
	TuneID     int    `gorm:"index;not null"`
	Title      string
	Artist     string
	Level      int

	Score       int
	IsPlayed    bool
	IsFullCombo bool
	Rating      string
	Musicbar    []byte `gorm:"type:blob"` // decoded markers, one per byte
	NoGray      bool
	AllYellow   bool
	ScoreDiff   int

	LastPlayDate   time.Time
	LastUpdateDate time.Time // zero time = never updated
}
