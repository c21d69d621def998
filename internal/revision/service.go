package revision

import (
	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/errors"
)

// Service is the read side of the ledger: it resolves the latest valid
// revision and serves its records. Only committed revisions are ever visible
// through it.
type Service struct {
	ds datastore.Interface
}

// NewService creates a read service on the given store.
func NewService(ds datastore.Interface) *Service {
	return &Service{ds: ds}
}

// LatestRevision returns the latest valid revision. Returns
// datastore.ErrRevisionNotFound when the ledger is empty.
func (s *Service) LatestRevision() (datastore.ScoreRevision, error) {
	return s.ds.LatestValidRevision()
}

// CurrentScores returns the records of the latest valid revision, optionally
// scoped to one tier. An empty ledger yields an empty slice, not an error.
func (s *Service) CurrentScores(tier string) ([]datastore.ScoreRecord, error) {
	rev, err := s.ds.LatestValidRevision()
	if err != nil {
		if errors.Is(err, datastore.ErrRevisionNotFound) {
			return []datastore.ScoreRecord{}, nil
		}
		return nil, err
	}
	return s.ds.GetRecords(rev.ID, tier)
}
