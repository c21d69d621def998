package revision

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jukevis/jukevis/internal/catalog"
	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/errors"
	"github.com/jukevis/jukevis/internal/logging"
	"github.com/jukevis/jukevis/internal/observability"
)

// Committer builds and commits one revision per submitted batch. A committer
// run owns its revision for the whole construction lifecycle; callers must
// not run two submissions concurrently.
type Committer struct {
	ds      datastore.Interface
	limit   int // reference catalog read bound
	metrics *observability.LedgerMetrics
	logger  *slog.Logger
}

// NewCommitter creates a committer on the given store. metrics may be nil.
func NewCommitter(ds datastore.Interface, tuneLimit int, metrics *observability.LedgerMetrics) *Committer {
	logger := logging.ForService("revision")
	if logger == nil {
		logger = slog.Default().With("service", "revision")
	}
	return &Committer{
		ds:      ds,
		limit:   tuneLimit,
		metrics: metrics,
		logger:  logger,
	}
}

// Submit processes one batch of raw score entries into a new revision and
// commits it atomically. On success it returns the public identifier of the
// now-latest revision. On any failure the partially built revision is
// discarded and no record of the attempt remains queryable.
func (c *Committer) Submit(ctx context.Context, entries []RawEntry) (string, error) {
	start := time.Now()

	rev := &datastore.ScoreRevision{UUID: uuid.NewString()}
	if err := c.ds.CreateRevision(rev); err != nil {
		c.observeBatch(observability.BatchDiscarded, start)
		return "", err
	}

	records, skipped, err := c.buildBatch(ctx, entries)
	if err == nil {
		err = c.ds.CommitRevision(rev, records)
	}
	if err != nil {
		c.discard(rev, err)
		c.observeBatch(observability.BatchDiscarded, start)
		return "", err
	}

	c.metrics.RecordsBuilt(len(records))
	c.metrics.EntriesSkipped(skipped)
	c.observeBatch(observability.BatchCommitted, start)

	c.logger.Info("Batch committed",
		"revision", rev.UUID,
		"entries", len(entries),
		"records", len(records),
		"skipped", skipped,
		"duration", time.Since(start))
	return rev.UUID, nil
}

// buildBatch derives all records of the batch in memory. Nothing is persisted
// here; the commit is a single transaction performed by the caller.
func (c *Committer) buildBatch(ctx context.Context, entries []RawEntry) (records []datastore.ScoreRecord, skipped int, err error) {
	tunes := catalog.New(c.ds, c.limit)

	prior, err := c.priorRecords()
	if err != nil {
		return nil, 0, err
	}

	for _, tier := range datastore.Tiers {
		priorByTune := prior[tier]
		for i := range entries {
			if err := ctx.Err(); err != nil {
				return nil, 0, errors.New(err).
					Component("revision").
					Category(errors.CategoryState).
					Context("operation", "build_batch").
					Build()
			}

			entry := &entries[i]
			tune, ok, err := tunes.Lookup(entry.TuneID)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				// Unknown tune is the one per-entry recoverable condition:
				// drop the entry and keep going.
				if tier == datastore.TierBasic {
					c.logger.Debug("Skipping entry with unknown tune", "tune_id", entry.TuneID)
					skipped++
				}
				continue
			}

			var cur *datastore.ScoreRecord
			if r, ok := priorByTune[entry.TuneID]; ok {
				cur = &r
			}

			rec, err := buildRecord(entry, tier, &tune, cur)
			if err != nil {
				return nil, 0, err
			}
			records = append(records, rec)
		}
	}
	return records, skipped, nil
}

// priorRecords loads the records of the latest valid revision keyed by tier
// and tune. An empty ledger yields empty maps.
func (c *Committer) priorRecords() (map[string]map[int]datastore.ScoreRecord, error) {
	prior := make(map[string]map[int]datastore.ScoreRecord, len(datastore.Tiers))
	for _, tier := range datastore.Tiers {
		prior[tier] = map[int]datastore.ScoreRecord{}
	}

	rev, err := c.ds.LatestValidRevision()
	if err != nil {
		if errors.Is(err, datastore.ErrRevisionNotFound) {
			return prior, nil
		}
		return nil, err
	}

	for _, tier := range datastore.Tiers {
		records, err := c.ds.GetRecords(rev.ID, tier)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			prior[tier][r.TuneID] = r
		}
	}
	return prior, nil
}

// discard removes the orphaned invalid revision after a failed batch. The
// delete is best effort: a store already failing must not mask the original
// error.
func (c *Committer) discard(rev *datastore.ScoreRevision, cause error) {
	c.logger.Warn("Discarding revision after failed batch",
		"revision", rev.UUID,
		"error", cause)
	if err := c.ds.DeleteRevision(rev); err != nil {
		c.logger.Error("Failed to delete discarded revision",
			"revision", rev.UUID,
			"error", err)
	}
}

func (c *Committer) observeBatch(outcome string, start time.Time) {
	c.metrics.RecordBatch(outcome, time.Since(start))
}
