package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/errors"
	"github.com/jukevis/jukevis/internal/revision"
)

// ScoreResponse represents one score record in API responses.
type ScoreResponse struct {
	TuneID      int    `json:"tuneId"`
	Tier        string `json:"tier"`
	Title       string `json:"title"`
	Artist      string `json:"artist,omitempty"`
	Level       int    `json:"level,omitempty"`
	Score       int    `json:"score"`
	IsPlayed    bool   `json:"isPlayed"`
	IsFullCombo bool   `json:"isFullCombo"`
	Rating      string `json:"rating"`
	Musicbar    []int  `json:"musicbar,omitempty"`
	NoGray      bool   `json:"noGray"`
	AllYellow   bool   `json:"allYellow"`
	ScoreDiff   int    `json:"scoreDiff"`

	LastPlayDate   string `json:"lastPlayDate,omitempty"`
	LastUpdateDate string `json:"lastUpdateDate,omitempty"`
}

// SubmitResponse is the body returned by a successful batch submission.
type SubmitResponse struct {
	Revision string `json:"revision"`
	Entries  int    `json:"entries"`
}

func scoreResponse(rec *datastore.ScoreRecord) ScoreResponse {
	resp := ScoreResponse{
		TuneID:      rec.TuneID,
		Tier:        rec.Tier,
		Title:       rec.Title,
		Artist:      rec.Artist,
		Level:       rec.Level,
		Score:       rec.Score,
		IsPlayed:    rec.IsPlayed,
		IsFullCombo: rec.IsFullCombo,
		Rating:      rec.Rating,
		NoGray:      rec.NoGray,
		AllYellow:   rec.AllYellow,
		ScoreDiff:   rec.ScoreDiff,
	}
	for _, m := range revision.UnpackMarkers(rec.Musicbar) {
		resp.Musicbar = append(resp.Musicbar, int(m))
	}
	if !rec.LastPlayDate.IsZero() {
		resp.LastPlayDate = rec.LastPlayDate.UTC().Format(revision.PlayDateLayout)
	}
	if !rec.LastUpdateDate.IsZero() {
		resp.LastUpdateDate = rec.LastUpdateDate.UTC().Format(revision.PlayDateLayout)
	}
	return resp
}

func validTier(tier string) bool {
	if tier == "" {
		return true
	}
	for _, t := range datastore.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// GetScores handles GET /api/v1/scores?tier=
func (c *Controller) GetScores(ctx echo.Context) error {
	tier := ctx.QueryParam("tier")
	if !validTier(tier) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown tier %q", tier))
	}

	cacheKey := "scores:" + tier
	if cached, found := c.scoresCache.Get(cacheKey); found {
		return ctx.JSON(http.StatusOK, cached)
	}

	records, err := c.ledger.CurrentScores(tier)
	if err != nil {
		c.logger.Error("Failed to read current scores", "tier", tier, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read scores")
	}

	resp := make([]ScoreResponse, 0, len(records))
	for i := range records {
		resp = append(resp, scoreResponse(&records[i]))
	}

	c.scoresCache.Set(cacheKey, resp, cache.DefaultExpiration)
	return ctx.JSON(http.StatusOK, resp)
}

// SubmitScores handles POST /api/v1/scores
func (c *Controller) SubmitScores(ctx echo.Context) error {
	var entries []revision.RawEntry
	if err := ctx.Bind(&entries); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	c.submitMutex.Lock()
	defer c.submitMutex.Unlock()

	start := time.Now()
	revisionID, err := c.committer.Submit(ctx.Request().Context(), entries)
	if err != nil {
		switch {
		case errors.Is(err, revision.ErrMalformedEntry),
			errors.HasCategory(err, errors.CategoryDecoding):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			c.logger.Error("Batch submission failed", "error", err, "duration", time.Since(start))
			return echo.NewHTTPError(http.StatusInternalServerError, "batch rejected, no ledger change")
		}
	}

	c.scoresCache.Flush()
	return ctx.JSON(http.StatusCreated, SubmitResponse{
		Revision: revisionID,
		Entries:  len(entries),
	})
}
