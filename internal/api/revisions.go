package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/errors"
)

// RevisionResponse represents revision metadata in API responses.
type RevisionResponse struct {
	Revision  string    `json:"revision"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetLatestRevision handles GET /api/v1/revisions/latest
func (c *Controller) GetLatestRevision(ctx echo.Context) error {
	rev, err := c.ledger.LatestRevision()
	if err != nil {
		if errors.Is(err, datastore.ErrRevisionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no revision committed yet")
		}
		c.logger.Error("Failed to resolve latest revision", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve latest revision")
	}

	return ctx.JSON(http.StatusOK, RevisionResponse{
		Revision:  rev.UUID,
		CreatedAt: rev.CreatedAt.UTC(),
	})
}
