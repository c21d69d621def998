package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jukevis/jukevis/internal/datastore"
)

// TuneResponse represents one reference tune in API responses.
type TuneResponse struct {
	TuneID int            `json:"tuneId"`
	Title  string         `json:"title"`
	Artist string         `json:"artist,omitempty"`
	Levels map[string]int `json:"levels"`
}

// GetTunes handles GET /api/v1/tunes
func (c *Controller) GetTunes(ctx echo.Context) error {
	tunes, err := c.DS.GetAllTunes(c.Settings.Ledger.TuneLimit)
	if err != nil {
		c.logger.Error("Failed to read tunes", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read tunes")
	}

	resp := make([]TuneResponse, 0, len(tunes))
	for i := range tunes {
		t := &tunes[i]
		levels := make(map[string]int, len(datastore.Tiers))
		for _, tier := range datastore.Tiers {
			if lv := t.Level(tier); lv > 0 {
				levels[tier] = lv
			}
		}
		resp = append(resp, TuneResponse{
			TuneID: t.TuneID,
			Title:  t.Title,
			Artist: t.Artist,
			Levels: levels,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}
