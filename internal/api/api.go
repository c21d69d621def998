// Package api exposes the score ledger over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"

	"github.com/jukevis/jukevis/internal/conf"
	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/logging"
	"github.com/jukevis/jukevis/internal/observability"
	"github.com/jukevis/jukevis/internal/revision"
)

const (
	// scoresCacheTTL bounds staleness of the current-scores read cache.
	// Submissions flush the cache, so the TTL only matters for external
	// writers sharing the database.
	scoresCacheTTL = 1 * time.Minute
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	DS       datastore.Interface
	Settings *conf.Settings

	committer *revision.Committer
	ledger    *revision.Service
	metrics   *observability.Metrics

	// submitMutex serializes batch submissions: the committer assumes a
	// single writer.
	submitMutex sync.Mutex

	scoresCache *cache.Cache
	logger      *slog.Logger
}

// New creates the API controller and registers all routes.
func New(settings *conf.Settings, ds datastore.Interface, metrics *observability.Metrics) *Controller {
	logger := logging.ForService("api")
	if logger == nil {
		logger = slog.Default().With("service", "api")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	var ledgerMetrics *observability.LedgerMetrics
	if metrics != nil {
		ledgerMetrics = metrics.Ledger
	}

	c := &Controller{
		Echo:        e,
		DS:          ds,
		Settings:    settings,
		committer:   revision.NewCommitter(ds, settings.Ledger.TuneLimit, ledgerMetrics),
		ledger:      revision.NewService(ds),
		metrics:     metrics,
		scoresCache: cache.New(scoresCacheTTL, 2*scoresCacheTTL),
		logger:      logger,
	}

	c.Group = e.Group("/api/v1")
	c.initRoutes()
	return c
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.GetHealth)
	c.Group.GET("/scores", c.GetScores)
	c.Group.POST("/scores", c.SubmitScores)
	c.Group.GET("/tunes", c.GetTunes)
	c.Group.GET("/revisions/latest", c.GetLatestRevision)

	if c.metrics != nil {
		c.Echo.GET("/metrics", echo.WrapHandler(c.metrics.Handler()))
	}
}

// Start runs the HTTP server until it fails or is shut down.
func (c *Controller) Start() error {
	addr := ":" + c.Settings.WebServer.Port
	c.logger.Info("Starting HTTP server", "addr", addr)
	return c.Echo.Start(addr)
}

// GetHealth handles GET /api/v1/health
func (c *Controller) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
