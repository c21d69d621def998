package datastore

import (
	"log/slog"
	"sync"

	"github.com/jukevis/jukevis/internal/logging"
)

var (
	datastoreLogger *slog.Logger
	loggerOnce      sync.Once
)

// GetLogger returns the datastore service logger, falling back to the default
// slog logger when logging has not been initialized.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		datastoreLogger = logging.ForService("datastore")
		if datastoreLogger == nil {
			datastoreLogger = slog.Default().With("service", "datastore")
		}
	})
	return datastoreLogger
}
