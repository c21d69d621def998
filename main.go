package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jukevis/jukevis/cmd"
	"github.com/jukevis/jukevis/internal/conf"
	"github.com/jukevis/jukevis/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	if settings.Debug {
		logging.SetLevel(slog.LevelDebug)
	}

	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(settings.Main.Log.Path, settings.Main.Name, slog.LevelInfo)
		if err != nil {
			logging.Warn("File logging disabled", "path", settings.Main.Log.Path, "error", err)
		} else {
			slog.SetDefault(fileLogger)
			defer func() {
				if err := closeLogger(); err != nil {
					fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
				}
			}()
		}
	}

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
