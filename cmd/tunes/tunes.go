// Package tunes implements the reference catalog loader command.
package tunes

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jukevis/jukevis/internal/conf"
	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/logging"
)

// tuneEntry is the wire form of one reference tune in the input file.
type tuneEntry struct {
	TuneID        int    `json:"tune_id"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	LevelBasic    int    `json:"level_bas"`
	LevelAdvanced int    `json:"level_adv"`
	LevelExtra    int    `json:"level_ext"`
}

// Command returns the tunes subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tunes",
		Short: "Load or update the reference tune catalog from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(settings, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON file holding an array of tunes")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runLoad(settings *conf.Settings, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read tunes file: %w", err)
	}

	var entries []tuneEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse tunes file: %w", err)
	}

	tunes := make([]datastore.Tune, 0, len(entries))
	for _, e := range entries {
		if e.TuneID <= 0 || e.Title == "" {
			return fmt.Errorf("invalid tune entry: tune_id=%d title=%q", e.TuneID, e.Title)
		}
		tunes = append(tunes, datastore.Tune{
			TuneID:        e.TuneID,
			Title:         e.Title,
			Artist:        e.Artist,
			LevelBasic:    e.LevelBasic,
			LevelAdvanced: e.LevelAdvanced,
			LevelExtra:    e.LevelExtra,
		})
	}

	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database output enabled in configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer func() {
		if err := ds.Close(); err != nil {
			logging.Error("Failed to close datastore", "error", err)
		}
	}()

	if err := ds.SaveTunes(tunes); err != nil {
		return fmt.Errorf("failed to save tunes: %w", err)
	}

	fmt.Printf("Loaded %d tunes into the reference catalog\n", len(tunes))
	return nil
}
