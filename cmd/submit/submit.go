// Package submit implements the one-shot batch submission command.
package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jukevis/jukevis/internal/conf"
	"github.com/jukevis/jukevis/internal/datastore"
	"github.com/jukevis/jukevis/internal/logging"
	"github.com/jukevis/jukevis/internal/revision"
)

// Command returns the submit subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a score batch from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd.Context(), settings, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON file holding an array of score entries")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSubmit(ctx context.Context, settings *conf.Settings, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read submission file: %w", err)
	}

	var entries []revision.RawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse submission file: %w", err)
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

	committer := revision.NewCommitter(ds, settings.Ledger.TuneLimit, nil)
	revisionID, err := committer.Submit(ctx, entries)
	if err != nil {
		return fmt.Errorf("batch rejected: %w", err)
	}

	fmt.Printf("Committed revision %s (%d entries)\n", revisionID, len(entries))
	return nil
}
