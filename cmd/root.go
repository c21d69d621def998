// Package cmd wires the jukevis CLI commands together.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jukevis/jukevis/cmd/serve"
	"github.com/jukevis/jukevis/cmd/submit"
	"github.com/jukevis/jukevis/cmd/tunes"
	"github.com/jukevis/jukevis/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jukevis",
		Short: "jukevis score ledger CLI",
	}

	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")

	rootCmd.AddCommand(
		serve.Command(settings),
		submit.Command(settings),
		tunes.Command(settings),
	)

	return rootCmd
}
