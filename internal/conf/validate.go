package conf

import (
	"github.com/jukevis/jukevis/internal/errors"
)

// ValidateSettings checks the loaded settings for configurations that cannot work.
func ValidateSettings(settings *Settings) error {
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return errors.Newf("only one database output can be enabled at a time").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return errors.Newf("no database output enabled, enable either sqlite or mysql").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		return errors.Newf("sqlite output enabled but no path configured").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("field", "output.sqlite.path").
			Build()
	}
	if settings.Ledger.TuneLimit <= 0 {
		return errors.Newf("ledger tune limit must be positive").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("field", "ledger.tunelimit").
			Context("value", settings.Ledger.TuneLimit).
			Build()
	}
	return nil
}
