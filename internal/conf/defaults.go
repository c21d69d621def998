// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "jukevis")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/jukevis.log")

	viper.SetDefault("ledger.tunelimit", 1000)

	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "jukevis.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "jukevis")
	viper.SetDefault("output.mysql.password", "")
	viper.SetDefault("output.mysql.database", "jukevis")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
}
