// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "MothTrap")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "mothtrap.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxage", 30)

	// The Kyrkö trap series runs 1992 through 2022; override for other
	// datasets.
	viper.SetDefault("range.startyear", 1992)
	viper.SetDefault("range.endyear", 2022)

	viper.SetDefault("input.csv.path", "data/")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "mothtrap.db")

	viper.SetDefault("export.path", "output/")
	viper.SetDefault("export.format", "csv")
}
