package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mothtrap/mothtrap-go/cmd/analyze"
	"github.com/mothtrap/mothtrap-go/cmd/load"
	"github.com/mothtrap/mothtrap-go/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mothtrap",
		Short: "MothTrap abundance and trend analysis CLI",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		load.Command(settings),
		analyze.Command(settings),
	)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().IntVar(&settings.Range.StartYear, "start-year", viper.GetInt("range.startyear"), "First year of the aggregation range")
	rootCmd.PersistentFlags().IntVar(&settings.Range.EndYear, "end-year", viper.GetInt("range.endyear"), "Last year of the aggregation range (inclusive)")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "db", viper.GetString("output.sqlite.path"), "Path to the SQLite record store")
}
