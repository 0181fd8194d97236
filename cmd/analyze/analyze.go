// Package analyze implements the command that runs the full aggregation
// and trend pipeline and exports the derived series.
package analyze

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mothtrap/mothtrap-go/internal/analysis"
	"github.com/mothtrap/mothtrap-go/internal/conf"
	"github.com/mothtrap/mothtrap-go/internal/export"
)

// Command returns the analyze command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute abundance means and long-term trends, export the series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(settings)
		},
	}

	cmd.Flags().StringVar(&settings.Export.Path, "output", viper.GetString("export.path"),
		"Directory the derived series are written into")
	cmd.Flags().StringVar(&settings.Export.Format, "format", viper.GetString("export.format"),
		"Export format: csv, json or yaml")

	return cmd
}

func runAnalyze(settings *conf.Settings) error {
	result, err := analysis.Run(settings)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := export.WriteAll(result, settings.Export.Path, settings.Export.Format); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	slog.Info("series exported",
		"path", settings.Export.Path,
		"format", settings.Export.Format,
		"taxa", len(result.Registry.Taxa))
	return nil
}
