// Package export writes the derived numeric series to disk for
// presentation tooling. The engine itself emits no plots or widgets;
// these files are the whole interface to whatever renders the data.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mothtrap/mothtrap-go/internal/abundance"
	"github.com/mothtrap/mothtrap-go/internal/analysis"
	"github.com/mothtrap/mothtrap-go/internal/trend"
)

// Series is one taxon's values along a fixed axis (calendar months or
// years). Undefined cells are nil, which encodes to null/empty rather
// than a fake zero.
type Series struct {
	TaxonID uint       `json:"taxon_id" yaml:"taxon_id"`
	Name    string     `json:"name" yaml:"name"`
	Values  []*float64 `json:"values" yaml:"values"`
}

// TrendReport is one taxon's (or the cohort's) trend fit. Slope is nil
// when too few usable years were available; the scatter points are
// reported regardless.
type TrendReport struct {
	TaxonID uint      `json:"taxon_id" yaml:"taxon_id"`
	Name    string    `json:"name" yaml:"name"`
	Fitted  bool      `json:"fitted" yaml:"fitted"`
	Slope   *float64  `json:"slope,omitempty" yaml:"slope,omitempty"`
	Years   []int     `json:"years" yaml:"years"`
	Means   []float64 `json:"means" yaml:"means"`
	Line    []float64 `json:"line,omitempty" yaml:"line,omitempty"`
	Lower   []float64 `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper   []float64 `json:"upper,omitempty" yaml:"upper,omitempty"`
}

// Document is the full export payload.
type Document struct {
	StartYear int           `json:"start_year" yaml:"start_year"`
	EndYear   int           `json:"end_year" yaml:"end_year"`
	Monthly   []Series      `json:"monthly_means" yaml:"monthly_means"`
	Annual    []Series      `json:"annual_means" yaml:"annual_means"`
	Trends    []TrendReport `json:"trends" yaml:"trends"`
}

// cohortName labels the aggregate trend row.
const cohortName = "core species (cohort)"

// WriteAll writes the derived series into dir using the given format
// (csv, json or yaml).
func WriteAll(result *analysis.Result, dir, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	doc := buildDocument(result)
	switch format {
	case "csv":
		return writeCSV(doc, dir)
	case "json":
		return writeEncoded(doc, filepath.Join(dir, "series.json"), encodeJSON)
	case "yaml":
		return writeEncoded(doc, filepath.Join(dir, "series.yaml"), encodeYAML)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func buildDocument(result *analysis.Result) *Document {
	grid := result.Grid
	doc := &Document{StartYear: grid.StartYear, EndYear: grid.EndYear}

	for t, taxon := range result.Registry.Taxa {
		doc.Monthly = append(doc.Monthly, Series{
			TaxonID: taxon.ID,
			Name:    taxon.ScientificName,
			Values:  seriesValues(result.Derived.Monthly[t]),
		})
		doc.Annual = append(doc.Annual, Series{
			TaxonID: taxon.ID,
			Name:    taxon.ScientificName,
			Values:  seriesValues(result.Derived.Annual[t]),
		})
		doc.Trends = append(doc.Trends, trendReport(taxon.ID, taxon.ScientificName, result.Trends[t]))
	}

	doc.Trends = append(doc.Trends, trendReport(0, cohortName, result.Cohort))
	return doc
}

func seriesValues(s abundance.Series) []*float64 {
	values := make([]*float64, len(s))
	for i, v := range s {
		if v.OK {
			value := v.V
			values[i] = &value
		}
	}
	return values
}

func trendReport(id uint, name string, fit trend.Fit) TrendReport {
	report := TrendReport{
		TaxonID: id,
		Name:    name,
		Fitted:  fit.OK,
		Years:   make([]int, len(fit.Points)),
		Means:   make([]float64, len(fit.Points)),
	}
	for i, p := range fit.Points {
		report.Years[i] = p.Year
		report.Means[i] = p.Mean
	}
	if fit.OK {
		slope := fit.Slope
		report.Slope = &slope
		report.Line = fit.Line
		report.Lower = fit.Lower
		report.Upper = fit.Upper
	}
	return report
}
