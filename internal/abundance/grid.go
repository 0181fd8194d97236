// Package abundance implements the per-taxon abundance matrices and the
// derived mean-individuals-per-night series for a fixed range of calendar
// months. Sampling effort and individual counts are accumulated into
// month buckets, prorated across a month boundary when a multi-night
// sample spans one.
package abundance

import "fmt"

// Grid is the fixed aggregation grid: one bucket per (year, month) pair
// over an inclusive year range known before any data is loaded.
type Grid struct {
	StartYear int
	EndYear   int
}

// NewGrid validates the year range and returns the grid.
func NewGrid(startYear, endYear int) (Grid, error) {
	if endYear < startYear {
		return Grid{}, fmt.Errorf("invalid year range %d-%d: end year before start year", startYear, endYear)
	}
	return Grid{StartYear: startYear, EndYear: endYear}, nil
}

// Years returns the number of years covered by the grid.
func (g Grid) Years() int {
	return g.EndYear - g.StartYear + 1
}

// Buckets returns the total number of month buckets in the grid.
func (g Grid) Buckets() int {
	return 12 * g.Years()
}

// Index returns the zero-based linear bucket index for a year and a
// 1-based month. The caller is responsible for passing an in-range year;
// Contains reports whether a year is covered.
func (g Grid) Index(year, month int) int {
	return (year-g.StartYear)*12 + month - 1
}

// YearMonth is the inverse of Index.
func (g Grid) YearMonth(bucket int) (year, month int) {
	return g.StartYear + bucket/12, bucket%12 + 1
}

// Contains reports whether the given year falls inside the grid range.
func (g Grid) Contains(year int) bool {
	return year >= g.StartYear && year <= g.EndYear
}
