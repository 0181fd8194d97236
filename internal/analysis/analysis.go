// Package analysis runs the batch pipeline: load records from the
// store, accumulate the abundance matrices, derive the mean series and
// fit the long-term trends.
package analysis

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mothtrap/mothtrap-go/internal/abundance"
	"github.com/mothtrap/mothtrap-go/internal/conf"
	"github.com/mothtrap/mothtrap-go/internal/datastore"
	"github.com/mothtrap/mothtrap-go/internal/registry"
	"github.com/mothtrap/mothtrap-go/internal/trend"
)

// Result is everything the pipeline produces. All fields are read-only
// once Run returns.
type Result struct {
	Grid        abundance.Grid
	Registry    *registry.Registry
	Individuals *abundance.Matrix
	Nights      *abundance.Matrix
	Derived     *abundance.Derived
	// Trends holds one fit per taxon, indexed like Registry.Taxa.
	Trends []trend.Fit
	// Cohort is the fit over the summed annual means of the core
	// species; CohortSize is the number of taxa in that cohort.
	Cohort     trend.Fit
	CohortSize int
}

// Run executes the pipeline against the configured record store.
func Run(settings *conf.Settings) (*Result, error) {
	store, err := datastore.New(settings)
	if err != nil {
		return nil, err
	}
	if err := store.Open(); err != nil {
		return nil, err
	}
	defer store.Close()

	return RunWithStore(settings, store)
}

// RunWithStore executes the pipeline against an already-open store.
func RunWithStore(settings *conf.Settings, store datastore.Interface) (*Result, error) {
	start := time.Now()

	grid, err := abundance.NewGrid(settings.Range.StartYear, settings.Range.EndYear)
	if err != nil {
		return nil, err
	}

	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("record store validation failed: %w", err)
	}

	taxa, err := store.GetAllTaxa()
	if err != nil {
		return nil, err
	}
	events, err := store.GetAllEvents()
	if err != nil {
		return nil, err
	}
	occurrences, err := store.GetAllOccurrences()
	if err != nil {
		return nil, err
	}
	slog.Info("records loaded",
		"taxa", len(taxa),
		"events", len(events),
		"occurrences", len(occurrences))

	reg, err := registry.Build(grid, taxa, events)
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}

	result := &Result{
		Grid:        grid,
		Registry:    reg,
		Individuals: abundance.NewMatrix(len(taxa), grid.Buckets()),
		Nights:      abundance.NewMatrix(len(taxa), grid.Buckets()),
	}

	if err := accumulate(result, occurrences); err != nil {
		return nil, err
	}

	result.Derived = abundance.Means(grid, result.Individuals, result.Nights)

	result.Trends = make([]trend.Fit, len(taxa))
	for t := range taxa {
		result.Trends[t] = trend.FitTrend(grid.StartYear, result.Derived.Annual[t])
	}

	core := reg.CoreSpecies()
	result.CohortSize = len(core)
	cohort := trend.CohortSeries(result.Derived.Annual, core)
	result.Cohort = trend.FitTrend(grid.StartYear, cohort)

	slog.Info("analysis complete",
		"core_species", len(core),
		"cohort_fit", result.Cohort.OK,
		"elapsed", time.Since(start))
	return result, nil
}

// accumulate folds every occurrence into the two matrices. Store
// validation has already ruled out dangling references, so a failed
// lookup here is a programming error worth surfacing.
func accumulate(result *Result, occurrences []datastore.Occurrence) error {
	reg := result.Registry
	for _, occ := range occurrences {
		t, ok := reg.TaxonIndex(occ.TaxonID)
		if !ok {
			return fmt.Errorf("occurrence %d: unresolved taxon %d", occ.ID, occ.TaxonID)
		}
		e, ok := reg.EventIndex(occ.EventID)
		if !ok {
			return fmt.Errorf("occurrence %d: unresolved event %d", occ.ID, occ.EventID)
		}
		abundance.Accumulate(result.Grid, result.Individuals, result.Nights,
			t, reg.Events[e].Visit(), occ.Individuals)
	}
	return nil
}
