// Package registry resolves loaded records into an arena with stable,
// zero-based integer indices. Matrix rows are addressed by taxon index,
// never by record identifier, so lookups stay O(1) without depending on
// insertion order.
package registry

import (
	"fmt"
	"time"

	"github.com/mothtrap/mothtrap-go/internal/abundance"
	"github.com/mothtrap/mothtrap-go/internal/datastore"
)

// Event is a sampling event with its calendar fields parsed out.
type Event struct {
	ID     uint
	Year   int
	Month  int
	Day    int
	Nights int
}

// Visit returns the event in the aggregator's input form.
func (e Event) Visit() abundance.Visit {
	return abundance.Visit{Year: e.Year, Month: e.Month, Day: e.Day, Nights: e.Nights}
}

// Registry is the loaded arena. Immutable after Build.
type Registry struct {
	Grid   abundance.Grid
	Taxa   []datastore.Taxon
	Events []Event

	taxonIndex map[uint]int
	eventIndex map[uint]int
}

// Build parses and indexes the loaded records. Events must arrive in
// date order (the store loads them that way). Unparseable dates, years
// outside the grid range and night counts below one are load errors:
// the aggregation core assumes these contracts hold.
func Build(grid abundance.Grid, taxa []datastore.Taxon, events []datastore.Event) (*Registry, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("no sampling events loaded")
	}

	r := &Registry{
		Grid:       grid,
		Taxa:       taxa,
		Events:     make([]Event, 0, len(events)),
		taxonIndex: make(map[uint]int, len(taxa)),
		eventIndex: make(map[uint]int, len(events)),
	}

	for i, t := range taxa {
		if _, dup := r.taxonIndex[t.ID]; dup {
			return nil, fmt.Errorf("duplicate taxon id %d", t.ID)
		}
		r.taxonIndex[t.ID] = i
	}

	for i, ev := range events {
		date, err := time.Parse("2006-01-02", ev.Date)
		if err != nil {
			return nil, fmt.Errorf("event %d: bad date %q: %w", ev.ID, ev.Date, err)
		}
		if !grid.Contains(date.Year()) {
			return nil, fmt.Errorf("event %d: year %d outside range %d-%d",
				ev.ID, date.Year(), grid.StartYear, grid.EndYear)
		}
		if ev.Nights < 1 {
			return nil, fmt.Errorf("event %d: %d sampling nights", ev.ID, ev.Nights)
		}
		if _, dup := r.eventIndex[ev.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %d", ev.ID)
		}
		r.eventIndex[ev.ID] = i
		r.Events = append(r.Events, Event{
			ID:     ev.ID,
			Year:   date.Year(),
			Month:  int(date.Month()),
			Day:    date.Day(),
			Nights: ev.Nights,
		})
	}

	return r, nil
}

// TaxonIndex maps a record identifier to its arena index.
func (r *Registry) TaxonIndex(id uint) (int, bool) {
	i, ok := r.taxonIndex[id]
	return i, ok
}

// EventIndex maps a record identifier to its arena index.
func (r *Registry) EventIndex(id uint) (int, bool) {
	i, ok := r.eventIndex[id]
	return i, ok
}

// CoreSpecies returns the arena indices of taxa monitored continuously
// from the dataset's first event through its last.
func (r *Registry) CoreSpecies() []int {
	first := r.Events[0].ID
	last := r.Events[len(r.Events)-1].ID
	var core []int
	for i, t := range r.Taxa {
		if t.FirstEventID == first && t.LastEventID == last {
			core = append(core, i)
		}
	}
	return core
}
