// interfaces.go defines the interface for the record store.
package datastore

import (
	"fmt"

	"github.com/mothtrap/mothtrap-go/internal/conf"
)

// Interface abstracts the underlying database implementation and defines
// the operations the rest of the application uses.
type Interface interface {
	Open() error
	Close() error
	SaveTaxa(taxa []Taxon) error
	SaveEvents(events []Event) error
	SaveOccurrences(occurrences []Occurrence) error
	GetAllTaxa() ([]Taxon, error)
	GetAllEvents() ([]Event, error)
	GetAllOccurrences() ([]Occurrence, error)
	TaxonSummaries() ([]TaxonSummary, error)
	Validate() error
}

// New creates a record store based on the provided settings. SQLite is
// currently the only backend.
func New(settings *conf.Settings) (Interface, error) {
	if settings.Output.SQLite.Enabled {
		return &SQLiteStore{Settings: settings}, nil
	}
	return nil, fmt.Errorf("no record store enabled in configuration")
}
