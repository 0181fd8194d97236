// import.go: CSV import for the three record tables.
package datastore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// CSV file names expected inside the import directory.
const (
	taxaFile        = "taxa.csv"
	eventsFile      = "events.csv"
	occurrencesFile = "occurrences.csv"
)

// ImportCSV loads the three record tables from CSV files in dir into the
// store. Each file has a header row; columns are positional. The store
// must be open. Import does not validate cross references; run Validate
// after importing.
func ImportCSV(store Interface, dir string) error {
	taxa, err := readTaxaCSV(filepath.Join(dir, taxaFile))
	if err != nil {
		return fmt.Errorf("importing %s: %w", taxaFile, err)
	}
	events, err := readEventsCSV(filepath.Join(dir, eventsFile))
	if err != nil {
		return fmt.Errorf("importing %s: %w", eventsFile, err)
	}
	occurrences, err := readOccurrencesCSV(filepath.Join(dir, occurrencesFile))
	if err != nil {
		return fmt.Errorf("importing %s: %w", occurrencesFile, err)
	}

	if err := store.SaveTaxa(taxa); err != nil {
		return err
	}
	if err := store.SaveEvents(events); err != nil {
		return err
	}
	return store.SaveOccurrences(occurrences)
}

// openCSV opens path and returns a reader positioned after the header.
func openCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	if _, err := r.Read(); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	return r, f, nil
}

// readTaxaCSV parses rows of
// id, verbatim, scientific_name, family, first_event_id, last_event_id.
func readTaxaCSV(path string) ([]Taxon, error) {
	r, f, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var taxa []Taxon
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 6 {
			return nil, fmt.Errorf("line %d: expected 6 columns, got %d", line, len(record))
		}
		id, err := parseUint(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: taxon id: %w", line, err)
		}
		first, err := parseUint(record[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: first event id: %w", line, err)
		}
		last, err := parseUint(record[5])
		if err != nil {
			return nil, fmt.Errorf("line %d: last event id: %w", line, err)
		}
		taxa = append(taxa, Taxon{
			ID:             id,
			Verbatim:       record[1],
			ScientificName: record[2],
			Family:         record[3],
			FirstEventID:   first,
			LastEventID:    last,
		})
	}
	return taxa, nil
}

// readEventsCSV parses rows of id, date, nights, remarks.
func readEventsCSV(path string) ([]Event, error) {
	r, f, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []Event
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("line %d: expected 4 columns, got %d", line, len(record))
		}
		id, err := parseUint(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: event id: %w", line, err)
		}
		nights, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: nights: %w", line, err)
		}
		events = append(events, Event{
			ID:      id,
			Date:    record[1],
			Nights:  nights,
			Remarks: record[3],
		})
	}
	return events, nil
}

// readOccurrencesCSV parses rows of id, event_id, taxon_id, individuals.
func readOccurrencesCSV(path string) ([]Occurrence, error) {
	r, f, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var occurrences []Occurrence
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("line %d: expected 4 columns, got %d", line, len(record))
		}
		id, err := parseUint(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: occurrence id: %w", line, err)
		}
		eventID, err := parseUint(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: event id: %w", line, err)
		}
		taxonID, err := parseUint(record[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: taxon id: %w", line, err)
		}
		individuals, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: individuals: %w", line, err)
		}
		if individuals < 0 {
			return nil, fmt.Errorf("line %d: negative individual count %d", line, individuals)
		}
		occurrences = append(occurrences, Occurrence{
			ID:          id,
			EventID:     eventID,
			TaxonID:     taxonID,
			Individuals: individuals,
		})
	}
	return occurrences, nil
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
