// analytics.go: summary and validation queries over the record tables.
package datastore

import "fmt"

// TaxonSummaries computes per-taxon lifetime statistics from the
// occurrence table: record and individual totals plus the first and last
// event (by date) the taxon was recorded in.
func (store *SQLiteStore) TaxonSummaries() ([]TaxonSummary, error) {
	query := `
		SELECT
			o.taxon_id AS taxon_id,
			COUNT(*) AS occurrences,
			COALESCE(SUM(o.individuals), 0) AS individuals,
			(SELECT e2.id FROM occurrences o2
				JOIN events e2 ON e2.id = o2.event_id
				WHERE o2.taxon_id = o.taxon_id
				ORDER BY e2.date ASC, e2.id ASC LIMIT 1) AS first_event_id,
			(SELECT e3.id FROM occurrences o3
				JOIN events e3 ON e3.id = o3.event_id
				WHERE o3.taxon_id = o.taxon_id
				ORDER BY e3.date DESC, e3.id DESC LIMIT 1) AS last_event_id
		FROM occurrences o
		GROUP BY o.taxon_id
		ORDER BY o.taxon_id
	`

	var summaries []TaxonSummary
	if err := store.DB.Raw(query).Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("error computing taxon summaries: %w", err)
	}
	return summaries, nil
}

// Validate checks the referential and range contracts the aggregation
// core relies on: every occurrence must resolve to an existing event and
// taxon, and every event must combine at least one trap night. Any
// violation is a fatal load error.
func (store *SQLiteStore) Validate() error {
	var danglingEvents int64
	err := store.DB.Raw(`
		SELECT COUNT(*) FROM occurrences o
		LEFT JOIN events e ON e.id = o.event_id
		WHERE e.id IS NULL`).Scan(&danglingEvents).Error
	if err != nil {
		return fmt.Errorf("error checking event references: %w", err)
	}
	if danglingEvents > 0 {
		return fmt.Errorf("%d occurrences reference a missing event", danglingEvents)
	}

	var danglingTaxa int64
	err = store.DB.Raw(`
		SELECT COUNT(*) FROM occurrences o
		LEFT JOIN taxa t ON t.id = o.taxon_id
		WHERE t.id IS NULL`).Scan(&danglingTaxa).Error
	if err != nil {
		return fmt.Errorf("error checking taxon references: %w", err)
	}
	if danglingTaxa > 0 {
		return fmt.Errorf("%d occurrences reference a missing taxon", danglingTaxa)
	}

	var badNights int64
	err = store.DB.Model(&Event{}).Where("nights < 1").Count(&badNights).Error
	if err != nil {
		return fmt.Errorf("error checking event night counts: %w", err)
	}
	if badNights > 0 {
		return fmt.Errorf("%d events have fewer than one sampling night", badNights)
	}

	return nil
}
