// model.go defines the data model for trap monitoring records.
package datastore

// Taxon is one species or operational taxonomic unit monitored at the
// trap. Records are immutable after load.
type Taxon struct {
	ID             uint   `gorm:"primaryKey"`
	Verbatim       string // name exactly as written in the source records
	ScientificName string `gorm:"index:idx_taxa_sciname"`
	Family         string
	Media          []TaxonMedia `gorm:"foreignKey:TaxonID;constraint:OnDelete:CASCADE"`
	// FirstEventID and LastEventID bound the taxon's monitoring window.
	// A taxon monitored from the dataset's first event through its last
	// belongs to the core-species cohort.
	FirstEventID    uint
	LastEventID     uint
	OccurrenceCount int // lifetime number of occurrence records
	IndividualCount int // lifetime number of individuals observed
}

// TableName overrides gorm's pluralization; the table is "taxa".
func (Taxon) TableName() string { return "taxa" }

// TaxonMedia is an associated media reference (specimen photo etc.).
type TaxonMedia struct {
	ID      uint `gorm:"primaryKey"`
	TaxonID uint `gorm:"index;not null"`
	URL     string
	Caption string
}

func (TaxonMedia) TableName() string { return "taxon_media" }

// Event is one sampling period at the trap: one or more consecutive
// nights, recorded on the period's end date.
type Event struct {
	ID   uint   `gorm:"primaryKey"`
	Date string `gorm:"index:idx_events_date"` // "2006-01-02"
	// Nights is the number of consecutive trap nights combined into this
	// sample; values above one mean a multi-night combined sample.
	Nights  int
	Remarks string `gorm:"type:text"`
}

// Occurrence links one event to one taxon with the number of individuals
// observed. Zero individuals is a confirmed absence, not missing data.
type Occurrence struct {
	ID          uint `gorm:"primaryKey"`
	EventID     uint `gorm:"index;not null"`
	TaxonID     uint `gorm:"index;not null"`
	Individuals int
}

// TaxonSummary aggregates a taxon's lifetime record counts and the
// events bounding its monitoring window, computed from the occurrence
// table.
type TaxonSummary struct {
	TaxonID      uint
	Occurrences  int
	Individuals  int
	FirstEventID uint
	LastEventID  uint
}
