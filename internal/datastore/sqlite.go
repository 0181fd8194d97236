package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mothtrap/mothtrap-go/internal/conf"
)

// slowQueryThreshold marks queries worth logging; summary aggregates over
// a full occurrence table can legitimately take a few hundred ms.
const slowQueryThreshold = time.Second

// SQLiteStore implements Interface on a SQLite database file.
type SQLiteStore struct {
	DB       *gorm.DB
	Settings *conf.Settings
}

// Open opens the SQLite database and migrates the schema.
func (store *SQLiteStore) Open() error {
	path := store.Settings.Output.SQLite.Path
	if path == "" {
		return fmt.Errorf("sqlite store: no database path configured")
	}

	gl := gormlogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: slowQueryThreshold,
			LogLevel:      gormlogger.Warn,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gl})
	if err != nil {
		return fmt.Errorf("failed to open SQLite database %s: %w", path, err)
	}
	store.DB = db

	if err := db.AutoMigrate(&Taxon{}, &TaxonMedia{}, &Event{}, &Occurrence{}); err != nil {
		return fmt.Errorf("failed to migrate SQLite schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (store *SQLiteStore) Close() error {
	if store.DB == nil {
		return nil
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// insertBatchSize bounds statement size on bulk loads.
const insertBatchSize = 500

// SaveTaxa inserts taxa and their media references in batches.
func (store *SQLiteStore) SaveTaxa(taxa []Taxon) error {
	if len(taxa) == 0 {
		return nil
	}
	if err := store.DB.CreateInBatches(taxa, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to save taxa: %w", err)
	}
	return nil
}

// SaveEvents inserts sampling events in batches.
func (store *SQLiteStore) SaveEvents(events []Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := store.DB.CreateInBatches(events, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}

// SaveOccurrences inserts occurrence records in batches.
func (store *SQLiteStore) SaveOccurrences(occurrences []Occurrence) error {
	if len(occurrences) == 0 {
		return nil
	}
	if err := store.DB.CreateInBatches(occurrences, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to save occurrences: %w", err)
	}
	return nil
}

// GetAllTaxa returns every taxon with media preloaded, ordered by id.
func (store *SQLiteStore) GetAllTaxa() ([]Taxon, error) {
	var taxa []Taxon
	if err := store.DB.Preload("Media").Order("id").Find(&taxa).Error; err != nil {
		return nil, fmt.Errorf("failed to load taxa: %w", err)
	}
	return taxa, nil
}

// GetAllEvents returns every sampling event ordered by date.
func (store *SQLiteStore) GetAllEvents() ([]Event, error) {
	var events []Event
	if err := store.DB.Order("date, id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return events, nil
}

// GetAllOccurrences returns every occurrence record ordered by id.
func (store *SQLiteStore) GetAllOccurrences() ([]Occurrence, error) {
	var occurrences []Occurrence
	if err := store.DB.Order("id").Find(&occurrences).Error; err != nil {
		return nil, fmt.Errorf("failed to load occurrences: %w", err)
	}
	return occurrences, nil
}
