// datastore_test.go: tests for the SQLite record store.
package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mothtrap/mothtrap-go/internal/conf"
)

// setupTestStore creates an in-memory SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = ":memory:"

	store := &SQLiteStore{Settings: settings}
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// seedTestRecords inserts a small but complete dataset.
func seedTestRecords(t *testing.T, store *SQLiteStore) {
	t.Helper()

	require.NoError(t, store.SaveTaxa([]Taxon{
		{ID: 1, Verbatim: "Large Yellow Underwing", ScientificName: "Noctua pronuba",
			Family: "Noctuidae", FirstEventID: 1, LastEventID: 3,
			Media: []TaxonMedia{{ID: 1, URL: "img/noctua_pronuba.jpg", Caption: "set specimen"}}},
		{ID: 2, Verbatim: "Heart and Dart", ScientificName: "Agrotis exclamationis",
			Family: "Noctuidae", FirstEventID: 2, LastEventID: 2},
	}))
	require.NoError(t, store.SaveEvents([]Event{
		{ID: 1, Date: "1992-05-02", Nights: 1},
		{ID: 2, Date: "1992-05-09", Nights: 2, Remarks: "trap emptied late"},
		{ID: 3, Date: "1992-05-16", Nights: 1},
	}))
	require.NoError(t, store.SaveOccurrences([]Occurrence{
		{ID: 1, EventID: 1, TaxonID: 1, Individuals: 4},
		{ID: 2, EventID: 2, TaxonID: 1, Individuals: 0}, // confirmed absence
		{ID: 3, EventID: 2, TaxonID: 2, Individuals: 7},
		{ID: 4, EventID: 3, TaxonID: 1, Individuals: 2},
	}))
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	seedTestRecords(t, store)

	taxa, err := store.GetAllTaxa()
	require.NoError(t, err)
	require.Len(t, taxa, 2)
	assert.Equal(t, "Noctua pronuba", taxa[0].ScientificName)
	require.Len(t, taxa[0].Media, 1, "associated media must be preloaded")
	assert.Equal(t, "img/noctua_pronuba.jpg", taxa[0].Media[0].URL)

	events, err := store.GetAllEvents()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "1992-05-02", events[0].Date, "events must come back in date order")

	occurrences, err := store.GetAllOccurrences()
	require.NoError(t, err)
	assert.Len(t, occurrences, 4)
}

func TestTaxonSummaries(t *testing.T) {
	store := setupTestStore(t)
	seedTestRecords(t, store)

	summaries, err := store.TaxonSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.Equal(t, uint(1), first.TaxonID)
	assert.Equal(t, 3, first.Occurrences)
	assert.Equal(t, 6, first.Individuals)
	assert.Equal(t, uint(1), first.FirstEventID)
	assert.Equal(t, uint(3), first.LastEventID)

	second := summaries[1]
	assert.Equal(t, uint(2), second.TaxonID)
	assert.Equal(t, 1, second.Occurrences)
	assert.Equal(t, uint(2), second.FirstEventID)
	assert.Equal(t, uint(2), second.LastEventID)
}

func TestValidatePassesOnCleanData(t *testing.T) {
	store := setupTestStore(t)
	seedTestRecords(t, store)
	assert.NoError(t, store.Validate())
}

func TestValidateFindsDanglingReferences(t *testing.T) {
	store := setupTestStore(t)
	seedTestRecords(t, store)

	require.NoError(t, store.SaveOccurrences([]Occurrence{
		{ID: 5, EventID: 99, TaxonID: 1, Individuals: 1},
	}))
	assert.ErrorContains(t, store.Validate(), "missing event")
}

func TestValidateFindsZeroNightEvents(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.SaveEvents([]Event{{ID: 1, Date: "1992-05-02", Nights: 0}}))
	assert.ErrorContains(t, store.Validate(), "sampling night")
}

func writeTestCSVs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		taxaFile: "id,verbatim,scientific_name,family,first_event_id,last_event_id\n" +
			"1,Large Yellow Underwing,Noctua pronuba,Noctuidae,1,2\n",
		eventsFile: "id,date,nights,remarks\n" +
			"1,1992-05-02,1,\n" +
			"2,1992-05-09,2,trap emptied late\n",
		occurrencesFile: "id,event_id,taxon_id,individuals\n" +
			"1,1,1,4\n" +
			"2,2,1,0\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestImportCSV(t *testing.T) {
	store := setupTestStore(t)
	dir := writeTestCSVs(t)

	require.NoError(t, ImportCSV(store, dir))
	require.NoError(t, store.Validate())

	taxa, err := store.GetAllTaxa()
	require.NoError(t, err)
	require.Len(t, taxa, 1)
	assert.Equal(t, uint(2), taxa[0].LastEventID)

	occurrences, err := store.GetAllOccurrences()
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, 0, occurrences[1].Individuals)
}

func TestImportCSVRejectsNegativeCounts(t *testing.T) {
	store := setupTestStore(t)
	dir := writeTestCSVs(t)

	bad := "id,event_id,taxon_id,individuals\n1,1,1,-3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, occurrencesFile), []byte(bad), 0o644))

	assert.ErrorContains(t, ImportCSV(store, dir), "negative individual count")
}

func TestImportCSVMissingFile(t *testing.T) {
	store := setupTestStore(t)
	assert.Error(t, ImportCSV(store, t.TempDir()))
}
