package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

func encodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func encodeYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

func writeEncoded(doc *Document, path string, encode func(io.Writer, *Document) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := encode(f, doc); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

var monthNames = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// writeCSV writes three files: monthly_means.csv, annual_means.csv and
// trends.csv. Undefined cells are empty fields. The CSV trend file
// carries the fit summary only; the full confidence band is available in
// the json and yaml formats.
func writeCSV(doc *Document, dir string) error {
	monthHeader := append([]string{"taxon_id", "name"}, monthNames...)
	if err := writeSeriesCSV(filepath.Join(dir, "monthly_means.csv"), monthHeader, doc.Monthly); err != nil {
		return err
	}

	yearHeader := []string{"taxon_id", "name"}
	for y := doc.StartYear; y <= doc.EndYear; y++ {
		yearHeader = append(yearHeader, strconv.Itoa(y))
	}
	if err := writeSeriesCSV(filepath.Join(dir, "annual_means.csv"), yearHeader, doc.Annual); err != nil {
		return err
	}

	return writeTrendCSV(filepath.Join(dir, "trends.csv"), doc.Trends)
}

func writeSeriesCSV(path string, header []string, series []Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range series {
		row := []string{strconv.FormatUint(uint64(s.TaxonID), 10), s.Name}
		for _, v := range s.Values {
			row = append(row, formatCell(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeTrendCSV(path string, trends []TrendReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"taxon_id", "name", "fitted", "years_used", "slope"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, t := range trends {
		row := []string{
			strconv.FormatUint(uint64(t.TaxonID), 10),
			t.Name,
			strconv.FormatBool(t.Fitted),
			strconv.Itoa(len(t.Years)),
			formatCell(t.Slope),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
