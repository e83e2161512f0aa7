package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bookscrape/models"
)

// CSVStore writes the tabular artifacts: the flattened price table and the
// per-group metrics file. Each call truncates and rewrites the target file
// with a header row.
type CSVStore struct{}

// NewCSVStore creates a CSVStore.
func NewCSVStore() *CSVStore {
	return &CSVStore{}
}

// WritePrices writes the flattened clean dataset. The row set and field
// values mirror the clean JSON exactly; a nil rating becomes an empty cell.
func (s *CSVStore) WritePrices(path string, books []*models.CleanBook) error {
	w, f, err := createCSV(path, []string{
		"product_id", "title", "price", "rating", "category", "url", "snapshot_time",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for _, b := range books {
		rating := ""
		if b.Rating != nil {
			rating = strconv.Itoa(*b.Rating)
		}
		row := []string{
			b.ProductID,
			b.Title,
			strconv.FormatFloat(b.Price, 'f', 2, 64),
			rating,
			b.Category,
			b.URL,
			b.SnapshotTime.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteGroupMetrics writes one row per group. keyName names the grouping
// column in the header (category or product_id).
func (s *CSVStore) WriteGroupMetrics(path, keyName string, metrics []*models.GroupMetric) error {
	w, f, err := createCSV(path, []string{
		keyName, "count", "mean_price", "min_price", "max_price",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for _, m := range metrics {
		row := []string{
			m.Key,
			strconv.Itoa(m.Count),
			strconv.FormatFloat(m.MeanPrice, 'f', 2, 64),
			strconv.FormatFloat(m.MinPrice, 'f', 2, 64),
			strconv.FormatFloat(m.MaxPrice, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// createCSV creates (or truncates) the file at path and writes the header
// row. Intermediate directories are created automatically.
func createCSV(path string, header []string) (*csv.Writer, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csv: write header: %w", err)
	}

	return w, f, nil
}
