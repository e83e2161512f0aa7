package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bookscrape/models"
)

// JSONStore reads and writes the pipeline's JSON artifacts. Files are
// pretty-printed so snapshots stay diffable between runs.
type JSONStore struct{}

// NewJSONStore creates a JSONStore.
func NewJSONStore() *JSONStore {
	return &JSONStore{}
}

// WriteRaw writes the raw snapshot as a JSON array, creating intermediate
// directories as needed.
func (s *JSONStore) WriteRaw(path string, books []*models.RawBook) error {
	return writeJSON(path, books)
}

// ReadRaw loads a raw snapshot. A file that is not a JSON array of records
// is a structural error and fails the whole stage.
func (s *JSONStore) ReadRaw(path string) ([]*models.RawBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json: read %q: %w", path, err)
	}
	var books []*models.RawBook
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("json: %q is not a raw record array: %w", path, err)
	}
	return books, nil
}

// WriteClean writes the validated dataset as a JSON array. The flattened
// CSV counterpart is the CSVStore's job; both must carry the same record
// set.
func (s *JSONStore) WriteClean(path string, books []*models.CleanBook) error {
	return writeJSON(path, books)
}

// ReadClean loads the clean dataset written by the clean stage.
func (s *JSONStore) ReadClean(path string) ([]*models.CleanBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json: read %q: %w", path, err)
	}
	var books []*models.CleanBook
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("json: %q is not a clean record array: %w", path, err)
	}
	return books, nil
}

// WriteSummary writes the global statistics object.
func (s *JSONStore) WriteSummary(path string, stats *models.SummaryStats) error {
	return writeJSON(path, stats)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal %q: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("json: write %q: %w", path, err)
	}
	return nil
}
