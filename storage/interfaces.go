package storage

import "bookscrape/models"

// RawBookStore persists and reloads the unprocessed snapshot between the
// fetch and clean stages.
type RawBookStore interface {
	WriteRaw(path string, books []*models.RawBook) error
	ReadRaw(path string) ([]*models.RawBook, error)
}

// CleanBookStore persists the validated dataset and reloads it for the
// downstream stages.
type CleanBookStore interface {
	WriteClean(path string, books []*models.CleanBook) error
	ReadClean(path string) ([]*models.CleanBook, error)
}

// TableStore writes the tabular artifacts: the flattened price table and
// the per-group metrics file.
type TableStore interface {
	WritePrices(path string, books []*models.CleanBook) error
	WriteGroupMetrics(path, keyName string, metrics []*models.GroupMetric) error
}
