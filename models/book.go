package models

import "time"

// RawBook holds one unprocessed catalogue entry exactly as extracted from a
// listing page. Any field may be empty or malformed; nothing is validated here.
// This is what the fetch stage writes to the raw snapshot JSON.
type RawBook struct {
	ProductID  string `json:"product_id"`
	Title      string `json:"title"`
	PriceText  string `json:"price_text"`
	RatingText string `json:"rating_text"`
	Category   string `json:"category"`
	URL        string `json:"url"`
	FetchedAt  string `json:"fetched_at"`
	SourceURL  string `json:"source_url,omitempty"`
}

// CleanBook is the validated, typed, deduplicated record ready for analysis.
// Rating is the only field allowed to be absent.
type CleanBook struct {
	ProductID    string    `json:"product_id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	Rating       *int      `json:"rating"`
	Category     string    `json:"category"`
	URL          string    `json:"url"`
	SnapshotTime time.Time `json:"snapshot_time"`
}

// CleanReport counts what happened to the raw records during cleaning.
// Rejected and Duplicates are tracked separately: a duplicate is a policy
// drop, not a validation failure.
type CleanReport struct {
	Kept       int
	Rejected   int
	Duplicates int
}

// SummaryStats holds global descriptive statistics over all clean prices.
// All numeric fields are pointers so the empty-dataset shape serializes as
// nulls rather than misleading zeros. Std is also nil below two observations.
type SummaryStats struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	P25    *float64 `json:"p25"`
	P75    *float64 `json:"p75"`
}

// GroupMetric holds per-group price statistics for one distinct grouping key.
type GroupMetric struct {
	Key       string  `json:"key"`
	Count     int     `json:"count"`
	MeanPrice float64 `json:"mean_price"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
}
