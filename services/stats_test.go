package services

import (
	"math"
	"testing"
	"time"

	"bookscrape/config"
	"bookscrape/models"
	"bookscrape/utils"
)

func priceBooks(category string, prices ...float64) []*models.CleanBook {
	books := make([]*models.CleanBook, len(prices))
	for i, p := range prices {
		books[i] = &models.CleanBook{
			ProductID:    category + "-" + string(rune('a'+i)),
			Title:        "Book",
			Price:        p,
			Category:     category,
			SnapshotTime: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		}
	}
	return books
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		sorted []float64
		p      float64
		want   float64
	}{
		{[]float64{10, 20, 30, 40}, 0.5, 25},
		{[]float64{10, 20, 30}, 0.5, 20},
		{[]float64{10, 20, 30}, 0.25, 15},
		{[]float64{10, 20, 30}, 0.75, 25},
		{[]float64{42}, 0.5, 42},
		{[]float64{10, 20}, 0.25, 12.5},
		{[]float64{1, 2, 3, 4}, 0, 1},
		{[]float64{1, 2, 3, 4}, 1, 4},
	}

	for _, tt := range tests {
		got := quantile(tt.sorted, tt.p)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("quantile(%v, %.2f) = %.4f; want %.4f", tt.sorted, tt.p, got, tt.want)
		}
	}
}

func TestSummarizeEvenCount(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	s := svc.Summarize(priceBooks("books", 10, 20, 30, 40))

	if s.Count != 4 {
		t.Fatalf("Count: got %d, want 4", s.Count)
	}
	if *s.Mean != 25.0 {
		t.Errorf("Mean: got %.2f, want 25.00", *s.Mean)
	}
	if *s.Median != 25.0 {
		t.Errorf("Median: got %.2f, want 25.00", *s.Median)
	}
	if *s.Min != 10 || *s.Max != 40 {
		t.Errorf("Min/Max: got %.2f/%.2f, want 10/40", *s.Min, *s.Max)
	}
}

func TestSummarizeOddCount(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	s := svc.Summarize(priceBooks("books", 30, 10, 20))

	if *s.Median != 20 {
		t.Errorf("Median: got %.2f, want 20.00", *s.Median)
	}
	if *s.P25 != 15 {
		t.Errorf("P25: got %.2f, want 15.00", *s.P25)
	}
	if *s.P75 != 25 {
		t.Errorf("P75: got %.2f, want 25.00", *s.P75)
	}
}

func TestSummarizeSampleStd(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	s := svc.Summarize(priceBooks("books", 10, 20, 30, 40))

	// sample variance of 10,20,30,40 is 500/3
	want := math.Sqrt(500.0 / 3.0)
	if math.Abs(*s.Std-want) > 1e-9 {
		t.Errorf("Std: got %.6f, want %.6f", *s.Std, want)
	}
}

func TestSummarizeOrderStatisticInvariant(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	s := svc.Summarize(priceBooks("books", 53.74, 10.97, 22.65, 17.93, 35.02, 57.25, 13.99))

	if !(*s.Min <= *s.P25 && *s.P25 <= *s.Median && *s.Median <= *s.P75 && *s.P75 <= *s.Max) {
		t.Errorf("order statistic invariant violated: min=%.2f p25=%.2f median=%.2f p75=%.2f max=%.2f",
			*s.Min, *s.P25, *s.Median, *s.P75, *s.Max)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	s := svc.Summarize(nil)

	if s.Count != 0 {
		t.Errorf("Count: got %d, want 0", s.Count)
	}
	for name, f := range map[string]*float64{
		"Mean": s.Mean, "Median": s.Median, "Std": s.Std,
		"Min": s.Min, "Max": s.Max, "P25": s.P25, "P75": s.P75,
	} {
		if f != nil {
			t.Errorf("%s: got %.2f, want nil for empty input", name, *f)
		}
	}
}

func TestSummarizeSingleValueHasNoStd(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	s := svc.Summarize(priceBooks("books", 42))

	if s.Count != 1 {
		t.Fatalf("Count: got %d, want 1", s.Count)
	}
	if s.Std != nil {
		t.Errorf("Std: got %.2f, want nil below two observations", *s.Std)
	}
	if s.Mean == nil || *s.Mean != 42 {
		t.Errorf("Mean should still be computed for a single value")
	}
}

func TestSummarizeExcludesNonFinite(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	books := priceBooks("books", 10, 20)
	books = append(books, &models.CleanBook{ProductID: "nan-book", Price: math.NaN(), Category: "books"})

	s := svc.Summarize(books)
	if s.Count != 2 {
		t.Errorf("Count: got %d, want 2 (non-finite excluded)", s.Count)
	}
	if math.IsNaN(*s.Mean) {
		t.Errorf("Mean is NaN; non-finite input leaked into the aggregate")
	}
}

func TestGroupMetricsByCategory(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	books := append(priceBooks("travel", 10, 30), priceBooks("poetry", 20)...)
	books = append(books, priceBooks("travel", 50)...)

	metrics := svc.GroupMetrics(books)
	if len(metrics) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(metrics))
	}

	// first-appearance order, not alphabetical
	if metrics[0].Key != "travel" || metrics[1].Key != "poetry" {
		t.Errorf("group order: got [%s %s], want [travel poetry]", metrics[0].Key, metrics[1].Key)
	}

	travel := metrics[0]
	if travel.Count != 3 || travel.MinPrice != 10 || travel.MaxPrice != 50 || travel.MeanPrice != 30 {
		t.Errorf("travel metrics: got count=%d mean=%.2f min=%.2f max=%.2f",
			travel.Count, travel.MeanPrice, travel.MinPrice, travel.MaxPrice)
	}
}

func TestGroupCountsSumToTotal(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	books := append(priceBooks("travel", 10, 30, 12), priceBooks("poetry", 20, 44)...)

	summary := svc.Summarize(books)
	metrics := svc.GroupMetrics(books)

	var total int
	for _, m := range metrics {
		total += m.Count
	}
	if total != summary.Count {
		t.Errorf("group counts sum to %d, summary count is %d", total, summary.Count)
	}
}

func TestGroupMetricsByProductID(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByProductID)
	books := priceBooks("books", 10, 20, 30)

	metrics := svc.GroupMetrics(books)
	if len(metrics) != 3 {
		t.Fatalf("expected one group per product, got %d", len(metrics))
	}
	for _, m := range metrics {
		if m.Count != 1 {
			t.Errorf("group %s: count %d, want 1", m.Key, m.Count)
		}
	}
}

func TestGroupMetricsEmptyInput(t *testing.T) {
	svc := NewStatsService(utils.NewLogger(), config.GroupByCategory)
	metrics := svc.GroupMetrics(nil)
	if len(metrics) != 0 {
		t.Errorf("expected empty group list, got %d groups", len(metrics))
	}
}
