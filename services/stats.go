package services

import (
	"math"
	"sort"

	"bookscrape/config"
	"bookscrape/models"
	"bookscrape/utils"
)

// StatsService computes descriptive statistics over the clean dataset:
// global SummaryStats over all prices plus one GroupMetric per distinct
// grouping key. It is a pure function of its input; persistence is the
// storage package's job.
type StatsService struct {
	logger  *utils.Logger
	groupBy string
}

// NewStatsService creates a StatsService grouping by the given key
// (config.GroupByCategory or config.GroupByProductID).
func NewStatsService(logger *utils.Logger, groupBy string) *StatsService {
	return &StatsService{logger: logger, groupBy: groupBy}
}

// GroupKey returns the active grouping key name, used as the metrics CSV
// header column.
func (s *StatsService) GroupKey() string {
	return s.groupBy
}

// Summarize computes global price statistics. An empty dataset yields
// Count 0 with all nil fields, never an error. Non-finite prices should not
// survive cleaning, but if one does it is excluded and logged rather than
// poisoning every aggregate.
func (s *StatsService) Summarize(books []*models.CleanBook) *models.SummaryStats {
	prices := s.finitePrices(books)

	stats := &models.SummaryStats{Count: len(prices)}
	if len(prices) == 0 {
		return stats
	}

	sort.Float64s(prices)

	stats.Min = ptr(prices[0])
	stats.Max = ptr(prices[len(prices)-1])
	stats.Mean = ptr(mean(prices))
	stats.Median = ptr(quantile(prices, 0.5))
	stats.P25 = ptr(quantile(prices, 0.25))
	stats.P75 = ptr(quantile(prices, 0.75))
	if len(prices) >= 2 {
		stats.Std = ptr(sampleStd(prices))
	}

	return stats
}

// GroupMetrics partitions the clean set by the configured key and computes
// count, mean, min and max price per group. Groups come out in order of the
// key's first appearance in the input, so a fixed input order gives a fixed
// output order.
func (s *StatsService) GroupMetrics(books []*models.CleanBook) []*models.GroupMetric {
	index := make(map[string]int)
	metrics := []*models.GroupMetric{}
	sums := []float64{}

	for _, b := range books {
		if math.IsNaN(b.Price) || math.IsInf(b.Price, 0) {
			s.logger.Warn("[stats] Excluding non-finite price for %s from group metrics", b.ProductID)
			continue
		}

		key := b.Category
		if s.groupBy == config.GroupByProductID {
			key = b.ProductID
		}

		i, seen := index[key]
		if !seen {
			i = len(metrics)
			index[key] = i
			metrics = append(metrics, &models.GroupMetric{
				Key:      key,
				MinPrice: b.Price,
				MaxPrice: b.Price,
			})
			sums = append(sums, 0)
		}

		m := metrics[i]
		m.Count++
		sums[i] += b.Price
		if b.Price < m.MinPrice {
			m.MinPrice = b.Price
		}
		if b.Price > m.MaxPrice {
			m.MaxPrice = b.Price
		}
	}

	for i, m := range metrics {
		m.MeanPrice = sums[i] / float64(m.Count)
	}

	s.logger.Info("[stats] Grouped %d records into %d groups by %s",
		len(books), len(metrics), s.groupBy)
	return metrics
}

// finitePrices extracts the price column, dropping non-finite values.
func (s *StatsService) finitePrices(books []*models.CleanBook) []float64 {
	prices := make([]float64, 0, len(books))
	for _, b := range books {
		if math.IsNaN(b.Price) || math.IsInf(b.Price, 0) {
			s.logger.Warn("[stats] Excluding non-finite price for %s from summary", b.ProductID)
			continue
		}
		prices = append(prices, b.Price)
	}
	return prices
}

// quantile returns the p-quantile of an ascending-sorted, non-empty slice
// using linear interpolation between adjacent order statistics: the value at
// fractional rank p*(len-1). quantile(x, 0.5) is the usual median for both
// even and odd lengths.
func quantile(sorted []float64, p float64) float64 {
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func mean(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

// sampleStd is the sample standard deviation (n-1 divisor). Callers must
// pass at least two values.
func sampleStd(xs []float64) float64 {
	m := mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}

func ptr(f float64) *float64 {
	return &f
}
