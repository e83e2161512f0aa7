package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bookscrape/models"
	"bookscrape/utils"
)

const histogramBins = 20

// ChartService renders the analysis plots from the clean dataset. It never
// touches raw data; everything it draws is derivable from the clean-record
// artifact alone.
type ChartService struct {
	logger *utils.Logger
}

// NewChartService creates a ChartService with the given logger.
func NewChartService(logger *utils.Logger) *ChartService {
	return &ChartService{logger: logger}
}

// Histogram renders the price distribution to a PNG at path. An empty
// dataset is not an error; the plot is skipped with a warning.
func (s *ChartService) Histogram(books []*models.CleanBook, path string) error {
	prices := finitePrices(books)
	if len(prices) == 0 {
		s.logger.Warn("[render] No prices to plot — skipping %s", path)
		return nil
	}

	p := plot.New()
	p.Title.Text = "Distribution of Book Prices"
	p.X.Label.Text = "Price (GBP)"
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(prices), histogramBins)
	if err != nil {
		return fmt.Errorf("render: histogram: %w", err)
	}
	p.Add(h)

	s.logger.Debug("[render] Histogram over %d prices, %d bins", len(prices), histogramBins)

	return save(p, 8*vg.Inch, 5*vg.Inch, path)
}

// Boxplot renders the price spread and outliers to a PNG at path. An empty
// dataset is not an error; the plot is skipped with a warning.
func (s *ChartService) Boxplot(books []*models.CleanBook, path string) error {
	prices := finitePrices(books)
	if len(prices) == 0 {
		s.logger.Warn("[render] No prices to plot — skipping %s", path)
		return nil
	}

	p := plot.New()
	p.Title.Text = "Boxplot of Book Prices"
	p.Y.Label.Text = "Price (GBP)"
	p.NominalX("price")

	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(prices))
	if err != nil {
		return fmt.Errorf("render: boxplot: %w", err)
	}
	p.Add(b)

	return save(p, 6*vg.Inch, 5*vg.Inch, path)
}

// TopN renders a bar chart of the n highest-priced books by title to a PNG
// at path. An empty dataset is not an error; the plot is skipped with a
// warning.
func (s *ChartService) TopN(books []*models.CleanBook, n int, path string) error {
	top := topByPrice(books, n)
	if len(top) == 0 {
		s.logger.Warn("[render] No prices to plot — skipping %s", path)
		return nil
	}

	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, b := range top {
		values[i] = b.Price
		labels[i] = truncate(b.Title, 18)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Most Expensive Books", len(top))
	p.Y.Label.Text = "Price (GBP)"
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.5

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return fmt.Errorf("render: bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	s.logger.Debug("[render] Bar chart of %d most expensive books", len(top))

	return save(p, 10*vg.Inch, 6*vg.Inch, path)
}

// topByPrice returns up to n books sorted by descending price, finite
// prices only. Ties keep input order so output is deterministic.
func topByPrice(books []*models.CleanBook, n int) []*models.CleanBook {
	sorted := make([]*models.CleanBook, 0, len(books))
	for _, b := range books {
		if math.IsNaN(b.Price) || math.IsInf(b.Price, 0) {
			continue
		}
		sorted = append(sorted, b)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price > sorted[j].Price
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func finitePrices(books []*models.CleanBook) []float64 {
	prices := make([]float64, 0, len(books))
	for _, b := range books {
		if math.IsNaN(b.Price) || math.IsInf(b.Price, 0) {
			continue
		}
		prices = append(prices, b.Price)
	}
	return prices
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("render: create output dir: %w", err)
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("render: save %q: %w", path, err)
	}
	return nil
}

// truncate shortens a label to max runes. Titles can carry accented
// characters, so cutting bytes would split a rune mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
