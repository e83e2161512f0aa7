package main

import (
	"os"

	"bookscrape/config"
	"bookscrape/render"
	"bookscrape/storage"
	"bookscrape/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== bookscrape visualize stage starting ===")

	jsonStore := storage.NewJSONStore()
	clean, err := jsonStore.ReadClean(cfg.CleanJSONPath)
	if err != nil {
		logger.Error("Clean dataset read failed: %v", err)
		logger.Error("Run the clean stage first.")
		os.Exit(1)
	}

	// An empty-but-well-formed dataset is not a failure; there is just
	// nothing to draw.
	if len(clean) == 0 {
		logger.Warn("Clean dataset is empty — nothing to plot. Run the fetch and clean stages first.")
		return
	}

	charts := render.NewChartService(logger)

	if err := charts.Histogram(clean, cfg.HistogramPath); err != nil {
		logger.Error("Histogram failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Saved %s", cfg.HistogramPath)

	if err := charts.Boxplot(clean, cfg.BoxplotPath); err != nil {
		logger.Error("Boxplot failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Saved %s", cfg.BoxplotPath)

	if err := charts.TopN(clean, cfg.TopN, cfg.TopBooksPath); err != nil {
		logger.Error("Top-%d chart failed: %v", cfg.TopN, err)
		os.Exit(1)
	}
	logger.Info("Saved %s", cfg.TopBooksPath)

	logger.Info("Visualize complete — 3 plots rendered")
}
