package main

import (
	"os"

	"bookscrape/config"
	"bookscrape/services"
	"bookscrape/storage"
	"bookscrape/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== bookscrape analyze stage starting ===")

	jsonStore := storage.NewJSONStore()
	clean, err := jsonStore.ReadClean(cfg.CleanJSONPath)
	if err != nil {
		logger.Error("Clean dataset read failed: %v", err)
		logger.Error("Run the clean stage first.")
		os.Exit(1)
	}

	stats := services.NewStatsService(logger, cfg.GroupBy)
	summary := stats.Summarize(clean)
	metrics := stats.GroupMetrics(clean)

	if err := jsonStore.WriteSummary(cfg.SummaryJSONPath, summary); err != nil {
		logger.Error("Summary write failed: %v", err)
		os.Exit(1)
	}

	csvStore := storage.NewCSVStore()
	if err := csvStore.WriteGroupMetrics(cfg.MetricsCSVPath, stats.GroupKey(), metrics); err != nil {
		logger.Error("Group metrics write failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Analyze complete — %d records, %d groups by %s",
		summary.Count, len(metrics), stats.GroupKey())
	logger.Info("Artifacts: %s | %s", cfg.SummaryJSONPath, cfg.MetricsCSVPath)
}
