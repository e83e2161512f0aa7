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

	logger.Info("=== bookscrape clean stage starting ===")

	jsonStore := storage.NewJSONStore()
	raw, err := jsonStore.ReadRaw(cfg.RawJSONPath)
	if err != nil {
		logger.Error("Raw snapshot read failed: %v", err)
		logger.Error("Run the fetch stage first.")
		os.Exit(1)
	}

	normalizer := services.NewNormalizer(logger)
	clean, report := normalizer.Normalize(raw)

	if err := jsonStore.WriteClean(cfg.CleanJSONPath, clean); err != nil {
		logger.Error("Clean JSON write failed: %v", err)
		os.Exit(1)
	}

	csvStore := storage.NewCSVStore()
	if err := csvStore.WritePrices(cfg.PricesCSVPath, clean); err != nil {
		logger.Error("Price table write failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Clean complete — kept %d, rejected %d, duplicates %d",
		report.Kept, report.Rejected, report.Duplicates)
	logger.Info("Artifacts: %s | %s", cfg.CleanJSONPath, cfg.PricesCSVPath)
}
