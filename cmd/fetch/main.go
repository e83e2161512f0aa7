package main

import (
	"os"

	"bookscrape/config"
	"bookscrape/scraper/books"
	"bookscrape/storage"
	"bookscrape/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== bookscrape fetch stage starting ===")

	scraper := books.New(cfg, logger)
	raw, err := scraper.Scrape()
	if err != nil {
		logger.Error("Scrape failed: %v", err)
		os.Exit(1)
	}

	store := storage.NewJSONStore()
	if err := store.WriteRaw(cfg.RawJSONPath, raw); err != nil {
		logger.Error("Raw snapshot write failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Fetch complete — %d raw records → %s", len(raw), cfg.RawJSONPath)
}
