package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Grouping keys accepted by GROUP_BY. Grouping by product ID gives every
// group a count of one, so category is the default.
const (
	GroupByCategory  = "category"
	GroupByProductID = "product_id"
)

// Config holds all application configuration loaded from environment
// variables. Every stage's input and output paths live here and are passed
// explicitly into the stage entry functions, so the stages stay testable
// against in-memory data.
type Config struct {
	BaseURL         string
	MaxPages        int
	RequestDelayMs  int
	RequestTimeoutS int
	DefaultCategory string

	RawJSONPath      string
	CleanJSONPath    string
	PricesCSVPath    string
	SummaryJSONPath  string
	MetricsCSVPath   string
	HistogramPath    string
	BoxplotPath      string
	TopBooksPath     string

	GroupBy string
	TopN    int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	groupBy := getEnv("GROUP_BY", GroupByCategory)
	if groupBy != GroupByCategory && groupBy != GroupByProductID {
		log.Printf("[config] Unknown GROUP_BY %q, falling back to %q", groupBy, GroupByCategory)
		groupBy = GroupByCategory
	}

	return &Config{
		BaseURL:         getEnv("BASE_URL", "http://books.toscrape.com/catalogue/"),
		MaxPages:        getEnvInt("MAX_PAGES", 50),
		RequestDelayMs:  getEnvInt("REQUEST_DELAY_MS", 1000),
		RequestTimeoutS: getEnvInt("REQUEST_TIMEOUT_S", 15),
		DefaultCategory: getEnv("DEFAULT_CATEGORY", "books"),

		RawJSONPath:     getEnv("RAW_JSON_PATH", "./data/raw/books_raw.json"),
		CleanJSONPath:   getEnv("CLEAN_JSON_PATH", "./data/processed/books_clean.json"),
		PricesCSVPath:   getEnv("PRICES_CSV_PATH", "./data/processed/prices.csv"),
		SummaryJSONPath: getEnv("SUMMARY_JSON_PATH", "./results/summary_stats.json"),
		MetricsCSVPath:  getEnv("METRICS_CSV_PATH", "./results/metrics_by_category.csv"),
		HistogramPath:   getEnv("HISTOGRAM_PATH", "./results/hist_price.png"),
		BoxplotPath:     getEnv("BOXPLOT_PATH", "./results/boxplot_price.png"),
		TopBooksPath:    getEnv("TOP_BOOKS_PATH", "./results/top10_books.png"),

		GroupBy: groupBy,
		TopN:    getEnvInt("TOP_N", 10),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
