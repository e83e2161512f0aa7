package books

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"bookscrape/config"
	"bookscrape/models"
	"bookscrape/utils"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	// productIDRegexp derives a stable product id from the detail-page URL,
	// e.g. /catalogue/a-light-in-the-attic_1000/index.html → a-light-in-the-attic_1000
	productIDRegexp = regexp.MustCompile(`/catalogue/([^/]+)/index\.html`)
)

// ratingWords maps the site's star-rating class words to a numeric token the
// cleaner can parse.
var ratingWords = map[string]string{
	"One": "1", "Two": "2", "Three": "3", "Four": "4", "Five": "5",
}

// Scraper fetches paginated catalogue listing pages and extracts one RawBook
// per product pod. It does no validation; malformed entries flow through to
// the clean stage untouched.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	client *resty.Client
}

// New creates a ready-to-use catalogue Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetTimeout(time.Duration(cfg.RequestTimeoutS) * time.Second)

	return &Scraper{cfg: cfg, logger: logger, client: client}
}

// Scrape walks listing pages page-1.html, page-2.html, … until a page fails
// or yields no products, and returns everything extracted. It is an error
// only when not a single page produced records; a mid-run failure just stops
// pagination with whatever was already collected.
func (s *Scraper) Scrape() ([]*models.RawBook, error) {
	s.logger.Info("[books] Starting scrape — up to %d pages from %s", s.cfg.MaxPages, s.cfg.BaseURL)

	var raw []*models.RawBook

	for page := 1; page <= s.cfg.MaxPages; page++ {
		pageURL := fmt.Sprintf("%spage-%d.html", s.cfg.BaseURL, page)
		s.logger.Info("[books] Fetching page %d: %s", page, pageURL)

		html, err := s.fetch(pageURL)
		if err != nil {
			s.logger.Warn("[books] Page %d failed: %v — stopping", page, err)
			break
		}

		books, err := s.parseListing(html, pageURL)
		if err != nil {
			s.logger.Warn("[books] Page %d unparsable: %v — stopping", page, err)
			break
		}
		if len(books) == 0 {
			s.logger.Info("[books] Page %d has no products — stopping", page)
			break
		}

		raw = append(raw, books...)
		s.logger.Info("[books] Page %d done — %d books so far", page, len(raw))

		time.Sleep(time.Duration(s.cfg.RequestDelayMs) * time.Millisecond)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch: no pages produced any records")
	}

	s.logger.Info("[books] Scrape complete — %d raw records", len(raw))
	return raw, nil
}

// fetch GETs one listing page and returns its body. Non-200 responses are
// errors so pagination stops at the first missing page.
func (s *Scraper) fetch(url string) ([]byte, error) {
	res, err := s.client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", url, err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch: %s: HTTP %d", url, res.StatusCode())
	}
	return res.Body(), nil
}

// parseListing extracts every product pod on one listing page.
func (s *Scraper) parseListing(html []byte, pageURL string) ([]*models.RawBook, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(html))
	if err != nil {
		return nil, fmt.Errorf("parse: %s: %w", pageURL, err)
	}

	fetchedAt := time.Now().UTC().Format(time.RFC3339)

	var books []*models.RawBook
	doc.Find("article.product_pod").Each(func(_ int, pod *goquery.Selection) {
		books = append(books, s.extractPod(pod, pageURL, fetchedAt))
	})

	return books, nil
}

// extractPod turns a single product pod selection into a RawBook. Fields the
// page doesn't carry stay empty; deriving types is the clean stage's job.
func (s *Scraper) extractPod(pod *goquery.Selection, pageURL, fetchedAt string) *models.RawBook {
	anchor := pod.Find("h3 a")
	title, ok := anchor.Attr("title")
	if !ok {
		title = strings.TrimSpace(anchor.Text())
	}

	href, _ := anchor.Attr("href")
	url := resolveHref(s.cfg.BaseURL, href)

	return &models.RawBook{
		ProductID:  productID(url),
		Title:      title,
		PriceText:  strings.TrimSpace(pod.Find("p.price_color").Text()),
		RatingText: ratingToken(pod.Find("p.star-rating")),
		Category:   s.cfg.DefaultCategory,
		URL:        url,
		FetchedAt:  fetchedAt,
		SourceURL:  pageURL,
	}
}

// ratingToken reads the star-rating class word ("star-rating Three") and
// returns its numeric token, or the raw word when unrecognised.
func ratingToken(sel *goquery.Selection) string {
	class, ok := sel.Attr("class")
	if !ok {
		return ""
	}
	for _, word := range strings.Fields(class) {
		if word == "star-rating" {
			continue
		}
		if num, known := ratingWords[word]; known {
			return num
		}
		return word
	}
	return ""
}

// resolveHref makes a pod's relative href absolute against the catalogue base.
func resolveHref(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return base + strings.TrimLeft(href, "./")
}

// productID derives the record key from the URL slug; empty when the URL
// doesn't look like a detail page.
func productID(url string) string {
	m := productIDRegexp.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
