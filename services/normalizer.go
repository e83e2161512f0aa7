package services

import (
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"bookscrape/models"
	"bookscrape/utils"
)

var (
	// priceCharsRegexp strips everything but digits and the decimal separator
	priceCharsRegexp = regexp.MustCompile(`[^0-9.]`)
	// ratingRegexp captures the leading integer token of a rating string
	ratingRegexp = regexp.MustCompile(`^\s*(\d+)`)
)

// Reasons a raw record can be rejected. Duplicates are not rejections;
// they are counted separately.
const (
	rejectEmptyID    = "empty product_id"
	rejectBadPrice   = "unparsable or negative price"
	rejectEmptyTitle = "empty title"
	rejectBadTime    = "unparsable fetched_at timestamp"
)

// Normalizer transforms RawBooks into clean, validated, deduplicated
// CleanBooks. A record failing validation is dropped and counted, never
// fatal; only the caller decides what a structurally broken input means.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize processes raw records in input order and returns the clean set
// plus a report of kept/rejected/duplicate counts. The first record for a
// given product_id wins; later ones are discarded even if their fields
// differ. Output order is first-appearance order, so identical input yields
// identical output.
func (n *Normalizer) Normalize(raw []*models.RawBook) ([]*models.CleanBook, models.CleanReport) {
	seen := make(map[string]struct{})
	result := make([]*models.CleanBook, 0, len(raw))
	var report models.CleanReport

	for _, r := range raw {
		clean, reason := n.normalizeOne(r)
		if reason != "" {
			report.Rejected++
			n.logger.Warn("[normalizer] Rejected %q: %s", r.URL, reason)
			continue
		}

		if _, dup := seen[clean.ProductID]; dup {
			report.Duplicates++
			n.logger.Debug("[normalizer] Duplicate product_id skipped: %s", clean.ProductID)
			continue
		}
		seen[clean.ProductID] = struct{}{}

		result = append(result, clean)
	}

	report.Kept = len(result)
	n.logger.Info("[normalizer] Cleaned %d → %d records (rejected %d, duplicates %d)",
		len(raw), report.Kept, report.Rejected, report.Duplicates)
	return result, report
}

// normalizeOne validates a single raw record. It returns either a CleanBook
// or a non-empty rejection reason, never both, so the accept/reject policy
// stays a pure, testable function of one record.
func (n *Normalizer) normalizeOne(r *models.RawBook) (*models.CleanBook, string) {
	id := strings.TrimSpace(r.ProductID)
	if id == "" {
		return nil, rejectEmptyID
	}

	price, ok := parsePrice(r.PriceText)
	if !ok {
		return nil, rejectBadPrice
	}

	title := normaliseText(html.UnescapeString(r.Title))
	if title == "" {
		return nil, rejectEmptyTitle
	}

	snapshot, err := time.Parse(time.RFC3339, strings.TrimSpace(r.FetchedAt))
	if err != nil {
		return nil, rejectBadTime
	}

	return &models.CleanBook{
		ProductID:    id,
		Title:        title,
		Price:        price,
		Rating:       parseRating(r.RatingText),
		Category:     normaliseText(r.Category),
		URL:          strings.TrimSpace(r.URL),
		SnapshotTime: snapshot,
	}, ""
}

// parsePrice strips currency symbols and whitespace and parses the rest as a
// non-negative amount.
// Examples:
//
//	"£35.07" → 35.07
//	" £ 1,034.50 " → 1034.50
//	"free" → not ok
func parsePrice(raw string) (float64, bool) {
	cleaned := priceCharsRegexp.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val < 0 || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// parseRating extracts the leading integer token of a rating string and
// accepts it when it falls in [0,5]. Anything else means no rating, which is
// not a validation failure.
func parseRating(raw string) *int {
	match := ratingRegexp.FindStringSubmatch(raw)
	if len(match) < 2 {
		return nil
	}
	val, err := strconv.Atoi(match[1])
	if err != nil || val < 0 || val > 5 {
		return nil
	}
	return &val
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
