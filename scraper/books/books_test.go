package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookscrape/config"
	"bookscrape/utils"
)

const listingFixture = `
<html><body>
<article class="product_pod">
  <h3><a href="a-light-in-the-attic_1000/index.html" title="A Light in the Attic">A Light in ...</a></h3>
  <p class="star-rating Three"></p>
  <p class="price_color">£51.77</p>
  <p class="instock availability">In stock</p>
</article>
<article class="product_pod">
  <h3><a href="./tipping-the-velvet_999/index.html" title="Tipping the Velvet">Tipping ...</a></h3>
  <p class="star-rating Zero"></p>
  <p class="price_color">£53.74</p>
</article>
</body></html>`

func testScraper() *Scraper {
	cfg := &config.Config{
		BaseURL:         "http://books.toscrape.com/catalogue/",
		DefaultCategory: "books",
	}
	return New(cfg, utils.NewLogger())
}

func TestParseListingExtractsPods(t *testing.T) {
	s := testScraper()
	books, err := s.parseListing([]byte(listingFixture), "http://books.toscrape.com/catalogue/page-1.html")
	require.NoError(t, err)
	require.Len(t, books, 2)

	first := books[0]
	assert.Equal(t, "a-light-in-the-attic_1000", first.ProductID)
	assert.Equal(t, "A Light in the Attic", first.Title)
	assert.Equal(t, "£51.77", first.PriceText)
	assert.Equal(t, "3", first.RatingText)
	assert.Equal(t, "books", first.Category)
	assert.Equal(t, "http://books.toscrape.com/catalogue/a-light-in-the-attic_1000/index.html", first.URL)
	assert.Equal(t, "http://books.toscrape.com/catalogue/page-1.html", first.SourceURL)
	assert.NotEmpty(t, first.FetchedAt)
}

func TestParseListingRelativeHrefAndUnknownRating(t *testing.T) {
	s := testScraper()
	books, err := s.parseListing([]byte(listingFixture), "http://books.toscrape.com/catalogue/page-1.html")
	require.NoError(t, err)
	require.Len(t, books, 2)

	second := books[1]
	assert.Equal(t, "http://books.toscrape.com/catalogue/tipping-the-velvet_999/index.html", second.URL)
	// unrecognised rating word flows through raw; the clean stage decides
	assert.Equal(t, "Zero", second.RatingText)
}

func TestParseListingEmptyPage(t *testing.T) {
	s := testScraper()
	books, err := s.parseListing([]byte("<html><body><p>next page?</p></body></html>"), "page-51")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestResolveHref(t *testing.T) {
	base := "http://books.toscrape.com/catalogue/"
	assert.Equal(t, "http://books.toscrape.com/catalogue/x_1/index.html", resolveHref(base, "x_1/index.html"))
	assert.Equal(t, "http://books.toscrape.com/catalogue/x_1/index.html", resolveHref(base, "./x_1/index.html"))
	assert.Equal(t, "http://other.example/x", resolveHref(base, "http://other.example/x"))
	assert.Equal(t, "", resolveHref(base, ""))
}

func TestProductID(t *testing.T) {
	assert.Equal(t, "a-light-in-the-attic_1000",
		productID("http://books.toscrape.com/catalogue/a-light-in-the-attic_1000/index.html"))
	assert.Equal(t, "", productID("http://books.toscrape.com/index.html"))
}
