package goquery_test

import (
	"testing"

	"github.com/fwojciec/bizscan"
	"github.com/fwojciec/bizscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDetailPage = `<!DOCTYPE html>
<html>
<head><title>Tasty Place - San Francisco</title></head>
<body>
<header><h1 itemprop="name">Tasty  Place</h1></header>
<div aria-label="4.5 star rating" role="img"></div>
<section>
	<p data-testid="biz-address">1 Market St<br>San Francisco, CA 94105</p>
	<p>Phone number (415) 555-1234</p>
</section>
<section id="reviews">
	<div itemprop="review">
		<span itemprop="author">Jane D.</span>
		<div aria-label="5 star rating"></div>
		<p itemprop="reviewBody">Great tacos!</p>
	</div>
	<div itemprop="review">
		<span itemprop="author">John S.</span>
		<p>Too loud.</p>
	</div>
</section>
</body>
</html>`

func TestDetailExtractor_ExtractDetail(t *testing.T) {
	t.Parallel()

	t.Run("extracts every field", func(t *testing.T) {
		t.Parallel()

		record, err := goquery.NewDetailExtractor().ExtractDetail(fullDetailPage, "https://www.yelp.com/biz/tasty")

		require.NoError(t, err)
		assert.Equal(t, &bizscan.BusinessRecord{
			BusinessName: bizscan.OptionalString("Tasty Place"),
			Address:      bizscan.OptionalString("1 Market St San Francisco, CA 94105"),
			PhoneNumber:  bizscan.OptionalString("(415) 555-1234"),
			Rating:       bizscan.Float(4.5),
			ReviewText:   bizscan.OptionalString("Jane D. Great tacos!"),
			URL:          bizscan.OptionalString("https://www.yelp.com/biz/tasty"),
		}, record)
	})

	t.Run("missing address leaves other fields intact", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Corner Cafe</h1>
<span aria-label="3 star rating"></span>
<p>Call 212-555-0100</p>
<div data-testid="review-card">Nice coffee</div>
</body></html>`

		record, err := goquery.NewDetailExtractor().ExtractDetail(html, "https://www.yelp.com/biz/corner")

		require.NoError(t, err)
		assert.Nil(t, record.Address)
		assert.Equal(t, "Corner Cafe", *record.BusinessName)
		assert.Equal(t, "212-555-0100", *record.PhoneNumber)
		assert.InDelta(t, 3.0, *record.Rating, 1e-9)
		assert.Equal(t, "Nice coffee", *record.ReviewText)
	})

	t.Run("falls back to h1 when itemprop name is empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><meta itemprop="name" content="ignored"><h1>Heading Name</h1></body></html>`

		record, err := goquery.NewDetailExtractor().ExtractDetail(html, "")

		require.NoError(t, err)
		assert.Equal(t, "Heading Name", *record.BusinessName)
		assert.Nil(t, record.URL)
	})

	t.Run("address falls back to labeled element with text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<button aria-label="Copy address"></button>
<p aria-label="Business address">500 Main St</p>
</body></html>`

		record, err := goquery.NewDetailExtractor().ExtractDetail(html, "")

		require.NoError(t, err)
		assert.Equal(t, "500 Main St", *record.Address)
	})

	t.Run("address falls back to address tag", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><address>
	10 Downing St,
	London
</address></body></html>`

		record, err := goquery.NewDetailExtractor().ExtractDetail(html, "")

		require.NoError(t, err)
		assert.Equal(t, "10 Downing St, London", *record.Address)
	})

	t.Run("prefers parenthesized phone shape", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Fax 555-555-0000</p><p>Call (415)555-1234</p></body></html>`

		record, err := goquery.NewDetailExtractor().ExtractDetail(html, "")

		require.NoError(t, err)
		assert.Equal(t, "(415)555-1234", *record.PhoneNumber)
	})

	t.Run("ignores phone numbers in scripts", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>var phone = "(999) 999-9999";</script><p>No phone listed</p></body></html>`

		record, err := goquery.NewDetailExtractor().ExtractDetail(html, "")

		require.NoError(t, err)
		assert.Nil(t, record.PhoneNumber)
	})

	t.Run("page without markers yields nil fields", func(t *testing.T) {
		t.Parallel()

		record, err := goquery.NewDetailExtractor().ExtractDetail(`<html><body><p>Hello</p></body></html>`, "https://www.yelp.com/biz/x")

		require.NoError(t, err)
		assert.Equal(t, &bizscan.BusinessRecord{
			URL: bizscan.OptionalString("https://www.yelp.com/biz/x"),
		}, record)
	})

	t.Run("rejects input that is not markup", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewDetailExtractor().ExtractDetail("plain text", "")

		require.Error(t, err)
		assert.Equal(t, bizscan.EINVALID, bizscan.ErrorCode(err))
	})
}

func TestDetailExtractor_ExtractReview(t *testing.T) {
	t.Parallel()

	t.Run("returns first review with text", func(t *testing.T) {
		t.Parallel()

		review, err := goquery.NewDetailExtractor().ExtractReview(fullDetailPage)

		require.NoError(t, err)
		require.NotNil(t, review)
		assert.Equal(t, "Jane D.", *review.Author)
		assert.InDelta(t, 5.0, *review.Rating, 1e-9)
		assert.Equal(t, "Jane D. Great tacos!", *review.Text)
	})

	t.Run("skips reviews without text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<meta itemprop="reviewCount" content="12">
<div itemprop="review"><p>Second is first with text</p></div>
</body></html>`

		review, err := goquery.NewDetailExtractor().ExtractReview(html)

		require.NoError(t, err)
		require.NotNil(t, review)
		assert.Nil(t, review.Author)
		assert.Nil(t, review.Rating)
		assert.Equal(t, "Second is first with text", *review.Text)
	})

	t.Run("falls back to data-testid when no itemprop reviews exist", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<li data-testid="serp-review"><span aria-label="2 star rating"></span>Meh.</li>
</body></html>`

		review, err := goquery.NewDetailExtractor().ExtractReview(html)

		require.NoError(t, err)
		require.NotNil(t, review)
		assert.InDelta(t, 2.0, *review.Rating, 1e-9)
		assert.Equal(t, "Meh.", *review.Text)
	})

	t.Run("returns nil when page has no reviews", func(t *testing.T) {
		t.Parallel()

		review, err := goquery.NewDetailExtractor().ExtractReview(`<html><body><h1>Quiet</h1></body></html>`)

		require.NoError(t, err)
		assert.Nil(t, review)
	})
}
