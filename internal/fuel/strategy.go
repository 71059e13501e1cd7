package fuel

import (
	"context"
	"log"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// Strategy is the extraction algorithm for one operator. Refresh mutates the
// matched products' prices in place; unmatched products are left untouched.
// All strategies are plain blocking calls; how (and whether) to run them
// concurrently is the caller's decision.
type Strategy interface {
	Refresh(ctx context.Context, c *Company) error
}

// OCREngine is the injected capability used by the Go' on strategy to read
// seven-segment displays from the downloaded price image. Recognize returns
// the raw text output for the crop region; empty output means the display
// could not be read this cycle.
type OCREngine interface {
	Available() bool
	Recognize(ctx context.Context, imagePath string, crop CropRegion) (string, error)
}

// Options configures strategy construction at registry load time.
type Options struct {
	// Client is the HTTP client used for all fetches. Defaults to
	// DefaultHTTPClient.
	Client *http.Client
	// OCR is the engine for image-based operators. A nil or unavailable
	// engine triggers the documented list-price fallback.
	OCR OCREngine
	// DataDir is where downloaded price images are stored.
	DataDir string
}

func (o Options) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return DefaultHTTPClient()
}

// strategyFactories is the closed key→variant table. Every operator in the
// catalog has exactly one entry here; the registry resolves it once at load.
var strategyFactories = map[string]func(o Options) Strategy{
	"circlek": func(o Options) Strategy { return newTableScanStrategy(o.client(), 1, -1) },
	"ingo":    func(o Options) Strategy { return newTableScanStrategy(o.client(), 1, 2) },
	"ok":      func(o Options) Strategy { return newGridScanStrategy(o.client()) },
	"oil":     func(o Options) Strategy { return newSpanTableStrategy(o.client()) },
	"f24":     func(o Options) Strategy { return newBatchAPIStrategy(o.client()) },
	"q8":      func(o Options) Strategy { return newBatchAPIStrategy(o.client()) },
	"shell":   func(o Options) Strategy { return newDailyPricesStrategy(o.client()) },
	"goon":    func(o Options) Strategy { return newOCRStrategy(o.client(), o.OCR, o.DataDir) },
}

// newStrategy resolves the strategy variant for an operator key.
func newStrategy(key string, o Options) (Strategy, bool) {
	factory, ok := strategyFactories[key]
	if !ok {
		return nil, false
	}
	return factory(o), true
}

// fetchDocument performs a GET and parses the body as HTML.
func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}
	return doc, nil
}

// cellAt resolves a fixed column index inside a row, counting from the end
// when the index is negative (the price column of several operators is the
// last cell regardless of row width).
func cellAt(cells *goquery.Selection, idx int) (*goquery.Selection, bool) {
	n := cells.Length()
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, false
	}
	return cells.Eq(idx), true
}

// scanRows runs the shared row-scan algorithm: for each subscribed product,
// scan rows until the cell at nameCol equals the product's cleaned native
// name, then read the price from priceCol of the same row. The first
// matching row wins. A price that fails to parse skips only that product;
// an unmatched native name is a silent skip.
func scanRows(c *Company, rows *goquery.Selection, cellSelector string, nameCol, priceCol int) {
	for _, key := range c.ProductKeys() {
		product, err := c.Product(key)
		if err != nil {
			continue
		}

		rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.Find(cellSelector)
			if cells.Length() == 0 {
				return true
			}
			nameCell, ok := cellAt(cells, nameCol)
			if !ok || CleanProductName(nameCell.Text()) != product.NativeName {
				return true
			}

			priceCell, ok := cellAt(cells, priceCol)
			if !ok {
				return false
			}
			price, err := CleanPrice(priceCell.Text())
			if err != nil {
				log.Printf("fuel: %s %s: %v", c.Key(), key, err)
				return false
			}
			c.setPrice(key, price)
			return false
		})
	}
}
