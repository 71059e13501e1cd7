package fuel

import (
	"context"
	"log"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// spanTableStrategy is the OIL! tank & go variant. The name is matched with
// the usual table scan, but the site renders each price as two styled text
// fragments (integer part and fractional part), so the price string is
// rebuilt by joining the two adjacent spans with a decimal point.
type spanTableStrategy struct {
	client *http.Client
}

func newSpanTableStrategy(client *http.Client) *spanTableStrategy {
	return &spanTableStrategy{client: client}
}

const priceSpanSelector = `span[style="text-align:right;"], span[style="text-align:left;"]`

func (s *spanTableStrategy) Refresh(ctx context.Context, c *Company) error {
	doc, err := fetchDocument(ctx, s.client, c.URL())
	if err != nil {
		return err
	}

	rows := doc.Find("tr")
	for _, key := range c.ProductKeys() {
		product, err := c.Product(key)
		if err != nil {
			continue
		}

		rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.Find("td")
			if cells.Length() < 3 {
				return true
			}
			if CleanProductName(cells.Eq(0).Text()) != product.NativeName {
				return true
			}

			segments := cells.Eq(2).Find(priceSpanSelector)
			if segments.Length() < 2 {
				return false
			}
			raw := segments.Eq(0).Text() + "." + segments.Eq(1).Text()
			price, err := CleanPrice(raw)
			if err != nil {
				log.Printf("fuel: %s %s: %v", c.Key(), key, err)
				return false
			}
			c.setPrice(key, price)
			return false
		})
	}
	return nil
}
