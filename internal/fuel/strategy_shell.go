package fuel

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// dailyPricesStrategy is the Shell variant: an HTTP GET of the daily-prices
// JSON endpoint instead of a scraped page. Entries are matched by cleaned
// native name, like the table scanners.
type dailyPricesStrategy struct {
	client *http.Client
}

func newDailyPricesStrategy(client *http.Client) *dailyPricesStrategy {
	return &dailyPricesStrategy{client: client}
}

// jsonPrice tolerates the endpoint serving prices either as JSON numbers or
// as quoted strings.
type jsonPrice string

func (p *jsonPrice) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	*p = jsonPrice(data)
	return nil
}

type dailyPricesResponse struct {
	Results struct {
		Products []struct {
			Name         string    `json:"name"`
			PriceInclVAT jsonPrice `json:"price_incl_vat"`
		} `json:"products"`
	} `json:"results"`
}

func (s *dailyPricesStrategy) Refresh(ctx context.Context, c *Company) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return &FetchError{URL: c.URL(), Err: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return &FetchError{URL: c.URL(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: c.URL(), StatusCode: resp.StatusCode}
	}

	var decoded dailyPricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return &DecodeError{URL: c.URL(), Err: err}
	}

	for _, key := range c.ProductKeys() {
		product, err := c.Product(key)
		if err != nil {
			continue
		}
		for _, entry := range decoded.Results.Products {
			if CleanProductName(entry.Name) != product.NativeName {
				continue
			}
			price, err := CleanPrice(string(entry.PriceInclVAT))
			if err != nil {
				log.Printf("fuel: %s %s: %v", c.Key(), key, err)
				break
			}
			c.setPrice(key, price)
			break
		}
	}
	return nil
}
