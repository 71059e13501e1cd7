package fuel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// batchAPIStrategy is the F24/Q8 variant (identical algorithm, different
// endpoint and product codes). It issues one JSON POST listing every
// subscribed product by its numeric code over a 31-day window; the response
// returns products in the same array order as the request, so entries are
// matched strictly by request-time index, never by name. Any non-success
// status or decode failure aborts the whole operator refresh: the batch is
// atomic.
type batchAPIStrategy struct {
	client *http.Client
	now    func() time.Time
}

func newBatchAPIStrategy(client *http.Client) *batchAPIStrategy {
	return &batchAPIStrategy{client: client, now: time.Now}
}

type batchFuelID struct {
	Index       int `json:"Index"`
	ProductCode int `json:"ProductCode"`
}

type batchRequest struct {
	FuelsIDList []batchFuelID `json:"FuelsIdList"`
	FromDate    int64         `json:"FromDate"`
	ToDate      int64         `json:"ToDate"`
}

type batchProduct struct {
	Name                string  `json:"Name"`
	PriceInclVATInclTax float64 `json:"PriceInclVATInclTax"`
}

type batchResponse struct {
	Products []batchProduct `json:"Products"`
}

func (s *batchAPIStrategy) Refresh(ctx context.Context, c *Company) error {
	keys := c.ProductKeys()

	reqBody := batchRequest{
		FuelsIDList: make([]batchFuelID, 0, len(keys)),
		FromDate:    s.now().AddDate(0, 0, -31).Unix(),
		ToDate:      s.now().Unix(),
	}
	for i, key := range keys {
		product, err := c.Product(key)
		if err != nil {
			return err
		}
		reqBody.FuelsIDList = append(reqBody.FuelsIDList, batchFuelID{
			Index:       i,
			ProductCode: product.ProductCode,
		})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return &DecodeError{URL: c.URL(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(payload))
	if err != nil {
		return &FetchError{URL: c.URL(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &FetchError{URL: c.URL(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: c.URL(), StatusCode: resp.StatusCode}
	}

	var decoded batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return &DecodeError{URL: c.URL(), Err: err}
	}
	if len(decoded.Products) < len(keys) {
		err := fmt.Errorf("batch response has %d products, requested %d", len(decoded.Products), len(keys))
		return &DecodeError{URL: c.URL(), Err: err}
	}

	for i, key := range keys {
		matched := decoded.Products[i]
		c.setNativeName(key, matched.Name)
		c.setPrice(key, RoundPrice(matched.PriceInclVATInclTax))
	}
	return nil
}
