package fuel

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// priceImageName is the local filename for the downloaded Go' on price image.
const priceImageName = "goon_prices.png"

// ocrStrategy is the Go' on variant. The pump prices exist only as a
// seven-segment display image, so the preferred path downloads the embedded
// price-list image and runs the OCR engine against each product's crop
// region. When the engine is unavailable the strategy falls back to the
// posted list-price table on the same page and tags the whole company as
// "list" so consumers know these are not live pump prices.
type ocrStrategy struct {
	client   *http.Client
	engine   OCREngine
	dataDir  string
	fallback *tableScanStrategy
}

func newOCRStrategy(client *http.Client, engine OCREngine, dataDir string) *ocrStrategy {
	return &ocrStrategy{
		client:   client,
		engine:   engine,
		dataDir:  dataDir,
		fallback: newTableScanStrategy(client, 0, 7),
	}
}

func (s *ocrStrategy) Refresh(ctx context.Context, c *Company) error {
	if s.engine == nil || !s.engine.Available() {
		log.Printf("fuel: %s: OCR engine unavailable, falling back to list prices", c.Key())
		if err := s.fallback.Refresh(ctx, c); err != nil {
			return err
		}
		c.setPriceType(PriceTypeList)
		return nil
	}

	doc, err := fetchDocument(ctx, s.client, c.URL())
	if err != nil {
		return err
	}

	imageURL, ok := doc.Find("img.lazyload").First().Attr("data-src")
	if !ok || imageURL == "" {
		return &DecodeError{URL: c.URL(), Err: fmt.Errorf("no price image found on page")}
	}

	imagePath := filepath.Join(s.dataDir, priceImageName)
	if err := s.downloadFile(ctx, imageURL, imagePath); err != nil {
		return err
	}

	for _, key := range c.ProductKeys() {
		product, err := c.Product(key)
		if err != nil || product.OCRCrop == nil {
			continue
		}
		out, err := s.engine.Recognize(ctx, imagePath, *product.OCRCrop)
		if err != nil {
			log.Printf("fuel: %s %s: OCR failed: %v", c.Key(), key, err)
			continue
		}
		// Empty output means the display could not be read this cycle;
		// the product stays unmatched, which is not an error.
		if out == "" {
			continue
		}
		price, err := CleanPrice(out)
		if err != nil {
			log.Printf("fuel: %s %s: %v", c.Key(), key, err)
			continue
		}
		c.setPrice(key, price)
	}

	c.setPriceType(PriceTypePump)
	return nil
}

func (s *ocrStrategy) downloadFile(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}
