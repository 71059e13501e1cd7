package fuel

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Company binds one operator's catalog entry to its extraction strategy and
// owns the continuously refreshed product-price table. The registry is the
// only owner of Company instances; everything else looks them up by key.
//
// A price and its timestamp are always written together under the lock, so
// concurrent readers (HTTP handlers, sensors) never observe one without the
// other while a refresh is running.
type Company struct {
	key      string
	name     string
	url      string
	strategy Strategy

	mu          sync.RWMutex
	products    map[string]*Product
	productKeys []string
	priceType   PriceType
}

func newCompany(key string, spec companySpec, products map[string]*Product, strategy Strategy) *Company {
	keys := make([]string, 0, len(products))
	for k := range products {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Company{
		key:         key,
		name:        spec.name,
		url:         spec.url,
		strategy:    strategy,
		products:    products,
		productKeys: keys,
		priceType:   PriceTypePump,
	}
}

// Key returns the canonical operator identifier (e.g. "ok", "shell").
func (c *Company) Key() string { return c.key }

// Name returns the operator's display name.
func (c *Company) Name() string { return c.name }

// URL returns the source URL prices are fetched from.
func (c *Company) URL() string { return c.url }

// PriceType reports whether the company's prices are live pump prices or
// posted list prices.
func (c *Company) PriceType() PriceType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.priceType
}

// ProductKeys returns the subscribed product keys in sorted order. The order
// is stable across calls; the batch-API strategy relies on that to match
// response entries by request index.
func (c *Company) ProductKeys() []string {
	keys := make([]string, len(c.productKeys))
	copy(keys, c.productKeys)
	return keys
}

// Product returns a copy of the product for the given key, or
// ErrProductNotFound when the key was never loaded for this company.
func (c *Company) Product(key string) (*Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[key]
	if !ok {
		return nil, fmt.Errorf("company %s, product %s: %w", c.key, key, ErrProductNotFound)
	}
	return p.clone(), nil
}

// RefreshPrices delegates to the company's extraction strategy. A failed
// refresh leaves previous values in place until the next caller-driven cycle;
// no retries happen here.
func (c *Company) RefreshPrices(ctx context.Context) error {
	return c.strategy.Refresh(ctx, c)
}

// setPrice records a new price and its timestamp as one atomic pair.
// Unknown keys are ignored; strategies only ever pass keys they got from
// ProductKeys.
func (c *Company) setPrice(key string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[key]
	if !ok {
		return
	}
	v := price
	p.price = &v
	p.lastUpdate = time.Now()
}

// setNativeName updates a product's native label. The batch-API sources
// return the authoritative name with each price.
func (c *Company) setNativeName(key, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.products[key]; ok && name != "" {
		p.NativeName = name
	}
}

func (c *Company) setPriceType(pt PriceType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.priceType = pt
}

// PriceRecord is the flat per-(company, product) view consumed by the HTTP
// API and the snapshot store.
type PriceRecord struct {
	CompanyKey  string   `json:"company_key"`
	CompanyName string   `json:"company_name"`
	ProductKey  string   `json:"product_type"`
	ProductName string   `json:"product_name"`
	Price       *float64 `json:"price,omitempty"`
	LastUpdate  string   `json:"last_update,omitempty"`
	PriceType   string   `json:"price_type"`
	SourceURL   string   `json:"source"`
}

// Records returns one record per subscribed product, in key order. Product
// display names that embed the company name are stripped of it, so "Shell"
// plus "Shell FuelSave Diesel" does not render a doubled name.
func (c *Company) Records() []PriceRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]PriceRecord, 0, len(c.productKeys))
	for _, key := range c.productKeys {
		p := c.products[key]

		name := p.NativeName
		if strings.Contains(name, c.name) {
			name = strings.TrimSpace(strings.ReplaceAll(name, c.name, ""))
		}

		rec := PriceRecord{
			CompanyKey:  c.key,
			CompanyName: c.name,
			ProductKey:  key,
			ProductName: name,
			LastUpdate:  p.LastUpdateDisplay(),
			PriceType:   string(c.priceType),
			SourceURL:   c.url,
		}
		if p.price != nil {
			v := *p.price
			rec.Price = &v
		}
		records = append(records, rec)
	}
	return records
}
